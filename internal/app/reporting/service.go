package reporting

import (
	"context"
	"time"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

const defaultPopularLimit = 5

// Service serves the read-only aggregate queries over orders and inventory.
type Service struct {
	reportRepo interfaces.ReportRepository
	logger     logger.Logger
}

func NewService(reportRepo interfaces.ReportRepository, lgr logger.Logger) *Service {
	return &Service{
		reportRepo: reportRepo,
		logger:     lgr,
	}
}

func (s *Service) PopularDrinks(ctx context.Context, limit int) ([]domain.PopularDrink, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return s.reportRepo.PopularDrinks(ctx, limit)
}

func (s *Service) InventoryUsage(ctx context.Context) ([]domain.IngredientUsage, error) {
	return s.reportRepo.InventoryUsage(ctx)
}

// DailySales defaults to the trailing 30 days when no range is given.
func (s *Service) DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return nil, domain.NewValidationError("report range start must be before end")
	}
	return s.reportRepo.DailySales(ctx, from, to)
}
