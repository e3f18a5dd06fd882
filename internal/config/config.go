package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Checkout CheckoutConfig `yaml:"checkout"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type CheckoutConfig struct {
	ToppingSurcharge  Amount `yaml:"topping_surcharge"`
	LowStockThreshold Amount `yaml:"low_stock_threshold"`
}

// Amount is a decimal config value parsed from its YAML scalar text, so
// prices like "1.00" survive without float rounding.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid decimal amount %q: %w", value.Value, err)
	}
	a.Decimal = d
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Checkout.ToppingSurcharge.IsZero() {
		cfg.Checkout.ToppingSurcharge = Amount{decimal.NewFromInt(1)}
	}
	if cfg.Checkout.ToppingSurcharge.IsNegative() {
		return nil, fmt.Errorf("topping_surcharge must not be negative")
	}
	if cfg.Checkout.LowStockThreshold.IsNegative() {
		return nil, fmt.Errorf("low_stock_threshold must not be negative")
	}

	return &cfg, nil
}
