// Package envconfig provides configuration structs for configuring
// market environments together with the price process driving them.
package envconfig

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/mmlearn/environment"
	"github.com/samuelfneumann/mmlearn/environment/market"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/process"
	ts "github.com/samuelfneumann/mmlearn/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Inventory     EnvName = "inventory"
	InventoryTime EnvName = "inventory-time"
)

// PriceConfig describes the asset price process. If SeriesFile is set,
// the price path stored in that file is replayed every episode instead
// of simulating Brownian motion.
type PriceConfig struct {
	Volatility   float64 `mapstructure:"volatility"`
	InitialPrice float64 `mapstructure:"initial_price"`
	Drift        float64 `mapstructure:"drift"`
	SeriesFile   string  `mapstructure:"series_file"`
	Separator    string  `mapstructure:"separator"`
}

// Config implements a specific configuration of a market environment
type Config struct {
	Environment EnvName       `mapstructure:"environment"`
	Market      market.Config `mapstructure:"market"`
	Price       PriceConfig   `mapstructure:"price"`

	// InventoryAversion enables the terminal inventory utility with
	// this coefficient when positive
	InventoryAversion float64 `mapstructure:"inventory_aversion"`
}

// Default returns the default environment configuration: an
// InventoryTime environment over Brownian motion starting at 100 with
// volatility 2
func Default() Config {
	return Config{
		Environment: InventoryTime,
		Market:      market.DefaultConfig(),
		Price: PriceConfig{
			Volatility:   2,
			InitialPrice: 100,
			Separator:    process.DefaultSeparator,
		},
	}
}

// Validate returns an error describing why the Config cannot be used
// to create an environment, or nil if it can
func (c Config) Validate() error {
	switch c.Environment {
	case Inventory, InventoryTime:
	default:
		return mmerrors.Invalid("no such environment %q", c.Environment)
	}
	if c.InventoryAversion < 0 {
		return mmerrors.Invalid("inventory aversion %v cannot be negative",
			c.InventoryAversion)
	}
	if err := c.Market.Validate(); err != nil {
		return err
	}
	if c.Price.SeriesFile == "" {
		return c.Process().Validate()
	}
	return nil
}

// Process returns the configuration of the Brownian price process,
// sharing the time grid of the market
func (c Config) Process() process.Config {
	return process.Config{
		TotalTime:    c.Market.TotalTime,
		DeltaT:       c.Market.DeltaT,
		Volatility:   c.Price.Volatility,
		InitialPrice: c.Price.InitialPrice,
		Drift:        c.Price.Drift,
	}
}

// CreateProcess returns the price process described by the Config
func (c Config) CreateProcess(src rand.Source) (market.PriceProcess, error) {
	if c.Price.SeriesFile == "" {
		return process.NewBrownian(c.Process(), src)
	}

	sep := c.Price.Separator
	if sep == "" {
		sep = process.DefaultSeparator
	}
	series, err := process.LoadSeries(c.Price.SeriesFile, sep)
	if err != nil {
		return nil, err
	}
	return process.NewReplay(series)
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. All randomness of the
// environment is drawn from src.
func (c Config) Create(src rand.Source) (env.Environment, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	p, err := c.CreateProcess(src)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: could not create "+
			"price process: %w", err)
	}

	var opts []market.Option
	if c.InventoryAversion > 0 {
		u := market.InventoryAversion(c.InventoryAversion)
		opts = append(opts, market.WithTerminalUtility(u))
	}

	switch c.Environment {
	case Inventory:
		e, step, err := market.NewInventory(c.Market, p, src, opts...)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
		return e, step, nil

	case InventoryTime:
		e, step, err := market.NewInventoryTime(c.Market, p, src, opts...)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
		return e, step, nil
	}

	panic(fmt.Sprintf("create: cannot create environment %v, no such "+
		"environment", c.Environment))
}
