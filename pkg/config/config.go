package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/vsinha/supplysim/pkg/application/services/capacity"
	"github.com/vsinha/supplysim/pkg/application/services/demand"
	"github.com/vsinha/supplysim/pkg/application/services/inventory"
	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// FileName is the optional override file looked up in the working directory
const FileName = "supplysim"

// MonthLayout is the layout of demand.start_month
const MonthLayout = "2006-01"

// Config groups every pipeline parameter
type Config struct {
	App       AppConfig
	Demand    DemandConfig
	Inventory InventoryConfig
	Capacity  CapacityConfig
	Output    OutputConfig
}

// AppConfig holds logging settings
type AppConfig struct {
	Env      string // development -> console logs; anything else -> JSON
	LogLevel string
}

// DemandConfig holds the synthetic demand parameters
type DemandConfig struct {
	Seed       int64
	Min        int
	Max        int
	StartMonth time.Time
}

// InventoryConfig holds the inventory roll-forward parameters
type InventoryConfig struct {
	StartingInventory int64
	InboundSupply     int64
}

// CapacityConfig holds the capacity scenario parameters
type CapacityConfig struct {
	DailyCapacity int64
	SpikePct      float64
}

// OutputConfig holds where results are written
type OutputConfig struct {
	Dir string
}

// Defaults returns the reference scenario without reading any file
func Defaults() *Config {
	cfg, _ := fromViper(newViper())
	return cfg
}

// Load reads supplysim.yaml from the working directory when present and
// falls back to defaults for anything it does not set
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory to look in
func LoadFrom(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	demandDefaults := demand.DefaultConfig()
	inventoryDefaults := inventory.DefaultConfig()
	capacityDefaults := capacity.DefaultConfig()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("demand.seed", demandDefaults.Seed)
	v.SetDefault("demand.min", demandDefaults.MinDemand)
	v.SetDefault("demand.max", demandDefaults.MaxDemand)
	v.SetDefault("demand.start_month", demandDefaults.StartMonth.Format(MonthLayout))

	v.SetDefault("inventory.starting_inventory", int64(inventoryDefaults.StartingInventory))
	v.SetDefault("inventory.inbound_supply", int64(inventoryDefaults.InboundSupply))

	v.SetDefault("capacity.daily_capacity", int64(capacityDefaults.DailyCapacity))
	v.SetDefault("capacity.spike_pct", capacityDefaults.SpikePct)

	v.SetDefault("output.dir", "outputs")
}

func fromViper(v *viper.Viper) (*Config, error) {
	startMonth, err := time.Parse(MonthLayout, v.GetString("demand.start_month"))
	if err != nil {
		return nil, fmt.Errorf("invalid demand.start_month %q: %w", v.GetString("demand.start_month"), err)
	}

	return &Config{
		App: AppConfig{
			Env:      v.GetString("app.env"),
			LogLevel: v.GetString("app.log_level"),
		},
		Demand: DemandConfig{
			Seed:       v.GetInt64("demand.seed"),
			Min:        v.GetInt("demand.min"),
			Max:        v.GetInt("demand.max"),
			StartMonth: startMonth,
		},
		Inventory: InventoryConfig{
			StartingInventory: v.GetInt64("inventory.starting_inventory"),
			InboundSupply:     v.GetInt64("inventory.inbound_supply"),
		},
		Capacity: CapacityConfig{
			DailyCapacity: v.GetInt64("capacity.daily_capacity"),
			SpikePct:      v.GetFloat64("capacity.spike_pct"),
		},
		Output: OutputConfig{
			Dir: v.GetString("output.dir"),
		},
	}, nil
}

// DemandGenerator converts the demand section to the generator's config
func (c *Config) DemandGenerator() demand.Config {
	return demand.Config{
		Seed:       c.Demand.Seed,
		MinDemand:  c.Demand.Min,
		MaxDemand:  c.Demand.Max,
		StartMonth: c.Demand.StartMonth,
		Months:     entities.MonthsInHorizon,
	}
}

// InventorySimulator converts the inventory section to the simulator's config
func (c *Config) InventorySimulator() inventory.Config {
	return inventory.Config{
		StartingInventory: entities.Quantity(c.Inventory.StartingInventory),
		InboundSupply:     entities.Quantity(c.Inventory.InboundSupply),
	}
}

// CapacitySimulator converts the capacity section to the simulator's config
func (c *Config) CapacitySimulator() capacity.Config {
	return capacity.Config{
		DailyCapacity: entities.Quantity(c.Capacity.DailyCapacity),
		SpikePct:      c.Capacity.SpikePct,
	}
}
