package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type MenuDish struct {
	Name       string  `mapstructure:"name"`
	Price      float64 `mapstructure:"price"`
	Complexity float64 `mapstructure:"complexity"`
	Station    string  `mapstructure:"station"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type Config struct {
	Seed         int64         `mapstructure:"seed"`
	StartTime    time.Time     `mapstructure:"start_time"`
	ServiceHours time.Duration `mapstructure:"service_duration"`
	Continuous   bool          `mapstructure:"continuous"`
	TickInterval time.Duration `mapstructure:"tick_interval"`

	NumTables       int     `mapstructure:"num_tables"`
	NumWaiters      int     `mapstructure:"num_waiters"`
	NumChefs        int     `mapstructure:"num_chefs"`
	CounterCapacity int     `mapstructure:"counter_capacity"`
	FloorWidth      float64 `mapstructure:"floor_width"`
	FloorDepth      float64 `mapstructure:"floor_depth"`

	ArrivalRate    float64 `mapstructure:"arrival_rate"` // customers per hour
	PeakHourFactor float64 `mapstructure:"peak_hour_factor"`
	WeekendFactor  float64 `mapstructure:"weekend_factor"`

	CustomerPatience   time.Duration `mapstructure:"customer_patience"`
	OrderTakingTime    time.Duration `mapstructure:"order_taking_time"`
	EatingTime         time.Duration `mapstructure:"eating_time"`
	CounterWaitTimeout time.Duration `mapstructure:"counter_wait_timeout"`
	MoveRetryMax       int           `mapstructure:"move_retry_max"`
	MoveRetrySpacing   time.Duration `mapstructure:"move_retry_spacing"`
	BurnMargin         time.Duration `mapstructure:"burn_margin"`
	NearbyWorkRadius   float64       `mapstructure:"nearby_work_radius"`

	WaiterSpeed   float64 `mapstructure:"waiter_speed"`
	ChefSpeed     float64 `mapstructure:"chef_speed"`
	CustomerSpeed float64 `mapstructure:"customer_speed"`

	StartingFunds        float64 `mapstructure:"starting_funds"`
	PriceMultiplier      float64 `mapstructure:"price_multiplier"`
	IngredientCostFactor float64 `mapstructure:"ingredient_cost_factor"`
	CookSpeedMultiplier  float64 `mapstructure:"cook_speed_multiplier"`

	Stations   []StationSpec `mapstructure:"stations"`
	MenuDishes []MenuDish    `mapstructure:"menu_dishes"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	Database         DatabaseConfig `mapstructure:"database"`
	SnapshotInterval time.Duration  `mapstructure:"snapshot_interval"`
	Resume           bool           `mapstructure:"resume"`
}

func setDefaults() {
	viper.SetDefault("seed", 42)
	viper.SetDefault("start_time", time.Now().Format(time.RFC3339))
	viper.SetDefault("service_duration", "8h")
	viper.SetDefault("tick_interval", "500ms")
	viper.SetDefault("num_tables", 12)
	viper.SetDefault("num_waiters", 3)
	viper.SetDefault("num_chefs", 2)
	viper.SetDefault("counter_capacity", DefaultCounterCapacity)
	viper.SetDefault("floor_width", 30.0)
	viper.SetDefault("floor_depth", 20.0)
	viper.SetDefault("arrival_rate", 24.0)
	viper.SetDefault("peak_hour_factor", 1.5)
	viper.SetDefault("weekend_factor", 1.2)
	viper.SetDefault("customer_patience", "120s")
	viper.SetDefault("order_taking_time", "10s")
	viper.SetDefault("eating_time", "90s")
	viper.SetDefault("counter_wait_timeout", "30s")
	viper.SetDefault("move_retry_max", 5)
	viper.SetDefault("move_retry_spacing", "2s")
	viper.SetDefault("burn_margin", "60s")
	viper.SetDefault("nearby_work_radius", 6.0)
	viper.SetDefault("waiter_speed", 1.6)
	viper.SetDefault("chef_speed", 1.4)
	viper.SetDefault("customer_speed", 1.2)
	viper.SetDefault("starting_funds", 200.0)
	viper.SetDefault("price_multiplier", 1.0)
	viper.SetDefault("ingredient_cost_factor", 0.35)
	viper.SetDefault("cook_speed_multiplier", 1.0)
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("output_format", "json")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("output_folder", "floorsim_events")
	viper.SetDefault("snapshot_interval", "0s")
}

// LoadConfig initializes and reads the configuration using Viper. A
// missing config file is fine; defaults and flags carry a full run.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(config.MenuDishes) == 0 {
		config.MenuDishes = DefaultMenuDishes()
	}
	if len(config.Stations) == 0 {
		config.Stations = DefaultStations()
	}

	return &config, nil
}

// DefaultMenuDishes is the built-in menu used when the config file
// supplies none.
func DefaultMenuDishes() []MenuDish {
	return []MenuDish{
		{Name: "margherita", Price: 11.50, Complexity: 1.2, Station: "oven"},
		{Name: "carbonara", Price: 13.00, Complexity: 1.4, Station: "hob"},
		{Name: "ribeye", Price: 24.00, Complexity: 1.8, Station: "grill"},
		{Name: "risotto", Price: 14.50, Complexity: 1.6, Station: "hob"},
		{Name: "caesar_salad", Price: 9.00, Complexity: 0.8, Station: "cold"},
	}
}

// DefaultStations mirrors the default menu: an auto-cook oven, a manual
// hob and grill, and a cold station with no real cook time.
func DefaultStations() []StationSpec {
	return []StationSpec{
		{Kind: "oven", AcceptedTypes: []string{"margherita"}, AutoCook: true, CookDuration: 25 * time.Second, Capacity: 2},
		{Kind: "hob", AcceptedTypes: []string{"carbonara", "risotto"}, AutoCook: false, CookDuration: 20 * time.Second, Capacity: 2},
		{Kind: "grill", AcceptedTypes: []string{"ribeye"}, AutoCook: false, CookDuration: 30 * time.Second, Capacity: 1},
		{Kind: "cold", AcceptedTypes: []string{"caesar_salad"}, AutoCook: true, CookDuration: 8 * time.Second, Capacity: 2},
	}
}

// LoadMenuDishData reads extra dishes from a CSV file with columns
// name,price,complexity,station. The header row is skipped.
func (cfg *Config) LoadMenuDishData(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Read()

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(fields) < 4 {
			continue
		}
		price, _ := strconv.ParseFloat(fields[1], 64)
		complexity, _ := strconv.ParseFloat(fields[2], 64)
		cfg.MenuDishes = append(cfg.MenuDishes, MenuDish{
			Name:       fields[0],
			Price:      price,
			Complexity: complexity,
			Station:    fields[3],
		})
	}

	return nil
}
