package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/resortbooking/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig          `yaml:"http"`
	GRPC    GRPCConfig          `yaml:"grpc"`
	Log     LogConfig           `yaml:"log"`
	Redis   RedisConfig         `yaml:"redis"`
	Kafka   KafkaConfig         `yaml:"kafka"`
	Resort  domain.ResortConfig `yaml:"resort"`
	Booking BookingConfig       `yaml:"booking"`
	Worker  WorkerConfig        `yaml:"worker"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	ReturnURL      string   `yaml:"return_url"` // linked from the confirmation page
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// RedisConfig is optional; sessions stay in memory only when Addr is empty.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	ConfirmationsTopic string   `yaml:"confirmations_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	SubmitDelayMS      int    `yaml:"submit_delay_ms"`
	SessionIdleMinutes int    `yaml:"session_idle_minutes"`
	Timezone           string `yaml:"timezone"`
}

type WorkerConfig struct {
	SessionSweepSeconds int `yaml:"session_sweep_seconds"`
}

func (b BookingConfig) SubmitDelay() time.Duration {
	return time.Duration(b.SubmitDelayMS) * time.Millisecond
}

func (b BookingConfig) SessionIdleTTL() time.Duration {
	return time.Duration(b.SessionIdleMinutes) * time.Minute
}

// Location resolves Timezone; an empty value means the host's local zone.
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid booking timezone %q: %w", b.Timezone, err)
	}
	return loc, nil
}

func (w WorkerConfig) SessionSweepInterval() time.Duration {
	return time.Duration(w.SessionSweepSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ReturnURL == "" {
		c.HTTP.ReturnURL = "/"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "resortbooking-worker"
	}

	def := domain.DefaultResortConfig()
	if c.Resort.TaxRate == 0 {
		c.Resort.TaxRate = def.TaxRate
	}
	if c.Resort.ResortFee == 0 {
		c.Resort.ResortFee = def.ResortFee
	}
	if c.Resort.MinNights == 0 {
		c.Resort.MinNights = def.MinNights
	}
	if c.Resort.MaxNights == 0 {
		c.Resort.MaxNights = def.MaxNights
	}
	if c.Resort.AdvanceBookingDays == 0 {
		c.Resort.AdvanceBookingDays = def.AdvanceBookingDays
	}
	if c.Resort.CheckInTime == "" {
		c.Resort.CheckInTime = def.CheckInTime
	}
	if c.Resort.CheckOutTime == "" {
		c.Resort.CheckOutTime = def.CheckOutTime
	}

	if c.Booking.SubmitDelayMS == 0 {
		c.Booking.SubmitDelayMS = 1500
	}
	if c.Booking.SessionIdleMinutes == 0 {
		c.Booking.SessionIdleMinutes = 30
	}
	if c.Worker.SessionSweepSeconds == 0 {
		c.Worker.SessionSweepSeconds = 60
	}
}
