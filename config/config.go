package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig       `yaml:"http"`
	Database DatabaseConfig   `yaml:"database"`
	Redis    RedisConfig      `yaml:"redis"`
	Kafka    KafkaConfig      `yaml:"kafka"`
	Booking  BookingConfig    `yaml:"booking"`
	Worker   WorkerConfig     `yaml:"worker"`
	Log      LogConfig        `yaml:"log"`
	Holidays map[int][]string `yaml:"holidays"`
	Packs    []PackConfig     `yaml:"packs"`
}

type HTTPConfig struct {
	Address            string   `yaml:"address"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	DefaultPack           string   `yaml:"default_pack"`
	TimeSlots             []string `yaml:"time_slots"`
	Timezone              string   `yaml:"timezone"`
	ConfirmationURL       string   `yaml:"confirmation_url"`
	SubmitTimeoutSeconds  int      `yaml:"submit_timeout_seconds"`
	AvailabilityCacheTTL  int      `yaml:"availability_cache_ttl_seconds"`
	SessionIdleTTLMinutes int      `yaml:"session_idle_ttl_minutes"`
}

func (b BookingConfig) SubmitTimeout() time.Duration {
	return time.Duration(b.SubmitTimeoutSeconds) * time.Second
}

func (b BookingConfig) CacheTTL() time.Duration {
	return time.Duration(b.AvailabilityCacheTTL) * time.Second
}

func (b BookingConfig) SessionIdleTTL() time.Duration {
	return time.Duration(b.SessionIdleTTLMinutes) * time.Minute
}

// Location resolves the timezone used to decide what "today" is.
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type WorkerConfig struct {
	SessionSweepMinutes int `yaml:"session_sweep_minutes"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Production bool   `yaml:"production"`
}

type PackConfig struct {
	Slug     string   `yaml:"slug"`
	Name     string   `yaml:"name"`
	Duration string   `yaml:"duration"`
	Details  []string `yaml:"details"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Default returns a fully populated configuration for local use.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"https://www.nuisibook.com"}
	}
	if c.HTTP.RateLimitPerMinute == 0 {
		c.HTTP.RateLimitPerMinute = 60
	}
	if c.HTTP.RateLimitBurst == 0 {
		c.HTTP.RateLimitBurst = 10
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "booking-requests"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "pestbooking-worker"
	}
	if c.Booking.DefaultPack == "" {
		c.Booking.DefaultPack = "rongeur"
	}
	if len(c.Booking.TimeSlots) == 0 {
		c.Booking.TimeSlots = append([]string(nil), defaultTimeSlots...)
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Europe/Paris"
	}
	if c.Booking.ConfirmationURL == "" {
		c.Booking.ConfirmationURL = "https://www.nuisibook.com/validation-du-rdv"
	}
	if c.Booking.SubmitTimeoutSeconds == 0 {
		c.Booking.SubmitTimeoutSeconds = 10
	}
	if c.Booking.AvailabilityCacheTTL == 0 {
		c.Booking.AvailabilityCacheTTL = 300
	}
	if c.Booking.SessionIdleTTLMinutes == 0 {
		c.Booking.SessionIdleTTLMinutes = 60
	}
	if c.Worker.SessionSweepMinutes == 0 {
		c.Worker.SessionSweepMinutes = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if len(c.Holidays) == 0 {
		c.Holidays = make(map[int][]string, len(frenchHolidays))
		for year, days := range frenchHolidays {
			c.Holidays[year] = append([]string(nil), days...)
		}
	}
	if len(c.Packs) == 0 {
		c.Packs = defaultPacks()
	}
}

func (c *Config) Validate() error {
	var errs []error

	for year, days := range c.Holidays {
		for _, d := range days {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				errs = append(errs, fmt.Errorf("holidays %d: %q is not a YYYY-MM-DD date", year, d))
			}
		}
	}

	seen := make(map[string]bool, len(c.Packs))
	for _, p := range c.Packs {
		if p.Slug == "" {
			errs = append(errs, errors.New("packs: slug is required"))
			continue
		}
		if seen[p.Slug] {
			errs = append(errs, fmt.Errorf("packs: duplicate slug %q", p.Slug))
		}
		seen[p.Slug] = true
	}
	if !seen[c.Booking.DefaultPack] {
		errs = append(errs, fmt.Errorf("booking: default pack %q is not configured", c.Booking.DefaultPack))
	}

	if len(c.Booking.TimeSlots) == 0 {
		errs = append(errs, errors.New("booking: at least one time slot is required"))
	}
	if _, err := c.Booking.Location(); err != nil {
		errs = append(errs, fmt.Errorf("booking: timezone: %w", err))
	}
	if c.HTTP.RateLimitPerMinute < 0 || c.HTTP.RateLimitBurst < 0 {
		errs = append(errs, errors.New("http: rate limits must not be negative"))
	}
	if c.Booking.SubmitTimeoutSeconds < 0 || c.Booking.AvailabilityCacheTTL < 0 || c.Booking.SessionIdleTTLMinutes < 0 {
		errs = append(errs, errors.New("booking: durations must not be negative"))
	}
	if c.Worker.SessionSweepMinutes < 0 {
		errs = append(errs, errors.New("worker: session sweep interval must not be negative"))
	}

	return errors.Join(errs...)
}
