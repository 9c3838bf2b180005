// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sik-configurator/internal/protocol"
	"sik-configurator/internal/radio"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Radio    RadioConfig    `mapstructure:"radio"`
	Events   EventsConfig   `mapstructure:"events"`
	App      AppConfig      `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig represents profile storage configuration. Profiles are
// kept in memory when Enabled is false.
type DatabaseConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	DBName       string        `mapstructure:"dbname"`
	SSLMode      string        `mapstructure:"sslmode"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// RadioConfig represents serial link and AT protocol settings
type RadioConfig struct {
	DefaultBaudRate    int           `mapstructure:"default_baud_rate"`
	DataBits           int           `mapstructure:"data_bits"`
	StopBits           int           `mapstructure:"stop_bits"`
	Parity             string        `mapstructure:"parity"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	GuardTime          time.Duration `mapstructure:"guard_time"`
	CommandModeTimeout time.Duration `mapstructure:"command_mode_timeout"`
	SettleTime         time.Duration `mapstructure:"settle_time"`
	CommandTimeout     time.Duration `mapstructure:"command_timeout"`
	PollInterval       time.Duration `mapstructure:"poll_interval"`
	ExitCommand        string        `mapstructure:"exit_command"`
	Simulate           bool          `mapstructure:"simulate"`
}

// EventsConfig represents the radio event stream configuration
type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

var (
	validEnvs     = []string{"development", "staging", "production", "test"}
	validLevels   = []string{"debug", "info", "warn", "error", "fatal"}
	validFormats  = []string{"json", "console"}
	validParities = []string{"none", "odd", "even"}
)

// Load loads configuration from config.yaml in path, ./configs or the
// working directory, then applies SIK_CONFIGURATOR_* environment
// variables. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Environment variable support
	v.SetEnvPrefix("SIK_CONFIGURATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "sik_configurator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_lifetime", "5m")

	// Security defaults
	v.SetDefault("security.allowed_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// Radio defaults
	v.SetDefault("radio.default_baud_rate", radio.DefaultBaudRate)
	v.SetDefault("radio.data_bits", 8)
	v.SetDefault("radio.stop_bits", 1)
	v.SetDefault("radio.parity", "none")
	v.SetDefault("radio.read_timeout", "1s")
	v.SetDefault("radio.write_timeout", "1s")
	v.SetDefault("radio.guard_time", "1.2s")
	v.SetDefault("radio.command_mode_timeout", "2.5s")
	v.SetDefault("radio.settle_time", "200ms")
	v.SetDefault("radio.command_timeout", "1.5s")
	v.SetDefault("radio.poll_interval", "50ms")
	v.SetDefault("radio.exit_command", radio.DefaultExitCommand)
	v.SetDefault("radio.simulate", false)

	// Event defaults
	v.SetDefault("events.buffer_size", 1000)

	// App defaults
	v.SetDefault("app.name", "sik-configurator")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if config.Database.Enabled && config.Database.Host == "" {
		return fmt.Errorf("database.host is required when database.enabled is set")
	}

	if !slices.Contains(validEnvs, config.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}
	if !slices.Contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}
	if !slices.Contains(validFormats, config.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %v", validFormats)
	}
	if !slices.Contains(validParities, config.Radio.Parity) {
		return fmt.Errorf("radio.parity must be one of: %v", validParities)
	}

	if config.Radio.DefaultBaudRate <= 0 {
		return fmt.Errorf("radio.default_baud_rate must be positive")
	}
	durations := map[string]time.Duration{
		"radio.read_timeout":         config.Radio.ReadTimeout,
		"radio.write_timeout":        config.Radio.WriteTimeout,
		"radio.command_mode_timeout": config.Radio.CommandModeTimeout,
		"radio.command_timeout":      config.Radio.CommandTimeout,
		"radio.poll_interval":        config.Radio.PollInterval,
		"radio.guard_time":           config.Radio.GuardTime,
		"radio.settle_time":          config.Radio.SettleTime,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	if config.Events.BufferSize <= 0 {
		return fmt.Errorf("events.buffer_size must be positive")
	}

	return nil
}

// RadioTiming returns the AT protocol timing for the radio engine.
func (c *Config) RadioTiming() radio.Timing {
	return radio.Timing{
		GuardTime:          c.Radio.GuardTime,
		NegotiationTimeout: c.Radio.CommandModeTimeout,
		SettleTime:         c.Radio.SettleTime,
		CommandTimeout:     c.Radio.CommandTimeout,
		PollInterval:       c.Radio.PollInterval,
		ReadTimeout:        c.Radio.ReadTimeout,
	}
}

// SerialConfig returns the serial framing used for physical ports.
func (c *Config) SerialConfig() protocol.SerialConfig {
	return protocol.SerialConfig{
		BaudRate:     c.Radio.DefaultBaudRate,
		DataBits:     c.Radio.DataBits,
		StopBits:     c.Radio.StopBits,
		Parity:       c.Radio.Parity,
		ReadTimeout:  c.Radio.ReadTimeout,
		WriteTimeout: c.Radio.WriteTimeout,
	}
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.DBName, c.Database.SSLMode)
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment checks if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsDebugEnabled checks if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.IsDevelopment()
}
