package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Survey SurveyConfig `yaml:"survey" mapstructure:"survey"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// SurveyConfig configures the survey source workbook.
type SurveyConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	SheetName   string `yaml:"sheet_name" mapstructure:"sheet_name"`
	CleaningMap string `yaml:"cleaning_map" mapstructure:"cleaning_map"`
}

// MatchConfig configures catalog resolution.
type MatchConfig struct {
	MunicipalityThreshold int      `yaml:"municipality_threshold" mapstructure:"municipality_threshold"`
	ParkThreshold         int      `yaml:"park_threshold" mapstructure:"park_threshold"`
	MunicipalityNoise     []string `yaml:"municipality_noise" mapstructure:"municipality_noise"`
	ParkNoise             []string `yaml:"park_noise" mapstructure:"park_noise"`
}

// ServerConfig configures the dashboard read API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INDUSTRIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("survey.sheet_name", "Formulario Desarrollo Industria")
	v.SetDefault("survey.cleaning_map", "cleaning_map.yaml")
	v.SetDefault("match.municipality_threshold", 87)
	v.SetDefault("match.park_threshold", 90)
	v.SetDefault("match.municipality_noise", []string{"AGS", "AGUASCALIENTES", "MUNICIPIO DE"})
	v.SetDefault("match.park_noise", []string{"PARQUE INDUSTRIAL", "P I", "PI"})
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
