package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/viditpawar/portfolio/internal/scrollspy"
)

// Config holds the server settings.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
	Mode     string `mapstructure:"mode"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	ScrollSpy struct {
		Bias float64 `mapstructure:"bias"`
	} `mapstructure:"scrollspy"`

	SMTP struct {
		Host string `mapstructure:"host"`
		Port string `mapstructure:"port"`
		User string `mapstructure:"user"`
		Pass string `mapstructure:"pass"`
		To   string `mapstructure:"to"`
	} `mapstructure:"smtp"`

	Admin struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`

	Tracking struct {
		Enabled         bool `mapstructure:"enabled"`
		RetentionMonths int  `mapstructure:"retentionMonths"`
	} `mapstructure:"tracking"`
}

// legacyEnv maps the plain environment variables used by earlier
// deployments onto config keys.
var legacyEnv = map[string]string{
	"mode":           "GIN_MODE",
	"port":           "PORT",
	"smtp.host":      "SMTP_HOST",
	"smtp.port":      "SMTP_PORT",
	"smtp.user":      "SMTP_USER",
	"smtp.pass":      "SMTP_PASS",
	"smtp.to":        "TO_EMAIL",
	"admin.username": "ADMIN_USERNAME",
	"admin.password": "ADMIN_PASSWORD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("mode", "debug")
	v.SetDefault("db.path", "portfolio.db")
	v.SetDefault("scrollspy.bias", scrollspy.DefaultBias)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("tracking.enabled", true)
	v.SetDefault("tracking.retentionMonths", 12)
}

// Load reads .env (if present), an optional portfolio.{json,yaml,toml} from
// configDir, then environment overrides. Environment variables use the
// PORTFOLIO_ prefix with dots replaced by underscores, e.g.
// PORTFOLIO_SCROLLSPY_BIAS.
func Load(configDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("portfolio")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "PORTFOLIO_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Tracking.RetentionMonths < 1 {
		cfg.Tracking.RetentionMonths = 1
	}
	return &cfg, nil
}
