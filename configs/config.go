package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

type DB struct {
	Driver             string `default:"postgres"`
	Host               string `default:"localhost"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string
	Database           string `default:"postgres"`
	Path               string `default:"beercritic.db"`
	MaxIdleConnections int    `default:"10"`
	MaxOpenConnections int    `default:"10"`
}

type Server struct {
	Port    int    `default:"8080"`
	BaseURL string `default:"http://localhost:8080"`
}

type Integrations struct {
	Beer []string `default:"untappd_web"`
}

type Auth struct {
	SecretKey string        `validate:"required"`
	Audience  string        `default:"beercritic"`
	Domain    string        `default:"beercritic.local"`
	TokenTTL  time.Duration `default:"24h"`
	ResetTTL  time.Duration `default:"1h"`
}

type Session struct {
	Lifetime     time.Duration `default:"12h"`
	CookieName   string        `default:"beercritic_session"`
	CookieSecure bool
}

type Mail struct {
	Provider     string `default:"log"`
	From         string `default:"no-reply@beercritic.local"`
	SMTPHost     string
	SMTPPort     int `default:"587"`
	SMTPUser     string
	SMTPPassword string
	SendGridKey  string
}

type Catalog struct {
	DefaultSort string `default:"score"`
}

type Config struct {
	DB           DB
	Server       Server
	Integrations Integrations
	Auth         Auth
	Session      Session
	Mail         Mail
	Catalog      Catalog
}

const envPrefix = "BEERCRITIC" // env prefix for env vars

var ErrConfiguration = errors.New("configuration error")

// LoadDotEnv copies the variables of a .env file (or the given files) into
// the environment. Variables already set win.
func LoadDotEnv(logger *zap.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}
}

func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("%w: DB.Driver must be postgres or sqlite, got %q", ErrConfiguration, c.DB.Driver)
	}

	switch c.Mail.Provider {
	case "log", "smtp", "sendgrid":
	default:
		return fmt.Errorf("%w: Mail.Provider must be log, smtp or sendgrid, got %q", ErrConfiguration, c.Mail.Provider)
	}

	return nil
}
