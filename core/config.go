package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host string
		Port int
	}

	// BoundaryConfig selects and configures the table-API boundary the
	// repositories talk to. Kind is one of "fixture", "live" or "postgres".
	BoundaryConfig struct {
		Kind      string
		BaseURL   string
		ProjectID string
		APIKey    string
		Timeout   time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       int
		DisableTLS bool
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		Build    string

		Server   ServerConfig
		Boundary BoundaryConfig
		Database DatabaseConfig

		DefaultFromEmail mail.Address
		FollowUpEmail    mail.Address
		SendgridAPIKey   string
		RollbarToken     string
	}
)

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and ENV-prefixed environment variables, in increasing precedence.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("build", "")
	conf.SetDefault("serverHost", "")
	conf.SetDefault("serverPort", 8000)
	conf.SetDefault("boundaryKind", "fixture")
	conf.SetDefault("boundaryBaseURL", "")
	conf.SetDefault("boundaryProjectID", "")
	conf.SetDefault("boundaryAPIKey", "")
	conf.SetDefault("boundaryTimeout", 10*time.Second)
	conf.SetDefault("dbEngine", "postgres")
	conf.SetDefault("dbName", "darasa")
	conf.SetDefault("dbUser", "")
	conf.SetDefault("dbPassword", "")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", 5432)
	conf.SetDefault("dbDisableTLS", true)
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("followUpEmail", "teacher@localhost")
	conf.SetDefault("sendgridAPIKey", "")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:    conf.GetBool("debug"),
		TestMode: testMode,
		Env:      env,
		AppName:  conf.GetString("appName"),
		Build:    conf.GetString("build"),
		Server: ServerConfig{
			Host: conf.GetString("serverHost"),
			Port: conf.GetInt("serverPort"),
		},
		Boundary: BoundaryConfig{
			Kind:      conf.GetString("boundaryKind"),
			BaseURL:   conf.GetString("boundaryBaseURL"),
			ProjectID: conf.GetString("boundaryProjectID"),
			APIKey:    conf.GetString("boundaryAPIKey"),
			Timeout:   conf.GetDuration("boundaryTimeout"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("dbEngine"),
			Name:       conf.GetString("dbName"),
			User:       conf.GetString("dbUser"),
			Password:   conf.GetString("dbPassword"),
			Host:       conf.GetString("dbHost"),
			Port:       conf.GetInt("dbPort"),
			DisableTLS: conf.GetBool("dbDisableTLS"),
		},
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		FollowUpEmail:    mail.Address{Address: conf.GetString("followUpEmail")},
		SendgridAPIKey:   conf.GetString("sendgridAPIKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
	}
}

// Getwd returns the working directory, falling back to the executable's dir.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		exec, err := os.Executable()
		if err != nil {
			log.Fatalf("config.Getwd: %v", err)
		}
		wd = filepath.Dir(exec)
	}
	return wd
}
