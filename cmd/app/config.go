package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Host           string   `mapstructure:"HOST"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	AuthRequired   bool     `mapstructure:"AUTH_REQUIRED"`

	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`

	// An empty MQHost disables the broker and the welcome mailer.
	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`
}

var defaults = map[string]any{
	"PORT":              "4000",
	"HOST":              "0.0.0.0",
	"ENVIRONMENT":       "development",
	"VERSION":           "1.0.0",
	"TRUSTED_ORIGINS":   "http://localhost:5173,http://0.0.0.0:10000,https://mern-blog-ui.netlify.app",
	"JWT_SECRET":        "",
	"AUTH_REQUIRED":     false,
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "",
	"POSTGRES_DB":       "blog",
	"MAIL_HOST":         "",
	"MAIL_PORT":         587,
	"MAIL_USER":         "",
	"MAIL_PASSWORD":     "",
	"MAIL_SENDER":       "",
	"RABBITMQ_HOST":     "",
	"RABBITMQ_PORT":     "5672",
	"RABBITMQ_USER":     "guest",
	"RABBITMQ_PASSWORD": "guest",
}

// loadConfig reads the dotenv file at path when it exists and lets the process environment override it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) isDevelopment() bool {
	return c.Environment == "development"
}
