package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP *HTTP     `yaml:"http"`
	DB   *Postgres `yaml:"database"`
	RMQ  *RabbitMQ `yaml:"rabbitmq"`
}

type HTTP struct {
	Port int `yaml:"port"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQ struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	VHost    string `yaml:"vhost"`
}

// DSN builds a pgx connection string.
func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// URL builds an amqp connection string.
func (r *RabbitMQ) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/%s",
		r.User, r.Password, r.Host, r.Port, r.VHost)
}

// Load reads a yaml config file, then lets environment variables fill
// missing sections. A missing file is not an error; the env fallback covers
// deployments that configure everything through the process environment.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.fillFromEnv()
	return cfg, nil
}

// fillFromEnv loads .env if present and fills any section the yaml file did
// not provide.
func (c *Config) fillFromEnv() {
	_ = godotenv.Load()

	if c.HTTP == nil {
		port, _ := strconv.Atoi(getEnv("HTTP_PORT", "3000"))
		c.HTTP = &HTTP{Port: port}
	}
	if c.DB == nil {
		c.DB = &Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "admin"),
			Password: getEnv("POSTGRES_PASSWORD", "admin"),
			Database: getEnv("POSTGRES_DBNAME", "tiffinbox_db"),
		}
	}
	if c.RMQ == nil {
		c.RMQ = &RabbitMQ{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
