package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI  string `yaml:"uri"`
		Name string `yaml:"name"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret    string `yaml:"jwtSecret"`
		TokenTTLDays int    `yaml:"tokenTTLDays"`
	} `yaml:"auth"`

	AI struct {
		DemoMode bool `yaml:"demoMode"`
		DeepSeek struct {
			APIKey  string `yaml:"apiKey"`
			BaseURL string `yaml:"baseURL"`
			Model   string `yaml:"model"`
		} `yaml:"deepseek"`
		Gemini struct {
			APIKey string `yaml:"apiKey"`
			Model  string `yaml:"model"`
		} `yaml:"gemini"`
	} `yaml:"ai"`

	SMTP struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		User      string `yaml:"user"`
		Password  string `yaml:"password"`
		FromName  string `yaml:"fromName"`
		FromEmail string `yaml:"fromEmail"`
	} `yaml:"smtp"`

	FrontendURL string `yaml:"frontendURL"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8001
	}
	if c.Database.URI == "" {
		c.Database.URI = "mongodb://localhost:27017"
	}
	if c.Database.Name == "" {
		c.Database.Name = "business_analysis"
	}
	if c.Auth.TokenTTLDays == 0 {
		c.Auth.TokenTTLDays = 7
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = "smtp.gmail.com"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.FromName == "" {
		c.SMTP.FromName = "Somna AI"
	}
	if c.SMTP.FromEmail == "" {
		c.SMTP.FromEmail = "noreply@somna-ai.com"
	}
	if c.FrontendURL == "" {
		c.FrontendURL = "http://localhost:3000"
	}
}

// TokenTTL durasi token akses
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLDays) * 24 * time.Hour
}
