package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	// EditPasswordHash is the bcrypt hash of the shared edit-mode password.
	EditPasswordHash string `yaml:"edit_password_hash"`
	JWTSecret        string `yaml:"jwt_secret"`
}

type OpenAIConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	ChatModel string `yaml:"chat_model"`
	TaskModel string `yaml:"task_model"`
}

type CostingConfig struct {
	InternalHourlyCost float64 `yaml:"internal_hourly_cost"`
	TargetMarginMin    float64 `yaml:"target_margin_min"`
	TargetMarginMax    float64 `yaml:"target_margin_max"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type Config struct {
	DB      DBConfig      `yaml:"db"`
	Redis   RedisConfig   `yaml:"redis"`
	MQ      MQConfig      `yaml:"mq"`
	Auth    AuthConfig    `yaml:"auth"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Costing CostingConfig `yaml:"costing"`
	Server  ServerConfig  `yaml:"server"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	cfg.ApplyDefaults()
	cfg.OverrideFromEnv()

	return &cfg
}

// ApplyDefaults fills the costing model and provider endpoints with the
// agency defaults when the file leaves them unset.
func (cfg *Config) ApplyDefaults() {
	if cfg.Costing.InternalHourlyCost == 0 {
		cfg.Costing.InternalHourlyCost = 30
	}
	if cfg.Costing.TargetMarginMin == 0 {
		cfg.Costing.TargetMarginMin = 50
	}
	if cfg.Costing.TargetMarginMax == 0 {
		cfg.Costing.TargetMarginMax = 55
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o"
	}
	if cfg.OpenAI.TaskModel == "" {
		cfg.OpenAI.TaskModel = "gpt-4o-mini"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
}

// OverrideFromEnv applies environment overrides for production deployments.
func (cfg *Config) OverrideFromEnv() {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if hash := os.Getenv("EDIT_PASSWORD_HASH"); hash != "" {
		cfg.Auth.EditPasswordHash = hash
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.OpenAI.BaseURL = base
	}

	if cost := os.Getenv("INTERNAL_HOURLY_COST"); cost != "" {
		if c, err := strconv.ParseFloat(cost, 64); err == nil {
			cfg.Costing.InternalHourlyCost = c
		}
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}
