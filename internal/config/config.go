package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Quiz   QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

// LLMConfig selects and configures the model behind the generation chain.
type LLMConfig struct {
	Provider    string // "openai" or "ollama"
	Model       string
	APIKey      string
	ServerURL   string // ollama only
	Temperature float64
}

// RedisConfig points at the optional result store. An empty Address
// disables it.
type RedisConfig struct {
	Address     string
	Password    string
	DB          int
	DialTimeout time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type QuizConfig struct {
	ResponseTemplatePath string
	ResultTTL            time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 0)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.body_limit_mb", 20)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.server", "http://localhost:11434")
	v.SetDefault("llm.temperature", 0.5)
	v.SetDefault("redis.dial_timeout", "2s")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("quiz.response_template", "configs/Response.json")
	v.SetDefault("quiz.result_ttl", "30m")
}

// LoadConfig reads config.yaml (optional), .env (optional) and environment
// overrides, in that order of increasing precedence.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	resultTTL, err := time.ParseDuration(v.GetString("quiz.result_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid quiz.result_ttl %q: %w", v.GetString("quiz.result_ttl"), err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			ServerURL:   v.GetString("llm.server"),
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Redis: RedisConfig{
			Address:     v.GetString("redis.address"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			DialTimeout: v.GetDuration("redis.dial_timeout"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Quiz: QuizConfig{
			ResponseTemplatePath: v.GetString("quiz.response_template"),
			ResultTTL:            resultTTL,
		},
	}

	// Override with the conventional environment variable names if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(strings.TrimSpace(port))
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("invalid SERVER_PORT %q: must be a port number", port)
		}
		config.Server.Port = p
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = strings.ToLower(provider)
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.LLM.APIKey = openAIKey
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if tmplPath := os.Getenv("RESPONSE_TEMPLATE_PATH"); tmplPath != "" {
		config.Quiz.ResponseTemplatePath = tmplPath
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}

// BodyLimit returns the maximum accepted request size in bytes.
func (c *Config) BodyLimit() int {
	if c.Server.BodyLimitMB <= 0 {
		return 20 * 1024 * 1024
	}
	return c.Server.BodyLimitMB * 1024 * 1024
}
