// Package config loads service configuration from an optional config.yaml
// and LIFTPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "LIFTPLAN"

type Config struct {
	Env       string          `mapstructure:"env"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	LLM       LLMConfig       `mapstructure:"llm"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Otel      OtelConfig      `mapstructure:"otel"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	MaxRequestBytes int64         `mapstructure:"max_request_bytes"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type LLMConfig struct {
	Provider                string  `mapstructure:"provider"`
	Model                   string  `mapstructure:"model"`
	MaxOutputTokens         int     `mapstructure:"max_output_tokens"`
	DraftTemperature        float64 `mapstructure:"draft_temperature"`
	RetryTemperature        float64 `mapstructure:"retry_temperature"`
	RepairTemperature       float64 `mapstructure:"repair_temperature"`
	RefineTemperature       float64 `mapstructure:"refine_temperature"`
	SkipRefine              bool    `mapstructure:"skip_refine"`
	FallbackOnProviderError bool    `mapstructure:"fallback_on_provider_error"`
}

type OpenAIConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// RedisConfig selects the staging backend; an empty Addr keeps staging in
// process memory.
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	StagingTTL time.Duration `mapstructure:"staging_ttl"`
}

type KnowledgeConfig struct {
	Dir        string `mapstructure:"dir"`
	GCSBucket  string `mapstructure:"gcs_bucket"`
	GCSPrefix  string `mapstructure:"gcs_prefix"`
	// StorageMode is gcs or gcs_emulator; EmulatorHost selects the emulator
	// when the mode is left empty.
	StorageMode  string `mapstructure:"storage_mode"`
	EmulatorHost string `mapstructure:"emulator_host"`
	Watch        bool   `mapstructure:"watch"`
	CharBudget   int    `mapstructure:"char_budget"`
}

type ProgressConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type OtelConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	ServiceName string            `mapstructure:"service_name"`
	Endpoint    string            `mapstructure:"endpoint"`
	SampleRatio float64           `mapstructure:"sample_ratio"`
	Insecure    bool              `mapstructure:"insecure"`
	Headers     map[string]string `mapstructure:"headers"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.max_request_bytes", 1<<20)
	v.SetDefault("http.request_timeout", "180s")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("http.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_output_tokens", 16000)
	v.SetDefault("llm.draft_temperature", 0.3)
	v.SetDefault("llm.retry_temperature", 0.4)
	v.SetDefault("llm.repair_temperature", 0.0)
	v.SetDefault("llm.refine_temperature", 0.2)
	v.SetDefault("llm.skip_refine", false)
	v.SetDefault("llm.fallback_on_provider_error", false)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.timeout", "120s")
	v.SetDefault("openai.max_retries", 2)
	v.SetDefault("gemini.api_key", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.staging_ttl", "10m")

	v.SetDefault("knowledge.dir", "")
	v.SetDefault("knowledge.gcs_bucket", "")
	v.SetDefault("knowledge.gcs_prefix", "knowledge/")
	v.SetDefault("knowledge.storage_mode", "")
	v.SetDefault("knowledge.emulator_host", "")
	v.SetDefault("knowledge.watch", false)
	v.SetDefault("knowledge.char_budget", 12000)

	v.SetDefault("progress.tick_interval", "2s")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.service_name", "liftplan")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.insecure", false)
	v.SetDefault("otel.headers", map[string]string{})

	v.SetDefault("metrics.enabled", true)
}

// Load reads config.yaml from LIFTPLAN_CONFIG_PATH (or ./config) when present,
// overlays the environment and validates the result.
func Load() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG_PATH"))
	if path == "" {
		path = "./config"
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	// Env lists arrive as one comma-separated string.
	if raw := strings.TrimSpace(os.Getenv(EnvPrefix + "_HTTP_CORS_ORIGINS")); raw != "" {
		cfg.HTTP.CORSOrigins = splitList(raw)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.LLM.Provider {
	case "openai", "gemini", "mock":
	default:
		errs = append(errs, fmt.Errorf("llm.provider must be openai, gemini or mock, got %q", c.LLM.Provider))
	}
	if c.LLM.MaxOutputTokens <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_output_tokens must be positive"))
	}
	for name, t := range map[string]float64{
		"draft":  c.LLM.DraftTemperature,
		"retry":  c.LLM.RetryTemperature,
		"repair": c.LLM.RepairTemperature,
		"refine": c.LLM.RefineTemperature,
	} {
		if t < 0 || t > 2 {
			errs = append(errs, fmt.Errorf("llm.%s_temperature out of range: %v", name, t))
		}
	}
	if c.HTTP.MaxRequestBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_request_bytes must be positive"))
	}
	if c.HTTP.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http.request_timeout must be positive"))
	}
	if c.Redis.StagingTTL <= 0 {
		errs = append(errs, fmt.Errorf("redis.staging_ttl must be positive"))
	}
	if c.Knowledge.CharBudget < 0 {
		errs = append(errs, fmt.Errorf("knowledge.char_budget must not be negative"))
	}
	if c.Progress.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("progress.tick_interval must be positive"))
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("otel.sample_ratio must be within [0,1]"))
	}
	if c.Knowledge.Dir != "" && c.Knowledge.GCSBucket != "" {
		errs = append(errs, fmt.Errorf("knowledge.dir and knowledge.gcs_bucket are mutually exclusive"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
