package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging         LoggingConfig         `yaml:"logging"`
	Mongo           MongoConfig           `yaml:"mongo"`
	Scheduler       SchedulerConfig       `yaml:"scheduler"`
	Moderation      ModerationConfig      `yaml:"moderation"`
	ClassifierQuota ClassifierQuotaConfig `yaml:"classifier_quota"`
	API             APIConfig             `yaml:"api"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// SchedulerConfig drives the daily winner aggregation.
type SchedulerConfig struct {
	// Spec is a standard 5-field cron expression evaluated in Timezone.
	Spec     string `yaml:"spec"`
	Timezone string `yaml:"timezone"`
	// RunOnStart runs one aggregation immediately at boot.
	RunOnStart  bool `yaml:"run_on_start"`
	WindowHours int  `yaml:"window_hours"`
}

type ModerationConfig struct {
	ModelName        string `yaml:"model_name"`
	MaxCommentLength int    `yaml:"max_comment_length"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// ClassifierQuotaConfig limits calls to the safety classifier.
// Values <= 0 mean unlimited.
type ClassifierQuotaConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

type APIConfig struct {
	Addr                 string `yaml:"addr"`
	WinnerCacheTTLSecond int    `yaml:"winner_cache_ttl_seconds"`
}

const (
	DefaultSchedulerSpec     = "0 0 * * *"
	DefaultSchedulerTimezone = "Europe/Rome"
	DefaultWindowHours       = 24
	DefaultModelName         = "gemini-2.0-flash"
	DefaultMaxCommentLength  = 500
	DefaultClassifierTimeout = 15 * time.Second
	DefaultAPIAddr           = ":8080"
	DefaultWinnerCacheTTL    = time.Minute
)

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse decodes a config.yaml payload and fills in defaults for missing values.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Scheduler.Spec == "" {
		c.Scheduler.Spec = DefaultSchedulerSpec
	}
	if c.Scheduler.Timezone == "" {
		c.Scheduler.Timezone = DefaultSchedulerTimezone
	}
	if c.Scheduler.WindowHours <= 0 {
		c.Scheduler.WindowHours = DefaultWindowHours
	}
	if c.Moderation.ModelName == "" {
		c.Moderation.ModelName = DefaultModelName
	}
	if c.Moderation.MaxCommentLength <= 0 {
		c.Moderation.MaxCommentLength = DefaultMaxCommentLength
	}
	if c.API.Addr == "" {
		c.API.Addr = DefaultAPIAddr
	}
}

// Window returns the trailing aggregation window.
func (s SchedulerConfig) Window() time.Duration {
	return time.Duration(s.WindowHours) * time.Hour
}

func (m ModerationConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return DefaultClassifierTimeout
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

func (a APIConfig) WinnerCacheTTL() time.Duration {
	if a.WinnerCacheTTLSecond <= 0 {
		return DefaultWinnerCacheTTL
	}
	return time.Duration(a.WinnerCacheTTLSecond) * time.Second
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
