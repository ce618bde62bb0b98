package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	Gemini  Gemini  `mapstructure:"gemini"`
	Blogger Blogger `mapstructure:"blogger"`
	Images  Images  `mapstructure:"images"`
	Harvest Harvest `mapstructure:"harvest"`
	Content Content `mapstructure:"content"`
	Publish Publish `mapstructure:"publish"`
	Trends  Trends  `mapstructure:"trends"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// Gemini holds the generation backend configuration
type Gemini struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Blogger holds the publishing platform configuration
type Blogger struct {
	BlogID       string `mapstructure:"blog_id"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// Images holds configuration for all image providers
type Images struct {
	Google   GoogleImagesConfig `mapstructure:"google"`
	Unsplash UnsplashConfig     `mapstructure:"unsplash"`
	Pexels   PexelsConfig       `mapstructure:"pexels"`
	Pixabay  PixabayConfig      `mapstructure:"pixabay"`
	Flickr   FlickrConfig       `mapstructure:"flickr"`
	Timeout  string             `mapstructure:"timeout"`
}

// GoogleImagesConfig holds Google Custom Search image configuration
type GoogleImagesConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SearchID string `mapstructure:"search_id"`
}

// UnsplashConfig holds Unsplash configuration
type UnsplashConfig struct {
	AccessKey string `mapstructure:"access_key"`
}

// PexelsConfig holds Pexels configuration
type PexelsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// PixabayConfig holds Pixabay configuration
type PixabayConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// FlickrConfig holds Flickr configuration
type FlickrConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Harvest holds topic selection tunables
type Harvest struct {
	Category            string `mapstructure:"category"`             // Default topic category
	CandidateCount      int    `mapstructure:"candidate_count"`      // Candidates requested per attempt
	MaxAttempts         int    `mapstructure:"max_attempts"`         // Bounded regeneration loop cap
	SimilarityThreshold int    `mapstructure:"similarity_threshold"` // Reject candidates scoring above this against any existing title
	ExistingTitleCap    int    `mapstructure:"existing_title_cap"`   // Most recent titles considered for dedup
	UseArbitration      bool   `mapstructure:"use_arbitration"`      // Delegate final choice to the generation backend
}

// Content holds article quality gates and truncation tunables
type Content struct {
	MinWordCount      int    `mapstructure:"min_word_count"`
	MinSectionCount   int    `mapstructure:"min_section_count"`
	MinImageCount     int    `mapstructure:"min_image_count"`
	TitleMaxLen       int    `mapstructure:"title_max_len"`
	DescriptionMaxLen int    `mapstructure:"description_max_len"`
	Language          string `mapstructure:"language"` // "en" or "ko"
}

// Publish holds publish scheduling configuration
type Publish struct {
	Draft      bool     `mapstructure:"draft"`
	DelayHours int      `mapstructure:"delay_hours"`
	Labels     []string `mapstructure:"labels"`
	Interval   string   `mapstructure:"interval"` // Scheduler loop interval
}

// Trends holds the trending-topic feed source configuration
type Trends struct {
	Enabled bool     `mapstructure:"enabled"`
	Feeds   []string `mapstructure:"feeds"`
}

// Load reads configuration from viper with all defaults applied.
func Load() (*Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadEnv loads a local .env file when present. Missing files are not an
// error; CI and production supply real environment variables.
func LoadEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// GeminiTimeout returns the parsed generation call timeout.
func (c *Config) GeminiTimeout() time.Duration {
	return parseDurationOr(c.Gemini.Timeout, 120*time.Second)
}

// ImageTimeout returns the parsed per-provider image call timeout.
func (c *Config) ImageTimeout() time.Duration {
	return parseDurationOr(c.Images.Timeout, 15*time.Second)
}

// ScheduleInterval returns the parsed scheduler loop interval.
func (c *Config) ScheduleInterval() time.Duration {
	return parseDurationOr(c.Publish.Interval, 3*time.Hour)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func setDefaults() {
	viper.SetDefault("app.data_dir", ".blogpilot")
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("gemini.timeout", "120s")

	viper.SetDefault("images.timeout", "15s")

	viper.SetDefault("harvest.category", "IT")
	viper.SetDefault("harvest.candidate_count", 10)
	viper.SetDefault("harvest.max_attempts", 10)
	viper.SetDefault("harvest.similarity_threshold", 40)
	viper.SetDefault("harvest.existing_title_cap", 50)
	viper.SetDefault("harvest.use_arbitration", true)

	viper.SetDefault("content.min_word_count", 1200)
	viper.SetDefault("content.min_section_count", 5)
	viper.SetDefault("content.min_image_count", 2)
	viper.SetDefault("content.title_max_len", 50)
	viper.SetDefault("content.description_max_len", 155)
	viper.SetDefault("content.language", "en")

	viper.SetDefault("publish.draft", false)
	viper.SetDefault("publish.delay_hours", 24)
	viper.SetDefault("publish.interval", "3h")

	viper.SetDefault("trends.enabled", false)
	viper.SetDefault("trends.feeds", []string{
		"https://www.reddit.com/r/technology/.rss",
		"https://www.reddit.com/r/programming/.rss",
		"https://news.ycombinator.com/rss",
	})
}

// Validate reports missing required settings. It warns rather than fails
// for anything that only degrades a feature.
func (c *Config) Validate() []string {
	var missing []string
	if c.Gemini.APIKey == "" && os.Getenv("GEMINI_API_KEY") == "" {
		missing = append(missing, "gemini.api_key")
	}
	if c.Blogger.BlogID == "" {
		missing = append(missing, "blogger.blog_id")
	}
	return missing
}
