package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"gopkg.in/yaml.v3"
)

// NormalizerConfig selects the stemmer and additional stopwords.
type NormalizerConfig struct {
	Stemmer        string   `yaml:"stemmer"`
	ExtraStopwords []string `yaml:"extra_stopwords,omitempty"`
}

// VectorizerConfig configures n-gram extraction.
type VectorizerConfig struct {
	NGramMin       int `yaml:"ngram_min"`
	NGramMax       int `yaml:"ngram_max"`
	MinTokenLength int `yaml:"min_token_length"`
}

// ClassifierConfig configures the naive Bayes model.
type ClassifierConfig struct {
	Alpha float64 `yaml:"alpha"`
}

// CorpusConfig points at an optional YAML training corpus. Empty means the
// built-in seed corpus.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig toggles reuse of fitted models between calls.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ReportConfig configures batch summaries.
type ReportConfig struct {
	TopTerms int `yaml:"top_terms"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Cache      CacheConfig      `yaml:"cache"`
	Report     ReportConfig     `yaml:"report"`
	Log        LogConfig        `yaml:"log"`
}

// envOverrides are read from the process environment after the file.
type envOverrides struct {
	LogLevel   string `env:"SENTIMENT_LOG_LEVEL"`
	CorpusPath string `env:"SENTIMENT_CORPUS_PATH"`
	Stemmer    string `env:"SENTIMENT_STEMMER"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, applyEnv(cfg)
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/sentiment/config.yaml.
// If neither exists, it writes defaults to ~/.config/sentiment/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, applyEnv(cfg)
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sentiment", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Normalizer: NormalizerConfig{Stemmer: "porter"},
		Vectorizer: VectorizerConfig{NGramMin: 1, NGramMax: 2, MinTokenLength: 1},
		Classifier: ClassifierConfig{Alpha: 1.0},
		Report:     ReportConfig{TopTerms: 3},
		Log:        LogConfig{Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Normalizer.Stemmer == "" {
		cfg.Normalizer.Stemmer = "porter"
	}
	if cfg.Vectorizer.NGramMin == 0 {
		cfg.Vectorizer.NGramMin = 1
	}
	if cfg.Vectorizer.NGramMax == 0 {
		cfg.Vectorizer.NGramMax = 2
	}
	if cfg.Vectorizer.MinTokenLength == 0 {
		cfg.Vectorizer.MinTokenLength = 1
	}
	if cfg.Classifier.Alpha == 0 {
		cfg.Classifier.Alpha = 1.0
	}
	if cfg.Report.TopTerms == 0 {
		cfg.Report.TopTerms = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func applyEnv(cfg *AppConfig) error {
	var o envOverrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.CorpusPath != "" {
		cfg.Corpus.Path = o.CorpusPath
	}
	if o.Stemmer != "" {
		cfg.Normalizer.Stemmer = o.Stemmer
	}
	return nil
}
