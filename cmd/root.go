package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/ai"
	"github.com/spigell/sauce-fit/internal/ai/gemini"
	"github.com/spigell/sauce-fit/internal/jobfit"
	"github.com/spigell/sauce-fit/internal/logger"
	"github.com/spigell/sauce-fit/internal/secrets"
	"github.com/spigell/sauce-fit/internal/team"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const (
	app = "sauce-fit"

	defaultConcurrency = 4
)

type Config struct {
	CatalogFile string           `mapstructure:"catalog-file"`
	Job         string           `mapstructure:"job"`
	Team        map[string]int   `mapstructure:"team"`
	Concurrency int              `mapstructure:"concurrency"`
	Screening   *ScreeningConfig `mapstructure:"screening"`
	AI          *AIConfig        `mapstructure:"ai"`
}

type ScreeningConfig struct {
	ExcludeFile string `mapstructure:"exclude-file"`
	MinFitLevel string `mapstructure:"min-fit-level"`
}

type AIConfig struct {
	Enabled  bool               `mapstructure:"enabled"`
	Provider string             `mapstructure:"provider"`
	Prompt   ai.PromptOverrides `mapstructure:"prompt"`
	Gemini   *GeminiConfig      `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "sauce-fit scores SAUCE work-type test results and matches candidates against job profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("catalog-file", "SAUCE_FIT_CATALOG_FILE"); err != nil {
		log.Fatalf("binding SAUCE_FIT_CATALOG_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("concurrency", defaultConcurrency)
	viper.SetDefault("ai.provider", ai.ProviderGemini)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is sauce-fit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalog-file", "", "yaml file with job profiles (default is the built-in catalog)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalog-file", rootCmd.PersistentFlags().Lookup("catalog-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// An explicit config must be readable.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	// The default config is optional, but a broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Concurrency < 1 {
		config.Concurrency = defaultConcurrency
	}
	if config.Screening == nil {
		config.Screening = &ScreeningConfig{}
	}
	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func loadCatalog(config *Config, logger *zap.Logger) (*jobfit.Catalog, error) {
	path := strings.TrimSpace(config.CatalogFile)
	if path == "" {
		logger.Debug("using built-in job catalog")
		return jobfit.DefaultCatalog(), nil
	}

	catalog, err := jobfit.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("job catalog loaded", zap.String("path", path), zap.Int("jobs", catalog.Len()))
	return catalog, nil
}

// teamComposition parses config keys case-insensitively, since viper lowers them.
func teamComposition(raw map[string]int) (team.Composition, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	composition := make(team.Composition, len(raw))
	for _, key := range keys {
		code, err := worktype.ParseCode(key)
		if err != nil {
			return nil, fmt.Errorf("team: %w", err)
		}
		composition[code] += raw[key]
	}
	return composition, composition.Validate()
}

func newExplainer(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Explainer, string, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, "", errors.New("ai is disabled in config")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, "", fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(l, ai.ProviderGemini, cfg.Gemini.Model).
		With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, "", err
	}

	explainer := gemini.NewExplainer(generator, cfg.Gemini.MaxLogLength,
		logger.WithCommonFields(l, ai.ProviderGemini, generator.Model()))
	explainer.SetPromptOverrides(cfg.Prompt)

	return explainer, generator.Model(), nil
}
