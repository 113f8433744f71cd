package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidates"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/profile"
	"github.com/spigell/cv-screener/internal/screening"
	"github.com/spigell/cv-screener/internal/secrets"
)

const (
	app = "cv-screener"
)

type Config struct {
	Database     string             `mapstructure:"database"`
	DatabaseFile string             `mapstructure:"database-file"`
	Timeout      time.Duration      `mapstructure:"timeout" validate:"gte=0"`
	Workers      int                `mapstructure:"workers" validate:"gte=1,lte=64"`
	Vocabulary   profile.Vocabulary `mapstructure:"vocabulary"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-screener infers experience, seniority and skills from résumé PDFs",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database-file", "CV_SCREENER_DATABASE_FILE"); err != nil {
		log.Fatalf("binding CV_SCREENER_DATABASE_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("database", "CV_SCREENER_DATABASE"); err != nil {
		log.Fatalf("binding CV_SCREENER_DATABASE environment variable: %v", err)
	}

	viper.SetDefault("database", app+".db")
	viper.SetDefault("timeout", screening.DefaultTimeout)
	viper.SetDefault("workers", screening.DefaultWorkers)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("database", "", "candidate database (sqlite path, sqlite://, postgres:// or memory://)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
}

func initConfig() error {
	// A missing .env is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The config file is optional unless it was requested explicitly.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(logger.Options{JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func newAnalyzer(config *Config, l *zap.Logger) *screening.Analyzer {
	return screening.New(screening.Options{
		Vocabulary: config.Vocabulary,
		Timeout:    config.Timeout,
		Logger:     l,
	})
}

func resolveDatabase(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	return secrets.Load(secrets.Source{
		Name:  "database dsn",
		Value: config.Database,
		File:  strings.TrimSpace(config.DatabaseFile),
	})
}

func openStore(ctx context.Context, config *Config) (candidates.Store, error) {
	dsn, err := resolveDatabase(config)
	if err != nil {
		return nil, fmt.Errorf("%w (set database, database-file or CV_SCREENER_DATABASE_FILE)", err)
	}

	return candidates.Open(ctx, dsn)
}
