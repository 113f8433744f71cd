package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/document"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every PDF found under a directory concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return batch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of documents analyzed at once (default from config)")
	batchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")

	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
}

func batch(cmd *cobra.Command, dir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger()
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	paths, err := findPDFs(dir)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		logger.Info("exiting", zap.String("reason", "no pdf files found"), zap.String("dir", dir))
		return nil
	}

	logger.Info("starting the batch", zap.Int("documents", len(paths)), zap.Int("workers", config.Workers))

	sources := make([]document.Source, 0, len(paths))
	for _, path := range paths {
		sources = append(sources, document.File(path))
	}

	outcomes := newAnalyzer(config, logger).Batch(ctx, sources, config.Workers)

	if err := printOutcomes(cmd.OutOrStdout(), format, outcomes); err != nil {
		return err
	}

	return failedOutcomes(logger, outcomes)
}

// findPDFs returns the PDF files under dir in lexical order.
func findPDFs(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && document.IsPDF(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
