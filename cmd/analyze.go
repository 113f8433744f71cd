package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/document"
	"github.com/spigell/cv-screener/internal/screening"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf>...",
	Short: "Analyze résumé PDFs and print the inferred profile",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

// analyze runs the pipeline sequentially over the given files.
func analyze(cmd *cobra.Command, paths []string) error {
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

	analyzer := newAnalyzer(config, logger)

	outcomes := make([]screening.Outcome, 0, len(paths))
	for _, path := range paths {
		result, err := analyzer.Analyze(ctx, document.File(path))
		outcomes = append(outcomes, screening.Outcome{Document: path, Result: result, Err: err})
	}

	if err := printOutcomes(cmd.OutOrStdout(), format, outcomes); err != nil {
		return err
	}

	return failedOutcomes(logger, outcomes)
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case outputText, outputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format: %s", format)
	}
}

type outcomeView struct {
	Document        string   `json:"document"`
	ExperienceYears int      `json:"experience_years"`
	Level           string   `json:"level,omitempty"`
	Skills          []string `json:"skills"`
	Error           string   `json:"error,omitempty"`
}

func printOutcomes(w io.Writer, format string, outcomes []screening.Outcome) error {
	views := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		view := outcomeView{Document: o.Document, Skills: []string{}}
		if o.Err != nil {
			view.Error = o.Err.Error()
		} else {
			view.ExperienceYears = o.Result.ExperienceYears
			view.Level = o.Result.Level.String()
			view.Skills = o.Result.Skills
		}
		views = append(views, view)
	}

	if format == outputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(views)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tYEARS\tLEVEL\tSKILLS")
	for _, v := range views {
		if v.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\terror: %s\n", v.Document, v.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", v.Document, v.ExperienceYears, v.Level, strings.Join(v.Skills, ", "))
	}

	return tw.Flush()
}

func failedOutcomes(logger *zap.Logger, outcomes []screening.Outcome) error {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Error("analysis failed", zap.String("document", o.Document), zap.Error(o.Err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents could not be read", failed, len(outcomes))
	}

	return nil
}
