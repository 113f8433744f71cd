package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/document"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/screening"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var screenCmd = &cobra.Command{
	Use:   "screen <pdf>",
	Short: "Analyze a résumé and store the result on a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return screen(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().Int64P("candidate", "c", 0, "id of the candidate to update")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before updating the candidate")

	screenCmd.MarkFlagRequired("candidate")
}

func screen(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger()
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	id, err := cmd.Flags().GetInt64("candidate")
	if err != nil {
		return err
	}

	store, err := openStore(ctx, config)
	if err != nil {
		return fmt.Errorf("opening candidate store: %w", err)
	}
	defer store.Close()

	candidate, err := store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("loading candidate %d: %w", id, err)
	}

	log = logger.WithCandidate(log, id, path)
	log.Info("screening candidate",
		zap.String("name", candidate.FirstName+" "+candidate.LastName),
		zap.String("current_level", candidate.Level),
	)

	analyzer := newAnalyzer(config, log)
	screener := screening.NewScreener(analyzer, store, log)

	result, err := analyzer.Analyze(ctx, document.File(path))
	if err != nil {
		return err
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if !autoApprove {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Store %d years / %s / [%s] on candidate %d?",
				result.ExperienceYears, result.Level, result.SkillsString(), id),
			Items: []string{PromptYes, PromptNo},
		}

		_, answer, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				log.Info("exiting", zap.String("reason", "interrupted"))
				return nil
			}
			return err
		}

		if answer != PromptYes {
			log.Info("exiting", zap.String("reason", "got no from prompt"))
			return nil
		}
	}

	return screener.Record(ctx, id, path, result)
}
