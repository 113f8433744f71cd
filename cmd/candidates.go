package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidates"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Manage candidate records",
}

var candidatesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a candidate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store candidates.Store, logger *zap.Logger) error {
			c := &candidates.Candidate{}
			c.FirstName, _ = cmd.Flags().GetString("first-name")
			c.LastName, _ = cmd.Flags().GetString("last-name")
			c.Email, _ = cmd.Flags().GetString("email")
			c.Role, _ = cmd.Flags().GetString("role")

			id, err := store.Create(ctx, c)
			if err != nil {
				return err
			}

			logger.Info("candidate created", zap.Int64("candidate_id", id), zap.String("email", c.Email))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store candidates.Store, _ *zap.Logger) error {
			all, err := store.List(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tYEARS\tLEVEL\tSKILLS")
			for _, c := range all {
				fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\t%d\t%s\t%s\n",
					c.ID, c.FirstName, c.LastName, c.Email, c.Role, c.ExperienceYears, c.Level, c.Skills)
			}
			return tw.Flush()
		})
	},
}

var candidatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a candidate as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid candidate id %q: %w", args[0], err)
		}

		return withStore(func(ctx context.Context, store candidates.Store, _ *zap.Logger) error {
			c, err := store.Get(ctx, id)
			if err != nil {
				return err
			}

			pretty, err := json.MarshalIndent(c, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.AddCommand(candidatesAddCmd, candidatesListCmd, candidatesShowCmd)

	candidatesAddCmd.Flags().String("first-name", "", "first name")
	candidatesAddCmd.Flags().String("last-name", "", "last name")
	candidatesAddCmd.Flags().String("email", "", "email address, must be unique")
	candidatesAddCmd.Flags().String("role", "", "role the candidate applies for")

	for _, name := range []string{"first-name", "last-name", "email"} {
		candidatesAddCmd.MarkFlagRequired(name)
	}
}

func withStore(fn func(ctx context.Context, store candidates.Store, logger *zap.Logger) error) error {
	ctx := context.Background()

	logger := newLogger()
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	store, err := openStore(ctx, config)
	if err != nil {
		return fmt.Errorf("opening candidate store: %w", err)
	}
	defer store.Close()

	return fn(ctx, store, logger)
}
