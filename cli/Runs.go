package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/mmlearn/experiment/trackers"
	"github.com/samuelfneumann/mmlearn/store"
)

func newRunsCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored runs",
	}
	cmd.PersistentFlags().StringVar(&path, "store", "", "SQLite database runs are saved in")

	open := func() (*store.SQLite, error) {
		if path == "" {
			path = app.Config.Store
		}
		if path == "" {
			return nil, fmt.Errorf("no store configured, use --store")
		}
		return store.Open(path)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			return writeRuns(cmd.OutOrStdout(), runs)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Summarize a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.LoadRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			summary := trackers.Summarize(run.Label, run.Episodes)
			if err := writeSummaries(cmd.OutOrStdout(),
				[]trackers.Summary{summary}); err != nil {
				return err
			}

			if run.Config == "" {
				return nil
			}
			var rc runConfig
			if err := json.Unmarshal([]byte(run.Config), &rc); err != nil {
				return fmt.Errorf("decoding run config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nseed %d, %d episodes, %s: %v\n",
				rc.Experiment.Seed, rc.Experiment.Episodes, rc.Agent.Type,
				rc.Agent.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			return s.DeleteRun(cmd.Context(), id)
		},
	})

	return cmd
}
