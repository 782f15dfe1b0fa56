package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/mmlearn/agent"
	"github.com/samuelfneumann/mmlearn/config"
	"github.com/samuelfneumann/mmlearn/environment/envconfig"
	"github.com/samuelfneumann/mmlearn/experiment"
	"github.com/samuelfneumann/mmlearn/experiment/trackers"
	"github.com/samuelfneumann/mmlearn/store"
)

type trainOptions struct {
	episodes int
	seed     uint64
	agents   []string
	env      string
	store    string
	save     bool
}

func newTrainCmd(app *App) *cobra.Command {
	opts := &trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train and compare agents",
		Long: `Train runs each configured agent for a fixed number of episodes on
freshly simulated price paths and prints summary statistics of the
episodes of each agent.`,
		Example: `  mmlearn train --episodes 1000 --seed 7
  mmlearn train --agents q-learning,zero-tick --env inventory --store runs.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			applyTrainFlags(cmd, opts, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runTrain(cmd, app, cfg, opts.save)
		},
	}

	cmd.Flags().IntVarP(&opts.episodes, "episodes", "n", 0, "number of episodes per agent")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed")
	cmd.Flags().StringSliceVar(&opts.agents, "agents", nil, "agents to compare (q-learning, zero-tick, random)")
	cmd.Flags().StringVar(&opts.env, "env", "", "environment (inventory, inventory-time)")
	cmd.Flags().StringVar(&opts.store, "store", "", "SQLite database to save runs in")
	cmd.Flags().BoolVar(&opts.save, "save-episodes", false, "save episode statistics next to checkpoints")

	return cmd
}

// applyTrainFlags overrides the configuration with the flags that were
// set on the command line
func applyTrainFlags(cmd *cobra.Command, opts *trainOptions,
	cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("episodes") {
		cfg.Experiment.Episodes = opts.episodes
	}
	if flags.Changed("seed") {
		cfg.Experiment.Seed = opts.seed
	}
	if flags.Changed("agents") {
		cfg.Agents = opts.agents
	}
	if flags.Changed("env") {
		cfg.Experiment.EnvConf.Environment = envconfig.EnvName(opts.env)
	}
	if flags.Changed("store") {
		cfg.Store = opts.store
	}
}

func runTrain(cmd *cobra.Command, app *App, cfg config.Config,
	saveEpisodes bool) error {
	labelled, err := cfg.Labelled()
	if err != nil {
		return err
	}

	results, err := experiment.NewComparison(cfg.Experiment, app.Logger,
		labelled...).Run(cmd.Context())
	if err != nil {
		return err
	}

	summaries := make([]trackers.Summary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, r.Summary())
		if saveEpisodes {
			if err := r.Stats.Save(); err != nil {
				return err
			}
		}
	}
	if err := writeSummaries(cmd.OutOrStdout(), summaries); err != nil {
		return err
	}

	if cfg.Store == "" {
		return nil
	}
	return saveRuns(cmd, app, cfg, results)
}

// runConfig is the configuration stored with each run
type runConfig struct {
	Experiment experiment.Config
	Agent      agent.TypedConfig
}

// saveRuns saves the episode statistics of each result to the store
func saveRuns(cmd *cobra.Command, app *App, cfg config.Config,
	results []experiment.Result) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, r := range results {
		encoded, err := json.Marshal(runConfig{
			Experiment: cfg.Experiment,
			Agent:      agent.NewTypedConfig(r.Config),
		})
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}

		id, err := s.SaveRun(cmd.Context(), store.Run{
			Label:     r.Label,
			AgentType: string(r.Type),
			Env:       string(cfg.Experiment.EnvConf.Environment),
			Seed:      cfg.Experiment.Seed,
			Config:    string(encoded),
			Episodes:  r.Stats.Episodes(),
		})
		if err != nil {
			return err
		}
		app.Logger.Info().Int64("run", id).Str("agent", r.Label).
			Msg("run saved")
	}
	return nil
}
