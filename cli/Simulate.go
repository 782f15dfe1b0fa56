package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/process"
)

func newSimulateCmd(app *App) *cobra.Command {
	var (
		seed uint64
		out  string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a Brownian price path",
		Long: `Simulate generates a single price path with the configured Brownian
motion and writes it one price per line, either to a file or to
standard output. Saved paths can be replayed in training by setting
experiment.env.price.series_file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = app.Config.Experiment.Seed
			}

			p, err := process.NewBrownian(
				app.Config.Experiment.EnvConf.Process(), rand.NewSource(seed))
			if err != nil {
				return err
			}
			series := p.GenerateSeries()

			if out == "" {
				return process.WriteSeries(cmd.OutOrStdout(), series)
			}
			if err := process.SaveSeries(out, series); err != nil {
				return err
			}
			app.Logger.Info().Str("file", out).Int("prices", len(series)).
				Msg("price path saved")
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the path to")

	return cmd
}
