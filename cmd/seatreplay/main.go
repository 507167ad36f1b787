// seatreplay replays a scenario file against seats on a headless
// backend and prints every event that the scenario's clients receive.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"deedles.dev/wlseat/internal/debug"
	"deedles.dev/wlseat/internal/scenario"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "seatreplay <scenario>",
	Short: "Replay scripted input against a headless seat",
	Long: `seatreplay loads a scenario file (YAML, TOML or JSON) that describes
seats, clients and a list of input steps, replays the steps against
seats on a headless backend and prints the resulting events.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Uint32("time-step", 0, "milliseconds between steps, overriding the scenario")
	flags.Bool("ops", false, "list the supported ops and exit")

	viper.SetEnvPrefix("SEATREPLAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("log-level", flags.Lookup("log-level"))
	viper.BindPFlag("time-step", flags.Lookup("time-step"))
}

func loadScenario(path string) (*scenario.Scenario, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	if step := viper.GetUint32("time-step"); step != 0 {
		sc.TimeStep = step
	}
	return sc, nil
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "seatreplay"})
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if level <= log.DebugLevel {
		debug.Enable(os.Stderr)
	}

	if ops, _ := cmd.Flags().GetBool("ops"); ops {
		for _, op := range scenario.Ops() {
			fmt.Fprintln(cmd.OutOrStdout(), op)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("no scenario file given")
	}

	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	logger.Info("loaded scenario", "path", args[0], "seats", len(sc.Seats), "clients", len(sc.Clients), "steps", len(sc.Steps))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	events, err := scenario.Run(ctx, sc)
	for _, ev := range events {
		fmt.Fprintln(cmd.OutOrStdout(), ev)
	}
	if err != nil {
		return err
	}

	logger.Debug("replay finished", "events", len(events))
	return nil
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		log.Fatal("replay failed", "err", err)
	}
}
