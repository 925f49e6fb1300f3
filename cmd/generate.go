package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/kilianp07/highway/core/highway"
	"github.com/kilianp07/highway/driver"
	"github.com/kilianp07/highway/infra/logger"
	"github.com/kilianp07/highway/simulator"
)

var (
	genCfg    = simulator.DefaultConfig()
	genOutput string
	genReplay bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic command stream",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.New(validator.WithRequiredStructEnabled()).Struct(genCfg); err != nil {
			return fmt.Errorf("invalid generator settings: %w", err)
		}
		if genReplay {
			return replay(cmd)
		}
		var out io.Writer = cmd.OutOrStdout()
		if genOutput != "" {
			f, err := os.Create(genOutput)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		return simulator.NewGenerator(genCfg).Write(out)
	},
}

func init() {
	f := generateCmd.Flags()
	f.Int64Var(&genCfg.Seed, "seed", genCfg.Seed, "random seed")
	f.IntVarP(&genCfg.Commands, "commands", "n", genCfg.Commands, "number of commands")
	f.IntVar(&genCfg.Span, "span", genCfg.Span, "stations are placed in [0, span)")
	f.IntVar(&genCfg.MaxRange, "max-range", genCfg.MaxRange, "vehicle ranges are drawn from [0, max-range)")
	f.IntVar(&genCfg.MaxVehicles, "max-vehicles", genCfg.MaxVehicles, "largest seed fleet of a new station")
	f.Float64Var(&genCfg.PlanRatio, "plan-ratio", genCfg.PlanRatio, "share of route queries")
	f.IntVar(&genCfg.FleetCapacity, "fleet-capacity", genCfg.FleetCapacity, "vehicles tracked per station (0 for the default)")
	f.StringVarP(&genOutput, "output", "o", "", "output file (defaults to stdout)")
	f.BoolVar(&genReplay, "replay", false, "replay the stream against the configured road and print a report")
	rootCmd.AddCommand(generateCmd)
}

func replay(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	hw := highway.New(highway.Options{
		FleetCapacity: cfg.Road.FleetCapacity,
		RouteCache:    cfg.Road.RouteCache,
		Logger:        logger.New("highway"),
	})
	d := driver.New(hw, driver.WithLogger(logger.New("driver")))
	gcfg := genCfg
	if !cmd.Flags().Changed("fleet-capacity") {
		gcfg.FleetCapacity = cfg.Road.FleetCapacity
	}
	rep, err := simulator.NewGenerator(gcfg).Replay(cmd.Context(), d)
	if err != nil {
		return err
	}
	return rep.Print(cmd.OutOrStdout())
}
