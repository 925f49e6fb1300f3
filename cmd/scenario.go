package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/highway/qa/scenarios"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <file>...",
	Short: "Replay YAML scenarios and compare their replies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		sc, err := scenarios.Load(path)
		if err != nil {
			return err
		}
		res, err := scenarios.Run(cmd.Context(), sc)
		if err != nil {
			return err
		}
		if res.Passed() {
			fmt.Fprintf(out, "PASS %s\n", res.Name)
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL %s\n", res.Name)
		for _, m := range res.Mismatches {
			fmt.Fprintf(out, "  %s\n", m)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
	}
	return nil
}
