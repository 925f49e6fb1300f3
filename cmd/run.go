package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/highway/app"
	"github.com/kilianp07/highway/infra/logger"
	"github.com/kilianp07/highway/pkg/export"
)

var (
	inputPath    string
	snapshotPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute highway commands from stdin or a file",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "command file (defaults to stdin)")
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write the final stations to this .json or .csv file")
	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var in io.Reader = cmd.InOrStdin()
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	if _, err := svc.Run(ctx, in, cmd.OutOrStdout()); err != nil {
		return err
	}
	if snapshotPath != "" {
		if err := export.WriteFile(snapshotPath, svc.Highway.Snapshot()); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	return nil
}
