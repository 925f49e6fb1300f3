package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/highway/internal/journal"
)

var (
	queryCommand string
	querySession string
	querySince   time.Duration
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the command journal",
}

var journalQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print journal records as JSON lines",
	Args:  cobra.NoArgs,
	RunE:  queryJournal,
}

func init() {
	journalQueryCmd.Flags().StringVar(&queryCommand, "command", "", "only records of this command")
	journalQueryCmd.Flags().StringVar(&querySession, "session", "", "only records of this session")
	journalQueryCmd.Flags().DurationVar(&querySince, "since", 0, "only records newer than this duration")
	journalCmd.AddCommand(journalQueryCmd)
	rootCmd.AddCommand(journalCmd)
}

func queryJournal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if store == nil {
		return errors.New("journal backend is none")
	}
	defer func() { _ = store.Close() }()

	q := journal.Query{Command: queryCommand, Session: querySession}
	if querySince > 0 {
		q.Start = time.Now().Add(-querySince)
	}
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
