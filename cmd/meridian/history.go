package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"avdesign-hq/meridian/pkg/history"
)

var historyFlags struct {
	projectID   string
	roomID      string
	limit       int
	onlyInvalid bool
	format      string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent validation passes",
	Long: `Show recent validation passes recorded in the history database.

Examples:
  # Last 20 passes
  meridian history --limit 20

  # Failing passes of one room
  meridian history --project proj-a --room room-1 --only-invalid`,
	RunE: showHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete history records past the retention policy",
	RunE:  pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().StringVar(&historyFlags.projectID, "project", "", "filter by project id")
	historyCmd.Flags().StringVar(&historyFlags.roomID, "room", "", "filter by room id")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum records to show")
	historyCmd.Flags().BoolVar(&historyFlags.onlyInvalid, "only-invalid", false, "only passes that had errors")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func openHistoryStorage() (*history.SQLiteStorage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)
	return history.NewSQLiteStorage(cfg.History.DatabasePath)
}

func showHistory(cmd *cobra.Command, args []string) error {
	storage, err := openHistoryStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	records, err := storage.Query(context.Background(), &history.Query{
		ProjectID:   historyFlags.projectID,
		RoomID:      historyFlags.roomID,
		OnlyInvalid: historyFlags.onlyInvalid,
		Limit:       historyFlags.limit,
	})
	if err != nil {
		return err
	}

	if historyFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("no validation passes recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RECORDED\tPROJECT\tROOM\tVALID\tERR\tWARN\tSUGG\tRULES")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\t%d\t%d\t%d\n",
			r.RecordedAt.Local().Format(time.DateTime),
			r.ProjectID, r.RoomID, r.IsValid,
			r.ErrorCount, r.WarningCount, r.SuggestionCount,
			r.EvaluatedRules)
	}
	return w.Flush()
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	storage, err := history.NewSQLiteStorage(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer storage.Close()

	pruner := history.NewPruner(storage, &history.RetentionConfig{
		RetentionDays: cfg.History.RetentionDays,
		MaxRecords:    cfg.History.MaxRecords,
	})
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d record(s)\n", deleted)
	return nil
}
