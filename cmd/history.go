package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/bazi/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List charts saved with --save",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved chart as JSON",
	Long:  "Prints the saved chart. Any unique prefix of the record ID is accepted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRm,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of records to list (0 for all)")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRmCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.openArchive(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	recs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		s.printer.Info("no saved charts in " + s.cfg.ArchivePath)
		return nil
	}
	for i := range recs {
		recs[i].CreatedAt = recs[i].CreatedAt.Local()
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.History(recs, s.lang))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.openArchive(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(rec.Payload)
	return err
}

func runHistoryRm(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.openArchive(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), rec.ID); err != nil {
		return err
	}
	s.printer.Deleted(rec.ID)
	return nil
}
