package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/quant/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded backtest runs from a SQLite journal",
	RunE:  listRuns,
}

var runsDBPath string

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVarP(&runsDBPath, "db", "d", "./quant.sqlite", "path to SQLite journal DB")
}

func listRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTRATEGY\tINSTRUMENT\tRETURN\tMAXDD\tTRADES\tWINRATE")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f%%\t%.2f%%\t%d\t%.1f%%\n",
			r.RunID, r.Strategy, r.Instrument,
			r.CumulativeReturn*100, -r.MaxDrawdown*100,
			r.Trades, r.WinRate*100)
	}
	return w.Flush()
}
