package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/quant/engine"
)

func printResult(w io.Writer, strategy string, res engine.Result) {
	s := res.Summary

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Strategy:       %s\n", strategy)
	fmt.Fprintf(w, "Start:          %s\n", res.Start.Format(time.RFC3339))
	fmt.Fprintf(w, "End:            %s\n", res.End.Format(time.RFC3339))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Equity: %.2f\n", s.InitialEquity)
	fmt.Fprintf(w, "Final Equity:   %.2f\n", s.FinalEquity)
	fmt.Fprintf(w, "Return:         %.2f%%\n", s.CumulativeReturn*100)
	fmt.Fprintf(w, "Annualized:     %.2f%%\n", s.AnnualizedReturn*100)
	fmt.Fprintf(w, "Max Drawdown:   %.2f%% (%d bars)\n", -s.MaxDrawdown*100, s.DrawdownBars)
	if s.SharpeDefined {
		fmt.Fprintf(w, "Sharpe:         %.2f\n", s.Sharpe)
	} else {
		fmt.Fprintf(w, "Sharpe:         n/a (zero return variance)\n")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Closed Trades:  %d\n", s.ClosedTrades)
	fmt.Fprintf(w, "Wins:           %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:         %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:       %.2f%%\n", s.WinRate*100)
	fmt.Fprintf(w, "Turnover:       %.2f trades/month\n", s.TurnoverPerMonth)

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Skipped Signals: %d\n", len(res.Skipped))
		for _, ev := range res.Skipped {
			fmt.Fprintf(w, "  %s  %-10s %s\n",
				ev.Time.Format("2006-01-02"), ev.Signal, ev.Reason)
		}
	}
	if res.Halted {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Drawdown circuit breaker tripped; trading halted before end of data.")
	}
	fmt.Fprintln(w)
}
