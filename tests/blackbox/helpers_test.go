//go:build blackbox

package blackbox

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// writeBarsCSV writes n daily bars whose close is produced by the
// given function; open/high/low are derived from the close.
func writeBarsCSV(t *testing.T, path string, n int, close func(i int) float64) {
	t.Helper()

	var b strings.Builder
	b.WriteString("time,open,high,low,close,volume\n")

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := close(i)
		fmt.Fprintf(&b, "%s,%.4f,%.4f,%.4f,%.4f,%d\n",
			day.AddDate(0, 0, i).Format("2006-01-02"),
			c, c*1.005, c*0.995, c, 10_000)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}
