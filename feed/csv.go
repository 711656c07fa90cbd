// Package feed supplies bar series to the engine. Feeds are external
// collaborators: they finish all I/O before a run starts consuming
// bars, and hand over series already in timestamp order.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/quant/market"
)

// LoadCSV reads daily bars from a CSV file with rows
//
//	time,open,high,low,close,volume
//
// where time is RFC3339 or a plain date (2006-01-02). A header row is
// allowed. The returned series is validated against the feed contract.
func LoadCSV(path, instrument string) (market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return market.Series{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []market.Bar
	sawFirst := false

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return market.Series{}, err
		}
		if len(row) == 0 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") ||
				strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		b, ok, err := parseBarRow(row)
		if err != nil {
			return market.Series{}, err
		}
		if !ok {
			continue
		}
		bars = append(bars, b)
	}

	s := market.NewSeries(instrument, bars)
	if err := s.Validate(); err != nil {
		return market.Series{}, err
	}
	return s, nil
}

func parseBarRow(row []string) (market.Bar, bool, error) {
	if len(row) < 5 {
		return market.Bar{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return market.Bar{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse("2006-01-02", ts)
		if err2 != nil {
			return market.Bar{}, false, fmt.Errorf("bad time %q: %w", ts, err)
		}
		t = t2
	}

	vals := make([]float64, 0, 5)
	for _, cell := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return market.Bar{}, false, fmt.Errorf("bad number %q: %w", cell, err)
		}
		vals = append(vals, v)
		if len(vals) == 5 {
			break
		}
	}

	b := market.Bar{
		Time:  t,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if len(vals) > 4 {
		b.Volume = vals[4]
	}
	return b, true, nil
}
