package ledger

import "time"

// Action distinguishes fills that open exposure from fills that close
// it. Partial fills do not exist: every order fully opens or fully
// closes a position.
type Action int

const (
	Open Action = iota
	Close
)

func (a Action) String() string {
	if a == Close {
		return "Close"
	}
	return "Open"
}

// TradeRecord is an immutable snapshot appended to history on every
// fill. Pair fills carry both legs in one record. Records are for
// reporting only and are never mutated after append.
type TradeRecord struct {
	ID     string
	Time   time.Time
	Action Action
	Reason string

	Instrument string
	Price      float64
	Units      float64 // signed: >0 long, <0 short

	// Second leg, set only for pair trades.
	Instrument2 string
	Price2      float64
	Units2      float64

	// RealizedPL is set on closes, in account currency.
	RealizedPL float64
}

// IsPair reports whether the record covers two legs.
func (t TradeRecord) IsPair() bool { return t.Instrument2 != "" }
