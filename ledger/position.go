package ledger

import "time"

// Side of an open position.
type Side int8

const (
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	if s == Short {
		return "Short"
	}
	return "Long"
}

// Dir returns the side as +1/-1 for price arithmetic.
func (s Side) Dir() int { return int(s) }

// Position is the live exposure on one instrument. It is created by a
// fill that opens exposure, mutated only by trailing-stop updates, and
// destroyed by the fill that closes it.
type Position struct {
	Instrument string
	Side       Side
	Units      float64 // always positive; signed exposure is Side * Units
	EntryPrice float64
	EntryTime  time.Time

	// Stop is the current protective stop price; zero means none. It
	// only ever ratchets in the position's favor.
	Stop float64

	// PairID groups the two legs of a spread position; empty for
	// single-instrument positions.
	PairID string
}

// Signed returns the signed quantity.
func (p Position) Signed() float64 {
	return float64(p.Side) * p.Units
}

// UnrealizedPL marks the position against a price.
func (p Position) UnrealizedPL(mark float64) float64 {
	return p.Signed() * (mark - p.EntryPrice)
}
