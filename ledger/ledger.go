// Package ledger is the virtual account: it owns cash and open
// positions, applies fills, marks equity to market, and records the
// trade history. Only the engine mutates it, in response to sized
// orders.
package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPositionExists rejects an open on an instrument that already
	// carries exposure.
	ErrPositionExists = errors.New("ledger: position already open")

	// ErrNoPosition rejects a close with nothing to close.
	ErrNoPosition = errors.New("ledger: no open position")

	// ErrNakedLeg is a fatal consistency error: a paired position was
	// found with a single leg. A pair must open and close both legs
	// atomically; the leg count is 0 or 2, never 1.
	ErrNakedLeg = errors.New("ledger: naked pair leg")

	// ErrNoMark means equity could not be computed because an open
	// position has no current price.
	ErrNoMark = errors.New("ledger: missing mark price")
)

// Ledger holds the account state for one strategy run. Runs own their
// ledger exclusively; independent runs share nothing.
type Ledger struct {
	cash      float64
	positions map[string]*Position
	trades    []TradeRecord
	seq       int
}

func New(initialCash float64) *Ledger {
	return &Ledger{
		cash:      initialCash,
		positions: make(map[string]*Position),
	}
}

func (l *Ledger) Cash() float64 { return l.cash }

// Position returns the open position for an instrument, if any.
func (l *Ledger) Position(instrument string) (Position, bool) {
	p, ok := l.positions[instrument]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// OpenCount returns the number of open positions (pair legs count
// individually).
func (l *Ledger) OpenCount() int { return len(l.positions) }

// Trades returns the trade history in fill order. The slice is the
// ledger's own; callers must not mutate it.
func (l *Ledger) Trades() []TradeRecord { return l.trades }

// nextID issues deterministic per-run trade IDs so that replaying the
// same bar sequence yields an identical history.
func (l *Ledger) nextID() string {
	l.seq++
	return fmt.Sprintf("T-%06d", l.seq)
}

// Open applies a fill that opens exposure at the given price. Cash
// moves by the signed notional: longs spend cash, shorts receive the
// proceeds.
func (l *Ledger) Open(instrument string, side Side, units, price float64, t time.Time, stop float64, reason string) (TradeRecord, error) {
	if _, ok := l.positions[instrument]; ok {
		return TradeRecord{}, fmt.Errorf("%w: %s", ErrPositionExists, instrument)
	}
	if units <= 0 {
		return TradeRecord{}, fmt.Errorf("ledger: open %s: units must be positive, got %v", instrument, units)
	}

	l.cash -= float64(side) * units * price
	l.positions[instrument] = &Position{
		Instrument: instrument,
		Side:       side,
		Units:      units,
		EntryPrice: price,
		EntryTime:  t,
		Stop:       stop,
	}

	rec := TradeRecord{
		ID:         l.nextID(),
		Time:       t,
		Action:     Open,
		Reason:     reason,
		Instrument: instrument,
		Price:      price,
		Units:      float64(side) * units,
	}
	l.trades = append(l.trades, rec)
	return rec, nil
}

// CloseAt applies a fill that fully closes the position at the given
// price and returns the close record with realized profit.
func (l *Ledger) CloseAt(instrument string, price float64, t time.Time, reason string) (TradeRecord, error) {
	p, ok := l.positions[instrument]
	if !ok {
		return TradeRecord{}, fmt.Errorf("%w: %s", ErrNoPosition, instrument)
	}
	if p.PairID != "" {
		return TradeRecord{}, fmt.Errorf("%w: %s is a pair leg, close the pair", ErrNakedLeg, instrument)
	}

	rec := l.closeLeg(p, price, t, reason)
	l.trades = append(l.trades, rec)
	return rec, nil
}

// closeLeg settles one position against cash and removes it. The
// caller owns appending the record.
func (l *Ledger) closeLeg(p *Position, price float64, t time.Time, reason string) TradeRecord {
	realized := p.UnrealizedPL(price)
	l.cash += p.Signed() * price
	delete(l.positions, p.Instrument)

	return TradeRecord{
		ID:         l.nextID(),
		Time:       t,
		Action:     Close,
		Reason:     reason,
		Instrument: p.Instrument,
		Price:      price,
		Units:      p.Signed(),
		RealizedPL: realized,
	}
}

// SetStop updates the protective stop. The engine is responsible for
// only ever tightening it.
func (l *Ledger) SetStop(instrument string, stop float64) error {
	p, ok := l.positions[instrument]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPosition, instrument)
	}
	p.Stop = stop
	return nil
}

// Equity marks all open positions against the supplied close prices:
// cash plus the sum of signed exposure times mark.
func (l *Ledger) Equity(marks map[string]float64) (float64, error) {
	eq := l.cash
	for instr, p := range l.positions {
		mark, ok := marks[instr]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrNoMark, instr)
		}
		eq += p.Signed() * mark
	}
	return eq, nil
}
