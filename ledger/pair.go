package ledger

import (
	"fmt"
	"time"
)

// Leg describes one side of a spread order.
type Leg struct {
	Instrument string
	Side       Side
	Units      float64
	Price      float64
}

// OpenPair opens two correlated legs atomically. If either leg cannot
// fill, neither does: a paired-intent order must never leave naked
// single-leg exposure.
func (l *Ledger) OpenPair(a, b Leg, t time.Time, reason string) (TradeRecord, error) {
	if a.Instrument == b.Instrument {
		return TradeRecord{}, fmt.Errorf("ledger: pair legs must differ, got %s twice", a.Instrument)
	}
	for _, leg := range [...]Leg{a, b} {
		if _, ok := l.positions[leg.Instrument]; ok {
			return TradeRecord{}, fmt.Errorf("%w: %s", ErrPositionExists, leg.Instrument)
		}
		if leg.Units <= 0 {
			return TradeRecord{}, fmt.Errorf("ledger: pair leg %s: units must be positive, got %v", leg.Instrument, leg.Units)
		}
	}

	pairID := l.nextID()
	for _, leg := range [...]Leg{a, b} {
		l.cash -= float64(leg.Side) * leg.Units * leg.Price
		l.positions[leg.Instrument] = &Position{
			Instrument: leg.Instrument,
			Side:       leg.Side,
			Units:      leg.Units,
			EntryPrice: leg.Price,
			EntryTime:  t,
			PairID:     pairID,
		}
	}

	rec := TradeRecord{
		ID:          pairID,
		Time:        t,
		Action:      Open,
		Reason:      reason,
		Instrument:  a.Instrument,
		Price:       a.Price,
		Units:       float64(a.Side) * a.Units,
		Instrument2: b.Instrument,
		Price2:      b.Price,
		Units2:      float64(b.Side) * b.Units,
	}
	l.trades = append(l.trades, rec)
	return rec, nil
}

// ClosePair closes both legs of the open pair atomically at the given
// prices and returns one record carrying the combined realized profit.
// Finding a single leg is a fatal consistency error.
func (l *Ledger) ClosePair(instrA, instrB string, priceA, priceB float64, t time.Time, reason string) (TradeRecord, error) {
	pa, okA := l.positions[instrA]
	pb, okB := l.positions[instrB]

	if !okA && !okB {
		return TradeRecord{}, fmt.Errorf("%w: %s/%s", ErrNoPosition, instrA, instrB)
	}
	if okA != okB {
		return TradeRecord{}, fmt.Errorf("%w: only one of %s/%s is open", ErrNakedLeg, instrA, instrB)
	}
	if pa.PairID == "" || pa.PairID != pb.PairID {
		return TradeRecord{}, fmt.Errorf("%w: %s and %s are not legs of the same pair", ErrNakedLeg, instrA, instrB)
	}

	realized := pa.UnrealizedPL(priceA) + pb.UnrealizedPL(priceB)
	unitsA, unitsB := pa.Signed(), pb.Signed()

	l.cash += pa.Signed() * priceA
	l.cash += pb.Signed() * priceB
	delete(l.positions, instrA)
	delete(l.positions, instrB)

	rec := TradeRecord{
		ID:          l.nextID(),
		Time:        t,
		Action:      Close,
		Reason:      reason,
		Instrument:  instrA,
		Price:       priceA,
		Units:       unitsA,
		Instrument2: instrB,
		Price2:      priceB,
		Units2:      unitsB,
		RealizedPL:  realized,
	}
	l.trades = append(l.trades, rec)
	return rec, nil
}
