// Package signal turns streaming indicator state into discrete
// entry/exit intents. Rules never touch the ledger; they return an
// intent that the sizing engine may accept, modify, or reject.
package signal

import "github.com/rustyeddy/quant/market"

// Signal is the per-bar intent emitted by a rule.
type Signal int

const (
	Hold Signal = iota
	OpenLong
	OpenShort
	Close
)

func (s Signal) String() string {
	switch s {
	case OpenLong:
		return "OpenLong"
	case OpenShort:
		return "OpenShort"
	case Close:
		return "Close"
	default:
		return "Hold"
	}
}

// IsOpen reports whether the signal would open new exposure.
func (s Signal) IsOpen() bool {
	return s == OpenLong || s == OpenShort
}

// Direction is the rule's view of the current position.
type Direction int

const (
	Flat Direction = iota
	Long
	Short
)

// Rule consumes closed bars in order and emits at most one intent per
// bar. Rules own their indicator state; an unready indicator always
// yields Hold.
type Rule interface {
	Name() string
	Reset()
	OnBar(b market.Bar, pos Direction) Signal
}
