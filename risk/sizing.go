package risk

import (
	"fmt"
	"math"
)

// Violation explains why an order was rejected.
type Violation struct {
	Code string
	Msg  string
}

// Decision is the sizing engine's verdict on an open intent. A
// rejected decision is a skipped signal, not a fatal error; the run
// continues on the next bar.
type Decision struct {
	Allowed    bool
	Violations []Violation

	Units        float64
	StopDistance float64
	RiskAmount   float64
}

func (d *Decision) reject(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Reason returns the first violation code, or "" when allowed.
func (d Decision) Reason() string {
	if len(d.Violations) == 0 {
		return ""
	}
	return d.Violations[0].Code
}

// StopDistance derives the protective stop distance from current
// volatility. When the policy uses ATR and the indicator is not yet
// ready, ok is false and no order may be sized.
func StopDistance(p Policy, closePrice, atr float64, atrReady bool) (dist float64, ok bool) {
	if p.ATRMultiplier > 0 {
		if !atrReady {
			return 0, false
		}
		return p.ATRMultiplier * atr, true
	}
	if p.FixedStopPct > 0 {
		return p.FixedStopPct * closePrice, true
	}
	return 0, false
}

// Size converts an open intent into a sized order:
//
//	units = equity * riskPct / stopDistance
//
// It rejects rather than silently sizing to zero or NaN when the stop
// distance is unusable, and enforces the cash-sufficiency check when
// the policy disallows leverage.
func Size(p Policy, equity, cash, entry, stopDistance float64) Decision {
	d := Decision{Allowed: true, StopDistance: stopDistance}

	if stopDistance <= 0 || math.IsNaN(stopDistance) || math.IsInf(stopDistance, 0) {
		d.reject("BAD_STOP_DISTANCE",
			fmt.Sprintf("stop distance %v is not usable", stopDistance))
		return d
	}
	if equity <= 0 {
		d.reject("NO_EQUITY",
			fmt.Sprintf("equity %.2f leaves no risk budget", equity))
		return d
	}

	d.RiskAmount = equity * p.RiskPct
	d.Units = d.RiskAmount / stopDistance

	if d.Units <= 0 || math.IsNaN(d.Units) || math.IsInf(d.Units, 0) {
		d.reject("BAD_UNITS", fmt.Sprintf("computed units %v", d.Units))
		return d
	}

	if !p.AllowLeverage {
		notional := d.Units * entry
		if notional > cash {
			d.reject("INSUFFICIENT_CASH",
				fmt.Sprintf("notional %.2f exceeds cash %.2f", notional, cash))
		}
	}

	return d
}
