package risk

// InitialStop places the protective stop on the loss side of the
// entry: entry - dist for longs, entry + dist for shorts. dir is +1
// long, -1 short.
func InitialStop(dir int, entry, dist float64) float64 {
	if dir > 0 {
		return entry - dist
	}
	return entry + dist
}

// Trail ratchets a trailing stop. The candidate stop is recomputed
// from the current price and volatility; the stop only ever tightens
// in the position's favor (raised for longs, lowered for shorts),
// never loosens.
func Trail(dir int, stop, closePrice, dist float64) float64 {
	candidate := InitialStop(dir, closePrice, dist)
	if dir > 0 {
		if candidate > stop {
			return candidate
		}
		return stop
	}
	if candidate < stop {
		return candidate
	}
	return stop
}

// StopHit reports whether the close price has crossed the stop.
func StopHit(dir int, stop, closePrice float64) bool {
	if stop == 0 {
		return false
	}
	if dir > 0 {
		return closePrice <= stop
	}
	return closePrice >= stop
}
