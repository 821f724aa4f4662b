package combat

const (
	// MaxLuck is the largest bonus a lucky roll adds to offense.
	MaxLuck = 0.1
	// NoLuck is the multiplier used when luck is disabled.
	NoLuck = 1.0
)

// LuckFactor maps a roll in [0, 1] onto the luck multiplier. Rolls outside
// the range are clamped. The caller owns the random source so replays stay
// deterministic.
func LuckFactor(roll float64) float64 {
	return 1 + min(1, max(0, roll))*MaxLuck
}
