package market

import "math"

// TerminalUtility adjusts the reward of the last step of an episode
// given the inventory held at the end of the episode
type TerminalUtility func(reward float64, inventory int) float64

// InventoryAversion returns a TerminalUtility which discounts the last
// reward by exp(-r·|q|), penalizing episodes ending with a large
// inventory q
func InventoryAversion(r float64) TerminalUtility {
	return func(reward float64, inventory int) float64 {
		return reward * math.Exp(-r*math.Abs(float64(inventory)))
	}
}

// Option configures a market environment
type Option func(*base)

// WithTerminalUtility sets the utility applied to the reward of the
// last step of each episode. By default the last reward is left
// unchanged.
func WithTerminalUtility(u TerminalUtility) Option {
	return func(b *base) {
		b.terminal = u
	}
}
