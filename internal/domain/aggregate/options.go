package aggregate

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMatchupDepth caps how many producers per team feed each game's
// matchup rows.
func WithMatchupDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.matchupDepth = n
		}
	}
}
