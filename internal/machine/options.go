package machine

import "log/slog"

// Option configures a Machine.
type Option func(*Machine)

// WithLogger routes machine events to l instead of obs.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTransactionIDs replaces the UUID generator used to tag transactions.
func WithTransactionIDs(next func() string) Option {
	return func(m *Machine) {
		if next != nil {
			m.nextID = next
		}
	}
}
