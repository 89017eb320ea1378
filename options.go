package difactory

import "github.com/rs/zerolog"

// Option configures a DiFactory at construction time.
type Option func(*DiFactory)

// WithLogger attaches a zerolog logger. The factory emits debug-level events
// for registrations, removals, resolutions and validation failures; without
// this option all logging is a no-op.
//
//	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	f := difactory.New(difactory.WithLogger(log))
func WithLogger(log zerolog.Logger) Option {
	return func(f *DiFactory) {
		f.log = log.With().Str("component", "difactory").Logger()
	}
}
