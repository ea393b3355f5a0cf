package tinput

import (
	"time"

	"golang.org/x/exp/slog"

	"git.sr.ht/~rockorager/tinput/log"
)

// DefaultResizeInterval is the poll bound used when coalescing resize bursts
const DefaultResizeInterval = 50 * time.Millisecond

// Options configure a Reader
type Options struct {
	// Logger is an optional slog.Logger that tinput will log to. tinput
	// uses stdlib levels for logging, and a trace level at -8
	Logger *slog.Logger
	// ResizeInterval is how long CoalesceResize waits for the next resize
	// of a burst. Defaults to DefaultResizeInterval
	ResizeInterval time.Duration
	// CoalescePolicy decides what CoalesceResize does with input other
	// than resizes arriving in the middle of a burst. Defaults to
	// DiscardOthers
	CoalescePolicy CoalescePolicy
}

// setup installs the logger and fills in defaults
func (opts Options) setup() Options {
	if opts.Logger != nil {
		log.SetLogger(opts.Logger)
	}
	opts.applyQuirks()
	if opts.ResizeInterval <= 0 {
		opts.ResizeInterval = DefaultResizeInterval
	}
	return opts
}
