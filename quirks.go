package tinput

import (
	"os"
	"time"

	"git.sr.ht/~rockorager/tinput/log"
)

// applyQuirks lets the environment override options, for debugging a
// terminal without rebuilding the application
func (opts *Options) applyQuirks() {
	if v := os.Getenv("TINPUT_RESIZE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		switch {
		case err != nil:
			log.Warn("ignoring TINPUT_RESIZE_INTERVAL=%q: %v", v, err)
		case d <= 0:
			log.Warn("ignoring non-positive TINPUT_RESIZE_INTERVAL=%q", v)
		default:
			opts.ResizeInterval = d
		}
	}
	if os.Getenv("TINPUT_KEEP_RESIZE_OTHERS") != "" {
		opts.CoalescePolicy = KeepOthers
	}
	if os.Getenv("TINPUT_TRACE") != "" {
		log.SetLevel(log.LevelTrace)
	}
}
