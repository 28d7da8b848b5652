package viewer

import (
	"time"

	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/key"
)

// Options tune the engine's timing behavior. The zero value is usable:
// every unset field falls back to its documented default.
type Options struct {
	// Clock supplies all scheduled callbacks. Defaults to SystemClock.
	Clock Clock
	// PhotoDuration is how long a photo item stays on screen. Default 5s.
	PhotoDuration time.Duration
	// TickInterval is the granularity of the photo progress clock. Default 100ms.
	TickInterval time.Duration
	// VideoFallback is the assumed video duration until the playback
	// backend reports a real one. Default 10s.
	VideoFallback time.Duration
	// StallGraceFactor is the stalled-item watchdog threshold, as a multiple
	// of the expected item duration. Default 2.0.
	StallGraceFactor float64
	// ControlsTimeout is how long viewer controls stay visible after a tap.
	// Default 3s.
	ControlsTimeout time.Duration
}

// DefaultOptions builds Options from the global configuration.
func DefaultOptions() Options {
	return Options{
		Clock:            SystemClock(),
		PhotoDuration:    time.Duration(viper.GetInt(key.PlayerPhotoDurationMs)) * time.Millisecond,
		TickInterval:     time.Duration(viper.GetInt(key.PlayerTickIntervalMs)) * time.Millisecond,
		VideoFallback:    time.Duration(viper.GetInt(key.PlayerVideoFallbackMs)) * time.Millisecond,
		StallGraceFactor: viper.GetFloat64(key.PlayerStallGraceFactor),
		ControlsTimeout:  time.Duration(viper.GetInt(key.PlayerControlsTimeoutMs)) * time.Millisecond,
	}
}

func (o *Options) fillDefaults() {
	if o.Clock == nil {
		o.Clock = SystemClock()
	}
	if o.PhotoDuration <= 0 {
		o.PhotoDuration = 5 * time.Second
	}
	if o.TickInterval <= 0 {
		o.TickInterval = 100 * time.Millisecond
	}
	if o.VideoFallback <= 0 {
		o.VideoFallback = 10 * time.Second
	}
	if o.StallGraceFactor <= 1 {
		o.StallGraceFactor = 2
	}
	if o.ControlsTimeout <= 0 {
		o.ControlsTimeout = 3 * time.Second
	}
}
