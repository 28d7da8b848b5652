// Package playback abstracts the external media player used for video
// stories. The primary implementation drives mpv over its JSON-IPC socket.
package playback

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/key"
)

// Events carries the playback signals the viewing engine consumes.
// Either callback may be nil.
type Events struct {
	// OnPosition receives the playback position and, when known, the
	// media duration, both in seconds. Duration is 0 until reported.
	OnPosition func(positionSec, durationSec float64)
	// OnFinished fires once when the media plays to its natural end.
	OnFinished func()
}

// Backend is a media player capable of presenting one story at a time.
type Backend interface {
	// Play starts playback of the given URL, replacing any current media.
	Play(url, title string) error

	// SetPaused suspends or resumes playback.
	SetPaused(paused bool) error

	// Observe subscribes to playback signals for the current media.
	Observe(events Events) error

	// IsRunning reports whether the player process is alive and responding.
	IsRunning() bool

	// Close shuts the player down and releases its resources.
	Close() error
}

// New builds the configured playback backend.
func New() (Backend, error) {
	name := viper.GetString(key.PlayerVideoBackend)
	switch name {
	case "", "mpv":
		return NewMPV(), nil
	default:
		return nil, fmt.Errorf("unknown playback backend %q", name)
	}
}
