package playback

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/storyline-cli/storyline/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements Backend using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	listener   *eventListener
	mu         sync.Mutex // protects socket writes
}

// NewMPV creates an MPV backend. The player process starts on first Play.
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Play starts playback of the given URL. If mpv is already running, the new
// media is loaded into the existing instance over IPC instead of spawning a
// second window.
func (m *MPV) Play(rawURL, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	safeTitle := sanitizeTitle(title)

	if m.IsRunning() {
		if _, err := m.sendCommand([]interface{}{"loadfile", safeURL, "replace"}); err != nil {
			return fmt.Errorf("load media: %w", err)
		}
		return m.set("force-media-title", safeTitle)
	}

	// Random socket name under os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/).
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("storyline-%x.sock", randomBytes))
	}

	// Pass only the socket, title and URL. No --vo, --profile or --hwdec,
	// the user's mpv.conf stays in charge.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		safeURL,
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from the parent process group so closing the terminal does
	// not take the player down with it.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies.
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// waitForSocket polls until the mpv IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// SetPaused suspends or resumes playback.
func (m *MPV) SetPaused(paused bool) error {
	return m.set("pause", paused)
}

// Observe subscribes to playback property changes for the current media.
// Restarts the listener if one is already attached.
func (m *MPV) Observe(events Events) error {
	if m.listener != nil {
		m.listener.Stop()
	}
	m.listener = newEventListener(m.socketPath, events)
	return m.listener.Start()
}

// IsRunning reports whether mpv is alive and responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts the mpv process down and cleans up its socket.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if m.socketPath == "" {
		return nil
	}

	// Graceful quit first, force kill if mpv does not comply.
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// sanitizeMediaTarget validates that a target is safe to hand to mpv.
// Server-supplied URLs must never be able to smuggle player flags in.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Local file path.
	return filepath.Clean(l), nil
}

// sanitizeTitle strips characters that would corrupt the IPC command line.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
