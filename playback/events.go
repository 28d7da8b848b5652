package playback

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/storyline-cli/storyline/log"
)

// eventListener monitors mpv property changes over a persistent IPC
// connection and translates them into the typed Events callbacks.
type eventListener struct {
	socketPath string
	conn       net.Conn
	events     Events
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool

	// duration is the last reported media duration in seconds, 0 until
	// mpv learns it. Position callbacks always carry the latest value.
	duration float64
	finished bool
}

func newEventListener(socketPath string, events Events) *eventListener {
	return &eventListener{
		socketPath: socketPath,
		events:     events,
		stopCh:     make(chan struct{}),
	}
}

// Start registers the property observers and begins the read loop.
func (el *eventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	// observe_property <id> <property> makes mpv push change notifications.
	properties := []struct {
		id   int
		name string
	}{
		{1, "time-pos"},
		{2, "duration"},
		{3, "eof-reached"},
	}

	for _, prop := range properties {
		_, err := doSendCommand(el.socketPath, []interface{}{"observe_property", prop.id, prop.name})
		if err != nil {
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}
	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop terminates the event listener.
func (el *eventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop continuously reads newline-delimited JSON events from the
// persistent mpv connection.
func (el *eventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	buf := make([]byte, 4096)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		// Bounded read so Stop is noticed even on a silent socket.
		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := el.conn.Read(buf)
		if err != nil {
			if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline") {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		data := append(remainder, buf[:n]...)
		remainder = nil

		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			// An incomplete trailing line waits for the next read.
			if i == len(lines)-1 && !strings.HasSuffix(string(data), "\n") {
				remainder = []byte(line)
				continue
			}

			el.processEvent(line)
		}
	}
}

// processEvent parses one event line and dispatches the typed callbacks.
func (el *eventListener) processEvent(line string) {
	var event struct {
		Event string      `json:"event"`
		Name  string      `json:"name"`
		Data  interface{} `json:"data"`
	}
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return
	}
	if event.Event != "property-change" {
		return
	}

	switch event.Name {
	case "duration":
		if d, ok := event.Data.(float64); ok && d > 0 {
			el.mu.Lock()
			el.duration = d
			el.mu.Unlock()
		}
	case "time-pos":
		pos, ok := event.Data.(float64)
		if !ok {
			return
		}
		el.mu.Lock()
		duration := el.duration
		el.mu.Unlock()
		if el.events.OnPosition != nil {
			el.events.OnPosition(pos, duration)
		}
	case "eof-reached":
		reached, ok := event.Data.(bool)
		if !ok || !reached {
			return
		}
		el.mu.Lock()
		already := el.finished
		el.finished = true
		el.mu.Unlock()
		if !already && el.events.OnFinished != nil {
			el.events.OnFinished()
		}
	}
}
