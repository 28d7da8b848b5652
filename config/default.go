// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/color"
	"github.com/storyline-cli/storyline/constant"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Storyline + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case float64:
		return "float64"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ServerURL, "http://localhost:8000", "Base URL of the stories service API")
	register(key.ServerTimeout, 30, "Request timeout for the stories service, in seconds")

	register(key.FeedLimit, 50, "Maximum number of stories to fetch per feed request")
	register(key.FeedHideViewed, false, "Hide fully viewed story bundles from the feed list")
	register(key.FeedMarkSeen, true, "Record viewed stories in the local seen registry so the feed can dim them")
	register(key.FeedDefaultOwner, "", "Open this friend's stories directly instead of showing the feed.\nMatched against owner names, closest match wins")

	register(key.PlayerPhotoDurationMs, 5000, "How long a photo story stays on screen, in milliseconds")
	register(key.PlayerTickIntervalMs, 100, "Granularity of the photo progress clock, in milliseconds")
	register(key.PlayerVideoFallbackMs, 10000, "Assumed video duration when the playback backend reports none, in milliseconds")
	register(key.PlayerStallGraceFactor, 2.0, "Stalled item watchdog threshold as a multiple of the expected item duration.\nWhen timing signals stop arriving for this long the item is force-completed")
	register(key.PlayerControlsTimeoutMs, 3000, "How long viewer controls stay visible after a tap, in milliseconds")
	register(key.PlayerVideoBackend, "mpv", "External video playback backend.\nCurrently only \"mpv\" is supported")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")

	register(key.TUIItemSpacing, 1, "Spacing between feed list entries")
	register(key.TUIShowURLs, false, "Show media URLs in the feed list descriptions")

	register(key.LogsWrite, false, "Write logs to the localized log directory")
	register(key.LogsLevel, "info", "Logging level.\nAvailable options are: trace, debug, info, warn, error, fatal, panic")
	register(key.LogsJson, false, "Write logs in JSON format")

	register(key.CliColored, true, "Colorize the CLI help output")
	register(key.CliVersionCheck, true, "Check for a newer release when the CLI runs")
}

// prettyTemplate renders a Field for human consumption in `config info`.
var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"purple":  style.Fg(color.Purple),
	"yellow":  style.Fg(color.Yellow),
	"value":   func(f *Field) string { return fmt.Sprint(viper.Get(f.Key)) },
	"default": func(f *Field) string { return fmt.Sprint(f.Value) },
}).Parse(`{{ purple .Key }}
{{ faint .Description }}
{{ bold "Value:" }} {{ value . }} {{ faint (printf "(default %s)" (default .)) }}
{{ bold "Env:" }} {{ yellow .Env }}`))
