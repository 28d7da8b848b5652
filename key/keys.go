// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Stories Service - these keys configure the connection to the remote stories API.
const (
	ServerURL     = "server.url"
	ServerTimeout = "server.timeout"
)

// Feed Retrieval - these keys govern how the story feed is fetched and presented.
const (
	FeedLimit        = "feed.limit"
	FeedHideViewed   = "feed.hide_viewed"
	FeedMarkSeen     = "feed.mark_seen"
	FeedDefaultOwner = "feed.default_owner"
)

// Playback Engine - these keys drive the timing model of the story viewer.
const (
	PlayerPhotoDurationMs   = "player.photo_duration_ms"
	PlayerTickIntervalMs    = "player.tick_interval_ms"
	PlayerVideoFallbackMs   = "player.video_fallback_ms"
	PlayerStallGraceFactor  = "player.stall_grace_factor"
	PlayerControlsTimeoutMs = "player.controls_timeout_ms"
	PlayerVideoBackend      = "player.video_backend"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
