package constant

// runtime.GOOS values the open and playback packages branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
