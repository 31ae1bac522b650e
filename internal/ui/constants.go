package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	NoneOption      = "—"
	AppTitle        = "YT Formats"
	URLPlaceholder  = "Paste a video URL"
	FormatHint      = "Explicit selector, e.g. bestvideo+bestaudio (overrides pickers)"
	DirPlaceholder  = "Platform downloads folder"
	TimeoutHint     = "0 = no timeout"
	ToolPlaceholder = "yt-dlp"
)

// Button labels
const (
	LabelFetch      = "Fetch formats"
	LabelDownload   = "Download"
	LabelOpenFolder = IconFolder + " Open folder"
	LabelBrowse     = "Browse"
)

// Status messages
const (
	StatusIdle        = "Enter a URL and fetch its formats"
	StatusFetching    = "Fetching formats..."
	StatusDownloading = "Downloading %s..."
	StatusFetched     = "%d formats available"
	StatusFailed      = "Failed: %v"
)

// Validation messages
const (
	MsgInvalidTimeout = "timeout must be a whole number of seconds, got %q"
)

// Window sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600
	DialogWidth  float32 = 500
	DialogHeight float32 = 360
)
