package ui

// Window
const (
	AppTitle = "Music Manager"

	WindowWidth  float32 = 720
	WindowHeight float32 = 320
)

// Text fragments
const (
	TextDownload       = "Download"
	TextURLPlaceholder = "Paste media URLs, one per line"
	TextErrorTitle     = "There's been an error"
	TextBusy           = "Downloading..."
)

// URL box sizing
const (
	URLBoxVisibleRows = 10
)
