package ui

// Package ui contains the Fyne-based window of the application: a text box for
// the URL list, the Download button and a busy spinner. Button clicks go to the
// job supervisor, which reports back through callbacks on the UI goroutine.
