package ui

// Package ui contains the Fyne-based desktop user interface. It wires the URL
// entry and format pickers to the download service and keeps blocking yt-dlp
// calls off the UI goroutine.
