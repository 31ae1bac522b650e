package download

// Package download implements format inquiry and downloads on top of the
// yt-dlp binary. Every call spawns exactly one subprocess through a
// ytdlp.Runner and waits for it; calls share no mutable state and may run
// concurrently.
