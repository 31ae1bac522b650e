package ytdlp

// Package ytdlp is the boundary to the external yt-dlp binary (driven through
// github.com/lrstanley/go-ytdlp): a Runner capability that spawns it, builders
// for its invocations, a parser for its --dump-json contract and the error
// taxonomy surfaced to callers.
