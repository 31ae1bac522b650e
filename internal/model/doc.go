package model

// Package model defines domain data structures shared by the tool boundary,
// the desktop UI and the CLI: media formats as reported by yt-dlp, the
// inquiry result, the user's format selection and the download outcome.
