package model

// DownloadCompletedMessage is the confirmation returned for a finished download
const DownloadCompletedMessage = "Download completed successfully"

// DownloadOutcome describes a successful download. Failures are reported as
// errors. The final filename is chosen by yt-dlp and is not known here.
type DownloadOutcome struct {
	Message        string
	URL            string
	Selector       string
	Directory      string
	OutputTemplate string // full template passed with -o
}

// String returns the confirmation message
func (o *DownloadOutcome) String() string {
	return o.Message
}
