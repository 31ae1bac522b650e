package download

import (
	"context"

	"github.com/ytget/yt-formats/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// Inquire lists the formats yt-dlp offers for url
	Inquire(ctx context.Context, url string) (*model.MediaInquiryResult, error)

	// Download fetches url with the selected formats into targetDir, or the
	// platform downloads directory when targetDir is empty
	Download(ctx context.Context, url string, selection model.FormatSelection, targetDir string) (*model.DownloadOutcome, error)

	// ToolVersion reports the yt-dlp version
	ToolVersion(ctx context.Context) (string, error)
}

var _ Downloader = (*Service)(nil)
