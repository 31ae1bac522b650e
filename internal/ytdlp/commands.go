package ytdlp

import (
	goytdlp "github.com/lrstanley/go-ytdlp"
)

// FlagVersion asks yt-dlp to print its version and exit
const FlagVersion = "--version"

// DefaultOutputTemplate names files after the item title and native extension
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// InquiryInvocation requests JSON metadata for a single item without downloading it.
// --skip-download is the canonical name of yt-dlp's --no-download.
func InquiryInvocation(url string) Invocation {
	return Invocation{
		Command: goytdlp.New().
			DumpJSON().
			SkipDownload().
			NoPlaylist(),
		Args: []string{url},
	}
}

// DownloadInvocation downloads url with the given format selector into the output template
func DownloadInvocation(selector, outputTemplate, url string) Invocation {
	return Invocation{
		Command: goytdlp.New().
			Format(selector).
			Output(outputTemplate),
		Args: []string{url},
	}
}

// VersionInvocation asks the tool for its version
func VersionInvocation() Invocation {
	return Invocation{
		Command: goytdlp.New(),
		Args:    []string{FlagVersion},
	}
}
