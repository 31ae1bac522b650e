package model

import (
	"fmt"
	"strings"

	"github.com/guregu/null/v6"
)

// CodecNone is the codec value yt-dlp reports for a missing stream
const CodecNone = "none"

// Byte size units for labels
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

// MediaFormat is one downloadable stream variant of a media item.
// Optional fields stay invalid (not present) when yt-dlp omits them or
// reports null, and are omitted again when marshalled.
type MediaFormat struct {
	FormatID   string      `json:"format_id"`
	FormatNote null.String `json:"format_note,omitzero"`
	Ext        string      `json:"ext"`
	VCodec     null.String `json:"vcodec,omitzero"`
	ACodec     null.String `json:"acodec,omitzero"`
	FileSize   null.Int    `json:"filesize,omitzero"`
	Height     null.Int    `json:"height,omitzero"`
	Width      null.Int    `json:"width,omitzero"`
	FPS        null.Float  `json:"fps,omitzero"`
	TBR        null.Float  `json:"tbr,omitzero"`
}

// MediaInquiryResult is the response to a format inquiry.
// Formats keep the order emitted by yt-dlp, which is its preference ranking.
type MediaInquiryResult struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Formats []MediaFormat `json:"formats"`
}

// HasVideo returns true if the format carries a video stream
func (f MediaFormat) HasVideo() bool {
	return hasCodec(f.VCodec)
}

// HasAudio returns true if the format carries an audio stream
func (f MediaFormat) HasAudio() bool {
	return hasCodec(f.ACodec)
}

// IsVideoOnly returns true for formats with video and no audio
func (f MediaFormat) IsVideoOnly() bool {
	return f.HasVideo() && !f.HasAudio()
}

// IsAudioOnly returns true for formats with audio and no video
func (f MediaFormat) IsAudioOnly() bool {
	return f.HasAudio() && !f.HasVideo()
}

// Resolution returns "WIDTHxHEIGHT", "HEIGHTp" or "" when unknown
func (f MediaFormat) Resolution() string {
	switch {
	case f.Width.Valid && f.Height.Valid:
		return fmt.Sprintf("%dx%d", f.Width.Int64, f.Height.Int64)
	case f.Height.Valid:
		return fmt.Sprintf("%dp", f.Height.Int64)
	default:
		return ""
	}
}

// Label returns a compact one-line description used by pickers and the CLI
func (f MediaFormat) Label() string {
	parts := []string{f.FormatID, f.Ext}

	switch {
	case f.IsAudioOnly():
		parts = append(parts, "audio only")
	case f.IsVideoOnly():
		parts = append(parts, "video only")
	}

	if res := f.Resolution(); res != "" {
		parts = append(parts, res)
	}
	if f.FPS.Valid && f.FPS.Float64 > 0 {
		parts = append(parts, fmt.Sprintf("%gfps", f.FPS.Float64))
	}
	if f.HasVideo() {
		parts = append(parts, f.VCodec.String)
	}
	if f.HasAudio() {
		parts = append(parts, f.ACodec.String)
	}
	if f.TBR.Valid && f.TBR.Float64 > 0 {
		parts = append(parts, fmt.Sprintf("%.0fk", f.TBR.Float64))
	}
	if f.FileSize.Valid {
		parts = append(parts, FormatSize(f.FileSize.Int64))
	}
	if f.FormatNote.Valid && f.FormatNote.String != "" {
		parts = append(parts, "("+f.FormatNote.String+")")
	}

	return strings.Join(parts, " · ")
}

// Format returns the format with the given id
func (r *MediaInquiryResult) Format(id string) (MediaFormat, bool) {
	for _, f := range r.Formats {
		if f.FormatID == id {
			return f, true
		}
	}
	return MediaFormat{}, false
}

// VideoFormats returns formats carrying video, in tool order
func (r *MediaInquiryResult) VideoFormats() []MediaFormat {
	return r.filter(MediaFormat.HasVideo)
}

// AudioFormats returns audio-only formats, in tool order
func (r *MediaInquiryResult) AudioFormats() []MediaFormat {
	return r.filter(MediaFormat.IsAudioOnly)
}

func (r *MediaInquiryResult) filter(keep func(MediaFormat) bool) []MediaFormat {
	out := make([]MediaFormat, 0, len(r.Formats))
	for _, f := range r.Formats {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// FormatSize renders a byte count with a binary unit
func FormatSize(size int64) string {
	switch {
	case size >= GiB:
		return fmt.Sprintf("%.2f GiB", float64(size)/GiB)
	case size >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(size)/MiB)
	case size >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(size)/KiB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func hasCodec(codec null.String) bool {
	return codec.Valid && codec.String != "" && codec.String != CodecNone
}
