package model

// MergeSeparator joins a video and an audio format id into one selector
const MergeSeparator = "+"

// FormatSelection is the user's choice for a download. Empty fields are absent.
type FormatSelection struct {
	// Format is a pre-combined selector passed to yt-dlp verbatim
	Format  string
	VideoID string
	AudioID string
}

// Selector resolves the yt-dlp format selector.
// Precedence: explicit Format, then VideoID+AudioID merged, then whichever
// single id is set. It returns false when nothing was selected.
func (s FormatSelection) Selector() (string, bool) {
	switch {
	case s.Format != "":
		return s.Format, true
	case s.VideoID != "" && s.AudioID != "":
		return s.VideoID + MergeSeparator + s.AudioID, true
	case s.VideoID != "":
		return s.VideoID, true
	case s.AudioID != "":
		return s.AudioID, true
	default:
		return "", false
	}
}

// IsEmpty returns true when no format is selected
func (s FormatSelection) IsEmpty() bool {
	_, ok := s.Selector()
	return !ok
}
