package ui

import (
	"github.com/ytget/yt-formats/internal/model"
)

// formatOptions maps picker labels back to format ids.
// The first option is always NoneOption, which maps to no id.
type formatOptions struct {
	labels []string
	ids    map[string]string
}

func newFormatOptions(formats []model.MediaFormat) formatOptions {
	o := formatOptions{
		labels: make([]string, 0, len(formats)+1),
		ids:    make(map[string]string, len(formats)),
	}
	o.labels = append(o.labels, NoneOption)
	for _, f := range formats {
		label := f.Label()
		o.labels = append(o.labels, label)
		o.ids[label] = f.FormatID
	}
	return o
}

// id returns the format id for label, or "" for NoneOption and unknown labels
func (o formatOptions) id(label string) string {
	return o.ids[label]
}

// label returns the picker label for a format id
func (o formatOptions) label(id string) (string, bool) {
	for label, fid := range o.ids {
		if fid == id {
			return label, true
		}
	}
	return "", false
}
