package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ytget/yt-formats/internal/model"
)

const emptyCell = "-"

// writeFormats prints the inquiry result as an aligned table, in tool order
func writeFormats(w io.Writer, result *model.MediaInquiryResult) error {
	if _, err := fmt.Fprintf(w, "%s [%s]\n\n", result.Title, result.ID); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEXT\tRESOLUTION\tVCODEC\tACODEC\tSIZE\tNOTE")
	for _, f := range result.Formats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.FormatID,
			f.Ext,
			cell(resolution(f)),
			cell(f.VCodec.String),
			cell(f.ACodec.String),
			cell(size(f)),
			cell(f.FormatNote.String),
		)
	}
	return tw.Flush()
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func resolution(f model.MediaFormat) string {
	if f.IsAudioOnly() {
		return "audio only"
	}
	return f.Resolution()
}

func size(f model.MediaFormat) string {
	if !f.FileSize.Valid {
		return ""
	}
	return model.FormatSize(f.FileSize.Int64)
}

func cell(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}
