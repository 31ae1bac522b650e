package ytdlp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/ytget/yt-formats/internal/model"
)

// Required keys of the --dump-json contract
const (
	KeyID       = "id"
	KeyTitle    = "title"
	KeyFormats  = "formats"
	KeyFormatID = "format_id"
	KeyExt      = "ext"
)

// ParseInquiry decodes yt-dlp --dump-json output into a MediaInquiryResult.
// Missing required keys and mistyped values fail; keys the model does not
// know are ignored since yt-dlp emits many more than are modelled here.
func ParseInquiry(stdout []byte) (*model.MediaInquiryResult, error) {
	if !gjson.ValidBytes(stdout) {
		return nil, errors.New("output is not valid JSON")
	}

	doc := gjson.ParseBytes(stdout)
	if !doc.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", doc.Type)
	}

	if err := requireString(doc, KeyID); err != nil {
		return nil, err
	}
	if err := requireString(doc, KeyTitle); err != nil {
		return nil, err
	}

	formats := doc.Get(KeyFormats)
	if !formats.Exists() {
		return nil, fmt.Errorf("missing field %q", KeyFormats)
	}
	if !formats.IsArray() {
		return nil, fmt.Errorf("field %q: expected array, got %s", KeyFormats, formats.Type)
	}

	for i, f := range formats.Array() {
		if !f.IsObject() {
			return nil, fmt.Errorf("%s[%d]: expected object, got %s", KeyFormats, i, f.Type)
		}
		if err := requireString(f, KeyFormatID); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeyFormats, i, err)
		}
		if err := requireString(f, KeyExt); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeyFormats, i, err)
		}
	}

	var result model.MediaInquiryResult
	if err := json.Unmarshal(stdout, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func requireString(obj gjson.Result, key string) error {
	v := obj.Get(key)
	if !v.Exists() {
		return fmt.Errorf("missing field %q", key)
	}
	if v.Type != gjson.String {
		return fmt.Errorf("field %q: expected string, got %s", key, v.Type)
	}
	return nil
}
