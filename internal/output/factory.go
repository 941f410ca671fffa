package output

import "strings"

const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewWriter returns the writer for format. Unknown formats fall back to text.
func NewWriter(format string) Writer {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSONWriter()
	default:
		return NewTextWriter()
	}
}
