package render

import (
	"strings"

	"github.com/matzehuels/planarfaces/pkg/errors"
)

// Format names an output encoding.
type Format string

// Supported output formats.
const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatJSON, FormatMsgpack, FormatDOT, FormatSVG}

// ParseFormat parses a format name, case-insensitively. "mp" is accepted for
// MessagePack.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatMsgpack, FormatDOT, FormatSVG:
		return f, nil
	case "mp":
		return FormatMsgpack, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", s)
	}
}

// ParseFormats parses a list of format names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	out := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return "." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMsgpack:
		return "application/msgpack"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// Binary reports whether the format is not printable text.
func (f Format) Binary() bool { return f == FormatMsgpack }
