// Package filetype enumerates the content formats documents can be stored in.
package filetype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// FileType is a content format. Its value is the format's display label.
type FileType string

const (
	// Ort is the structured rich text format.
	Ort FileType = "OloRichText"
	// Orte is the encoded form of Ort.
	Orte FileType = "OloRichTextEncoded"
	// HTML is HyperText Markup Language.
	HTML FileType = "HyperTextMarkupLanguage"
	// Plain is unformatted text.
	Plain FileType = "PlainText"
	// Markdown is text formatted with Markdown syntax.
	Markdown FileType = "MarkDown"
)

// ErrUnknownFileType is returned when a label or name matches no FileType.
var ErrUnknownFileType = errors.New("unknown file type")

var all = [...]FileType{Ort, Orte, HTML, Plain, Markdown}

// All returns every FileType in declaration order.
func All() []FileType {
	out := make([]FileType, len(all))
	copy(out, all[:])
	return out
}

// Label returns the display label.
func (f FileType) Label() string {
	return string(f)
}

func (f FileType) String() string {
	return string(f)
}

// Name returns the short symbolic name, or "" for an unknown FileType.
func (f FileType) Name() string {
	switch f {
	case Ort:
		return "ort"
	case Orte:
		return "orte"
	case HTML:
		return "html"
	case Plain:
		return "plain"
	case Markdown:
		return "markdown"
	default:
		return ""
	}
}

// Valid reports whether f is one of the declared constants.
func (f FileType) Valid() bool {
	return f.Name() != ""
}

// ParseLabel looks a FileType up by its exact display label.
func ParseLabel(label string) (FileType, error) {
	for _, f := range all {
		if string(f) == label {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: label %q", ErrUnknownFileType, label)
}

// FromName looks a FileType up by its exact symbolic name.
func FromName(name string) (FileType, error) {
	for _, f := range all {
		if f.Name() == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: name %q", ErrUnknownFileType, name)
}

// Parse accepts a label or a symbolic name in any case or word style, so
// "markdown", "MARKDOWN", "mark_down" and "MarkDown" all resolve to Markdown.
func Parse(s string) (FileType, error) {
	s = strings.TrimSpace(s)
	camel := strcase.ToCamel(s)
	for _, f := range all {
		if strings.EqualFold(s, f.Name()) || strings.EqualFold(s, string(f)) || strings.EqualFold(camel, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFileType, s)
}

// MarshalText writes the display label.
func (f FileType) MarshalText() ([]byte, error) {
	if f == "" {
		return []byte{}, nil
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileType, string(f))
	}
	return []byte(f), nil
}

// UnmarshalText accepts anything Parse does. Empty text leaves f unset.
func (f *FileType) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*f = ""
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
