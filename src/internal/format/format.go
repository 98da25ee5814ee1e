// Package format renders digest output lines from user templates.
package format

import (
	"fmt"
	"io"
	"strconv"

	"github.com/valyala/fasttemplate"

	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
)

const (
	startTag = "{{"
	endTag   = "}}"

	TagDigest = "digest"
	TagName   = "name"
	TagSize   = "size"

	// DefaultTemplate prints the bare hex digest.
	DefaultTemplate = "{{digest}}"
	// CoreutilsTemplate mirrors md5sum output.
	CoreutilsTemplate = "{{digest}}  {{name}}"
)

var knownTags = map[string]struct{}{
	TagDigest: {},
	TagName:   {},
	TagSize:   {},
}

// Entry is one hashed message to render.
type Entry struct {
	Digest digest.Digest
	Name   string
	Size   int
}

// Renderer writes entries using a parsed template.
type Renderer struct {
	tmpl *fasttemplate.Template
}

// NewRenderer parses tmpl. Unknown tags are rejected up front so a typo does
// not silently print an empty field.
func NewRenderer(tmpl string) (*Renderer, error) {
	if err := Validate(tmpl); err != nil {
		return nil, err
	}
	t, err := fasttemplate.NewTemplate(tmpl, startTag, endTag)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid output template", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Validate reports whether tmpl parses and only uses known tags.
func Validate(tmpl string) error {
	t, err := fasttemplate.NewTemplate(tmpl, startTag, endTag)
	if err != nil {
		return apperrors.NewValidationError("invalid output template", err)
	}

	var unknown string
	t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if _, ok := knownTags[tag]; !ok && unknown == "" {
			unknown = tag
		}
		return 0, nil
	})
	if unknown != "" {
		return apperrors.NewValidationError(fmt.Sprintf("unknown template tag %q", unknown), nil)
	}
	return nil
}

// Render returns the rendered line for entry without a trailing newline.
func (r *Renderer) Render(entry Entry) string {
	return r.tmpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		switch tag {
		case TagDigest:
			return io.WriteString(w, entry.Digest.String())
		case TagName:
			return io.WriteString(w, entry.Name)
		case TagSize:
			return io.WriteString(w, strconv.Itoa(entry.Size))
		}
		return 0, nil
	})
}

// WriteLine renders entry followed by a newline.
func (r *Renderer) WriteLine(w io.Writer, entry Entry) error {
	if _, err := io.WriteString(w, r.Render(entry)+"\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
