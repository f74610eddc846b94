package email

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// Normalizer dispatches a file path to the correct source reader and applies
// the body selection policy.  Container is nil when no `.msg` decoder is
// built in.
type Normalizer struct {
	Container ContainerReader
}

// Extensions returns the file extensions this normalizer can open, governing
// which directory entries the sibling navigator considers eligible.
func (n *Normalizer) Extensions() []string {
	if n.Container == nil {
		return []string{".eml"}
	}
	return []string{".eml", ".msg"}
}

// Open reads and normalizes the email file at path.  The error wraps
// ErrMalformedMessage, ErrFormatUnsupported or ErrUnrecognizedFormat; no
// partial result is ever returned alongside an error.
func (n *Normalizer) Open(path string) (*NormalizedEmail, error) {
	var src *Source
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".eml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		src, err = ReadMIME(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
	case ".msg":
		if n.Container == nil {
			return nil, fmt.Errorf("%w: no container decoder for %q", ErrFormatUnsupported, ext)
		}
		var err error
		src, err = n.Container.Read(path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, ext)
	}

	return Normalize(src), nil
}

// Normalize builds the canonical email from a reader's Source, choosing
// exactly one body representation: HTML verbatim, else escaped plain text,
// else empty.
func Normalize(src *Source) *NormalizedEmail {
	headers := make(map[string]string, len(HeaderKeys))
	for _, key := range HeaderKeys {
		headers[key] = src.Headers[key]
	}

	body := ""
	bodyIsHTML := false
	switch {
	case src.HTML != "":
		body = src.HTML
		bodyIsHTML = true
	case src.Text != "":
		body = textToHTML(src.Text)
	}

	return &NormalizedEmail{
		Headers:     headers,
		Body:        body,
		BodyIsHTML:  bodyIsHTML,
		Attachments: src.Attachments,
	}
}

// textToHTML escapes markup characters in plain text and wraps it in a pre
// block, preserving the source line breaks and spacing exactly.
func textToHTML(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}
