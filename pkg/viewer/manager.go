// Package viewer orchestrates the open-email operation: read, normalize,
// materialize attachments, and rebuild sibling navigation.
package viewer

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/bitosaur/emlee/pkg/attachment"
	"github.com/bitosaur/emlee/pkg/email"
	"github.com/bitosaur/emlee/pkg/extension"
	"github.com/bitosaur/emlee/pkg/extension/event"
	"github.com/bitosaur/emlee/pkg/metric"
	"github.com/bitosaur/emlee/pkg/nav"
	"github.com/rs/zerolog/log"
)

// ErrNoOpenEmail indicates navigation or inspection was requested before
// any email was opened.
var ErrNoOpenEmail = errors.New("no email is open")

// Load is the result of one successful open operation.  It is immutable
// once built; a subsequent open replaces it wholesale.
type Load struct {
	Path             string
	Email            *email.NormalizedEmail
	Attachments      map[string]string // filename to materialized path
	AttachmentErrors []attachment.WriteError
	Nav              *nav.State
}

// Manager is the interface display collaborators use to drive the viewer.
type Manager interface {
	Open(path string) (*Load, error)
	Next() (*Load, error)
	Previous() (*Load, error)
	Current() *Load
	SourceReader() (io.ReadCloser, error)
}

// Session is a Manager holding the state of the single open email.  Opens
// are serialized: the viewer supports one open email at a time, and one
// open operation runs to completion before the next begins.
type Session struct {
	Normalizer   *email.Normalizer
	Materializer *attachment.Materializer
	ExtHost      *extension.Host

	mu      sync.Mutex
	current *Load
}

var _ Manager = &Session{}

// Open loads the email file at path.  On failure the previously loaded
// email remains current and untouched.
func (s *Session) Open(path string) (*Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open(path)
}

func (s *Session) open(path string) (*Load, error) {
	slog := log.With().Str("module", "viewer").Str("path", path).Logger()

	norm, err := s.Normalizer.Open(path)
	if err != nil {
		slog.Warn().Err(err).Msg("Failed to open email")
		return nil, err
	}

	paths, writeErrs := s.Materializer.Materialize(s.renamed(path, norm.Attachments))

	navState, err := nav.Scan(path, s.Normalizer.Extensions())
	if err != nil {
		slog.Warn().Err(err).Msg("Failed to scan siblings")
		return nil, err
	}

	load := &Load{
		Path:             path,
		Email:            norm,
		Attachments:      paths,
		AttachmentErrors: writeErrs,
		Nav:              navState,
	}
	s.current = load
	metric.ExpOpenedTotal.Add(1)

	if s.ExtHost != nil {
		s.ExtHost.Events.AfterMessageOpened.Emit(openedEvent(load))
	}
	slog.Info().Int("attachments", len(norm.Attachments)).Int("siblings", len(navState.Paths)).
		Bool("html", norm.BodyIsHTML).Msg("Opened email")

	return load, nil
}

// renamed gives BeforeAttachmentWrite listeners a chance to redirect each
// materialized filename, e.g. to suffix duplicates.
func (s *Session) renamed(path string, atts []email.AttachmentDescriptor) []email.AttachmentDescriptor {
	if s.ExtHost == nil {
		return atts
	}
	out := make([]email.AttachmentDescriptor, len(atts))
	for i, att := range atts {
		out[i] = att
		ev := &event.AttachmentWrite{Path: path, FileName: att.FileName}
		if res := s.ExtHost.Events.BeforeAttachmentWrite.Emit(ev); res != nil && res.FileName != "" {
			out[i].FileName = res.FileName
		}
	}
	return out
}

// Next opens the sibling following the current email, wrapping at the end.
// With an empty sibling listing this is a no-op returning the current load.
func (s *Session) Next() (*Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoOpenEmail
	}
	path, ok := s.current.Nav.Next()
	if !ok {
		return s.current, nil
	}
	return s.open(path)
}

// Previous opens the sibling preceding the current email, wrapping at the
// start.  With an empty sibling listing this is a no-op returning the
// current load.
func (s *Session) Previous() (*Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoOpenEmail
	}
	path, ok := s.current.Nav.Previous()
	if !ok {
		return s.current, nil
	}
	return s.open(path)
}

// Current returns the most recent successful load, or nil.
func (s *Session) Current() *Load {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SourceReader opens the raw source of the current email file.
func (s *Session) SourceReader() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoOpenEmail
	}
	return os.Open(s.current.Path)
}

func openedEvent(load *Load) *event.MessageOpened {
	names := make([]string, len(load.Email.Attachments))
	for i, att := range load.Email.Attachments {
		names[i] = att.FileName
	}
	return &event.MessageOpened{
		Path:        load.Path,
		From:        load.Email.Headers["From"],
		To:          load.Email.Headers["To"],
		Subject:     load.Email.Headers["Subject"],
		Date:        load.Email.Headers["Date"],
		BodyIsHTML:  load.Email.BodyIsHTML,
		Attachments: names,
	}
}
