// Package attachment writes email attachments to transient storage so an
// external opener can access them by path.
package attachment

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitosaur/emlee/pkg/email"
	"github.com/rs/zerolog/log"
)

// WriteError reports a single attachment that could not be materialized.
type WriteError struct {
	FileName string
	Err      error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("write attachment %q: %v", e.FileName, e.Err)
}

func (e WriteError) Unwrap() error { return e.Err }

// Materializer writes attachment bytes beneath a process-wide scratch
// directory.  The directory is shared across emails for the life of the
// process: a filename seen again, in the same email or a later one,
// overwrites the earlier file.  Handle maps are rebuilt per email, so a
// stale path from a previous load is never re-exposed.
type Materializer struct {
	dir string
}

// New creates the scratch directory if needed and returns a Materializer
// rooted there.
func New(dir string) (*Materializer, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	return &Materializer{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (m *Materializer) Dir() string { return m.dir }

// Materialize writes each descriptor in order under its bare filename,
// returning a fresh filename to path map.  A failed write is collected and
// reported; it does not stop materialization of the remaining attachments.
func (m *Materializer) Materialize(atts []email.AttachmentDescriptor) (map[string]string, []WriteError) {
	paths := make(map[string]string, len(atts))
	var failures []WriteError
	for _, att := range atts {
		path, err := m.write(att)
		if err != nil {
			log.Warn().Str("module", "attachment").Str("filename", att.FileName).Err(err).
				Msg("Failed to materialize attachment")
			failures = append(failures, WriteError{FileName: att.FileName, Err: err})
			continue
		}
		paths[att.FileName] = path
	}
	return paths, failures
}

func (m *Materializer) write(att email.AttachmentDescriptor) (string, error) {
	// Base strips any directory components a hostile filename may carry.
	name := filepath.Base(att.FileName)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("unusable filename %q", att.FileName)
	}
	path := filepath.Join(m.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(file)
	if _, err := w.Write(att.Content); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}
