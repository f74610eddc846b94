package viewer_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitosaur/emlee/pkg/attachment"
	"github.com/bitosaur/emlee/pkg/email"
	"github.com/bitosaur/emlee/pkg/extension"
	"github.com/bitosaur/emlee/pkg/extension/event"
	"github.com/bitosaur/emlee/pkg/test"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T, container email.ContainerReader) *viewer.Session {
	t.Helper()
	m, err := attachment.New(filepath.Join(t.TempDir(), "scratch"))
	require.NoError(t, err)
	return &viewer.Session{
		Normalizer:   &email.Normalizer{Container: container},
		Materializer: m,
		ExtHost:      extension.NewHost(),
	}
}

func writeEML(t *testing.T, dir, name, subject, body string) string {
	t.Helper()
	msg := fmt.Sprintf("From: a@example.com\nSubject: %s\n\n%s", subject, body)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(msg), 0644))
	return path
}

// attachmentEML builds a message carrying two plain text attachments.
func attachmentEML(t *testing.T, dir, name string, files ...[2]string) string {
	t.Helper()
	msg := "From: a@example.com\nSubject: attached\nMIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=\"b\"\n\n" +
		"--b\nContent-Type: text/plain\n\nsee attached\n"
	for _, f := range files {
		msg += fmt.Sprintf("--b\nContent-Type: application/octet-stream\n"+
			"Content-Disposition: attachment; filename=\"%s\"\n\n%s\n", f[0], f[1])
	}
	msg += "--b--\n"
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(msg), 0644))
	return path
}

func TestOpenBuildsLoad(t *testing.T) {
	dir := t.TempDir()
	writeEML(t, dir, "a.eml", "first", "hello")
	path := writeEML(t, dir, "b.eml", "second", "world")

	s := testSession(t, nil)
	load, err := s.Open(path)
	require.NoError(t, err)

	assert.Equal(t, "second", load.Email.Headers["Subject"])
	assert.Equal(t, 1, load.Nav.Index)
	assert.Len(t, load.Nav.Paths, 2)
	assert.Same(t, load, s.Current())
}

func TestOpenFailureKeepsPreviousLoad(t *testing.T) {
	dir := t.TempDir()
	good := writeEML(t, dir, "good.eml", "ok", "body")
	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("not mail"), 0644))

	s := testSession(t, nil)
	load, err := s.Open(good)
	require.NoError(t, err)

	_, err = s.Open(bad)
	assert.True(t, errors.Is(err, email.ErrUnrecognizedFormat), "got %v", err)
	assert.Same(t, load, s.Current(), "failed open must not replace current load")
}

func TestNextPreviousTraversal(t *testing.T) {
	dir := t.TempDir()
	writeEML(t, dir, "a.eml", "sub-a", "1")
	writeEML(t, dir, "B.eml", "sub-b", "2")
	writeEML(t, dir, "c.eml", "sub-c", "3")

	s := testSession(t, nil)
	_, err := s.Open(filepath.Join(dir, "c.eml"))
	require.NoError(t, err)

	// Wraps from the end back to the start.
	load, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "sub-a", load.Email.Headers["Subject"])

	// And from the start back to the end.
	load, err = s.Previous()
	require.NoError(t, err)
	assert.Equal(t, "sub-c", load.Email.Headers["Subject"])
}

func TestNavigationBeforeOpen(t *testing.T) {
	s := testSession(t, nil)
	_, err := s.Next()
	assert.ErrorIs(t, err, viewer.ErrNoOpenEmail)
	_, err = s.Previous()
	assert.ErrorIs(t, err, viewer.ErrNoOpenEmail)
	assert.Nil(t, s.Current())
}

func TestMsgExcludedWithoutContainer(t *testing.T) {
	dir := t.TempDir()
	path := writeEML(t, dir, "a.eml", "ok", "body")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.msg"), []byte("opaque"), 0644))

	s := testSession(t, nil)

	_, err := s.Open(filepath.Join(dir, "c.msg"))
	assert.True(t, errors.Is(err, email.ErrFormatUnsupported), "got %v", err)

	load, err := s.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, load.Nav.Paths, "msg files are not eligible siblings")
}

func TestMsgIncludedWithContainer(t *testing.T) {
	dir := t.TempDir()
	writeEML(t, dir, "a.eml", "ok", "body")
	msgPath := filepath.Join(dir, "c.msg")
	require.NoError(t, os.WriteFile(msgPath, []byte("opaque"), 0644))

	s := testSession(t, &test.StubContainer{Sources: map[string]*email.Source{
		msgPath: {Headers: map[string]string{"Subject": "from container"}, Text: "hi"},
	}})

	load, err := s.Open(msgPath)
	require.NoError(t, err)
	assert.Equal(t, "from container", load.Email.Headers["Subject"])
	assert.Len(t, load.Nav.Paths, 2)
	assert.Equal(t, 1, load.Nav.Index)
}

func TestAttachmentsMaterializedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := attachmentEML(t, dir, "m.eml", [2]string{"data.csv", "1,2,3"})

	s := testSession(t, nil)
	load, err := s.Open(path)
	require.NoError(t, err)
	require.Contains(t, load.Attachments, "data.csv")

	got, err := os.ReadFile(load.Attachments["data.csv"])
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", string(got))
}

func TestDuplicateAttachmentLaterWins(t *testing.T) {
	dir := t.TempDir()
	path := attachmentEML(t, dir, "m.eml",
		[2]string{"image.png", "first"}, [2]string{"image.png", "second"})

	s := testSession(t, nil)
	load, err := s.Open(path)
	require.NoError(t, err)
	require.Contains(t, load.Attachments, "image.png")

	got, err := os.ReadFile(load.Attachments["image.png"])
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestBeforeAttachmentWriteRename(t *testing.T) {
	dir := t.TempDir()
	path := attachmentEML(t, dir, "m.eml", [2]string{"data.csv", "1,2,3"})

	s := testSession(t, nil)
	s.ExtHost.Events.BeforeAttachmentWrite.AddListener("rename",
		func(aw event.AttachmentWrite) *event.AttachmentWrite {
			aw.FileName = "renamed.csv"
			return &aw
		})

	load, err := s.Open(path)
	require.NoError(t, err)
	require.Contains(t, load.Attachments, "renamed.csv")
	assert.Equal(t, filepath.Base(load.Attachments["renamed.csv"]), "renamed.csv")
}

func TestAfterMessageOpenedEvent(t *testing.T) {
	dir := t.TempDir()
	path := attachmentEML(t, dir, "m.eml", [2]string{"data.csv", "1,2,3"})

	s := testSession(t, nil)
	wait := s.ExtHost.Events.AfterMessageOpened.AsyncTestListener("test", 1)

	_, err := s.Open(path)
	require.NoError(t, err)

	ev, err := wait()
	require.NoError(t, err)
	assert.Equal(t, path, ev.Path)
	assert.Equal(t, "attached", ev.Subject)
	assert.Equal(t, []string{"data.csv"}, ev.Attachments)
}

func TestSourceReader(t *testing.T) {
	dir := t.TempDir()
	path := writeEML(t, dir, "a.eml", "raw", "the raw body")

	s := testSession(t, nil)
	_, err := s.Open(path)
	require.NoError(t, err)

	r, err := s.SourceReader()
	require.NoError(t, err)
	defer r.Close()
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: raw")
}
