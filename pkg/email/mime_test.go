package email_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bitosaur/emlee/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multipartMsg = `From: sender@example.com
To: dest@example.com
Subject: Picnic
Date: Fri, 22 Aug 2026 10:00:00 -0700
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: text/plain; charset=utf-8

Plain body
--outer
Content-Type: text/html; charset=utf-8

<html><body><p>HTML body</p></body></html>
--outer
Content-Type: application/octet-stream
Content-Disposition: attachment; filename="report.pdf"
Content-Transfer-Encoding: base64

UERGLWJ5dGVz
--outer--
`

func TestReadMIMEMultipart(t *testing.T) {
	src, err := email.ReadMIME(strings.NewReader(multipartMsg))
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", src.Headers["From"])
	assert.Equal(t, "dest@example.com", src.Headers["To"])
	assert.Equal(t, "Picnic", src.Headers["Subject"])
	assert.Equal(t, "Fri, 22 Aug 2026 10:00:00 -0700", src.Headers["Date"])

	// Both body candidates captured, neither chosen yet.
	assert.Contains(t, src.HTML, "<p>HTML body</p>")
	assert.Contains(t, src.Text, "Plain body")

	require.Len(t, src.Attachments, 1)
	assert.Equal(t, "report.pdf", src.Attachments[0].FileName)
	assert.Equal(t, []byte("PDF-bytes"), src.Attachments[0].Content)
}

func TestReadMIMEMissingHeadersPresentEmpty(t *testing.T) {
	msg := "Subject: only a subject\n\nbody text\n"
	src, err := email.ReadMIME(strings.NewReader(msg))
	require.NoError(t, err)

	for _, key := range email.HeaderKeys {
		_, ok := src.Headers[key]
		assert.True(t, ok, "header %q should be present", key)
	}
	assert.Equal(t, "only a subject", src.Headers["Subject"])
	assert.Equal(t, "", src.Headers["Bcc"])
}

func TestReadMIMEUnreadableStream(t *testing.T) {
	_, err := email.ReadMIME(iotest.ErrReader(errors.New("disk gone")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, email.ErrMalformedMessage),
		"want ErrMalformedMessage, got %v", err)
}

func TestReadMIMEAttachmentWithoutFilenameSkipped(t *testing.T) {
	msg := `From: sender@example.com
Subject: nameless
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="b"

--b
Content-Type: text/plain

body
--b
Content-Type: application/octet-stream
Content-Disposition: attachment

AAAA
--b--
`
	src, err := email.ReadMIME(strings.NewReader(msg))
	require.NoError(t, err)
	assert.Empty(t, src.Attachments)
	assert.Contains(t, src.Text, "body")
}
