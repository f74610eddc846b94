// Package event defines the event payloads emitted to extensions.
package event

// MessageOpened summarizes an email that was just opened and normalized.
// Header values are carried as the display strings from the source file.
type MessageOpened struct {
	Path        string
	From        string
	To          string
	Subject     string
	Date        string
	BodyIsHTML  bool
	Attachments []string
}

// AttachmentWrite describes an attachment about to be materialized.  A
// listener may return a modified copy to redirect the write to a different
// filename, e.g. to suffix duplicates.
type AttachmentWrite struct {
	Path     string // email file the attachment came from
	FileName string // target filename within the scratch dir
}
