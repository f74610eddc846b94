// Package email normalizes stored email files into a single in-memory model,
// independent of their on-disk representation.
package email

// HeaderKeys lists the header fields guaranteed present in a normalized
// email.  Missing fields are carried as empty strings so display code never
// needs to branch on presence.
var HeaderKeys = []string{"From", "To", "Cc", "Bcc", "Subject", "Date"}

// AttachmentDescriptor holds one attachment's resolved filename and raw,
// decoded content.  Filenames are not guaranteed unique within an email.
type AttachmentDescriptor struct {
	FileName string
	Content  []byte
}

// Source is the format independent shape produced by source readers.  HTML
// and Text are decoded body candidates; either or both may be empty.
type Source struct {
	Headers     map[string]string
	HTML        string
	Text        string
	Attachments []AttachmentDescriptor
}

// NormalizedEmail is the canonical representation handed to display
// collaborators.  Body holds exactly one rendering of the message: the HTML
// candidate verbatim when BodyIsHTML is true, otherwise plain text already
// escaped and wrapped for markup-safe display.
type NormalizedEmail struct {
	Headers     map[string]string
	Body        string
	BodyIsHTML  bool
	Attachments []AttachmentDescriptor
}
