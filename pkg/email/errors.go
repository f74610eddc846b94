package email

import "errors"

var (
	// ErrMalformedMessage indicates the top-level byte stream could not be
	// parsed as a message.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrFormatUnsupported indicates the file format needs a container
	// decoder that is not available in this build.
	ErrFormatUnsupported = errors.New("format not supported")

	// ErrUnrecognizedFormat indicates the file extension is not handled.
	ErrUnrecognizedFormat = errors.New("unrecognized file format")
)
