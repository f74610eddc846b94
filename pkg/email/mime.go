package email

import (
	"fmt"
	"io"

	"github.com/jhillyerd/enmime/v2"
	"github.com/rs/zerolog/log"
)

// ReadMIME parses an RFC 5322 message, with optional MIME multipart
// structure, into a Source.  Defects in individual parts are absorbed here:
// enmime records them as envelope errors and continues walking the part
// tree, so a broken attachment never takes down an otherwise readable
// message.  Only an unparseable top-level stream is fatal.
func ReadMIME(r io.Reader) (*Source, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	for _, e := range env.Errors {
		log.Debug().Str("module", "email").Str("name", e.Name).Bool("severe", e.Severe).
			Str("detail", e.Detail).Msg("MIME part defect")
	}

	headers := make(map[string]string, len(HeaderKeys))
	for _, key := range HeaderKeys {
		headers[key] = env.GetHeader(key)
	}

	var attachments []AttachmentDescriptor
	for _, part := range env.Attachments {
		if part.FileName == "" {
			log.Debug().Str("module", "email").Str("contentType", part.ContentType).
				Msg("Skipping attachment without filename")
			continue
		}
		attachments = append(attachments, AttachmentDescriptor{
			FileName: part.FileName,
			Content:  part.Content,
		})
	}

	return &Source{
		Headers:     headers,
		HTML:        env.HTML,
		Text:        env.Text,
		Attachments: attachments,
	}, nil
}
