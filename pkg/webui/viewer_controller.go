package webui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/bitosaur/emlee/pkg/email"
	"github.com/bitosaur/emlee/pkg/server/web"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/bitosaur/emlee/pkg/webui/sanitize"
	"github.com/rs/zerolog/log"
)

// ViewerOpen loads the email file named by the path query parameter.
func ViewerOpen(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	path := req.URL.Query().Get("path")
	if path == "" {
		w.WriteHeader(http.StatusBadRequest)
		return web.RenderJSON(w, &JSONError{
			Result: "bad-request",
			Detail: "path query parameter is required",
		})
	}

	load, err := ctx.Manager.Open(path)
	if err != nil {
		return renderViewerError(w, err)
	}
	return web.RenderJSON(w, jsonLoad(load))
}

// ViewerCurrent outputs the currently open email as JSON for the UI.
func ViewerCurrent(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	load := ctx.Manager.Current()
	if load == nil {
		return renderViewerError(w, viewer.ErrNoOpenEmail)
	}
	return web.RenderJSON(w, jsonLoad(load))
}

// ViewerNext opens the sibling following the current email, wrapping at the end.
func ViewerNext(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	load, err := ctx.Manager.Next()
	if err != nil {
		return renderViewerError(w, err)
	}
	return web.RenderJSON(w, jsonLoad(load))
}

// ViewerPrevious opens the sibling preceding the current email, wrapping at the start.
func ViewerPrevious(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	load, err := ctx.Manager.Previous()
	if err != nil {
		return renderViewerError(w, err)
	}
	return web.RenderJSON(w, jsonLoad(load))
}

// ViewerSource displays the raw source of the current email, including
// headers. Renders text/plain.
func ViewerSource(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	r, err := ctx.Manager.SourceReader()
	if err != nil {
		return renderViewerError(w, err)
	}
	defer r.Close()

	w.Header().Set("Content-Type", "text/plain")
	_, err = io.Copy(w, r)
	return err
}

// ViewerAttachment sends a materialized attachment of the current email to
// the client.
func ViewerAttachment(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	load := ctx.Manager.Current()
	if load == nil {
		return renderViewerError(w, viewer.ErrNoOpenEmail)
	}

	name := ctx.Vars["file"]
	path, ok := load.Attachments[name]
	if !ok {
		http.NotFound(w, req)
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("attachment %q unreadable: %v", name, err)
	}
	defer f.Close()

	d, err := f.Stat()
	if err != nil {
		return fmt.Errorf("attachment %q unreadable: %v", name, err)
	}
	http.ServeContent(w, req, name, d.ModTime(), f)
	return nil
}

// renderViewerError maps sentinel errors to an HTTP status and a named
// result condition for the UI; unknown errors become a 500 upstream.
func renderViewerError(w http.ResponseWriter, err error) error {
	var status int
	var result string
	switch {
	case errors.Is(err, viewer.ErrNoOpenEmail):
		status, result = http.StatusConflict, "no-open-email"
	case errors.Is(err, email.ErrMalformedMessage):
		status, result = http.StatusUnprocessableEntity, "malformed-message"
	case errors.Is(err, email.ErrFormatUnsupported):
		status, result = http.StatusNotImplemented, "format-unsupported"
	case errors.Is(err, email.ErrUnrecognizedFormat):
		status, result = http.StatusUnsupportedMediaType, "unrecognized-format"
	case errors.Is(err, os.ErrNotExist):
		status, result = http.StatusNotFound, "not-found"
	default:
		return err
	}

	w.WriteHeader(status)
	return web.RenderJSON(w, &JSONError{Result: result, Detail: err.Error()})
}

// jsonLoad converts a viewer load for the UI, sanitizing HTML bodies.
func jsonLoad(load *viewer.Load) *JSONLoad {
	body := load.Email.Body
	if load.Email.BodyIsHTML {
		if str, err := sanitize.HTML(body); err == nil {
			body = str
		} else {
			body = "Emlee HTML sanitizer failed."
			log.Warn().Str("module", "webui").Str("path", load.Path).Err(err).
				Msg("HTML sanitizer failed")
		}
	}

	attachments := make([]*JSONAttachment, 0, len(load.Attachments))
	for name, path := range load.Attachments {
		attachments = append(attachments, &JSONAttachment{FileName: name, Path: path})
	}
	sort.Slice(attachments, func(i, j int) bool {
		return attachments[i].FileName < attachments[j].FileName
	})

	attachmentErrors := make([]string, len(load.AttachmentErrors))
	for i, werr := range load.AttachmentErrors {
		attachmentErrors[i] = werr.Error()
	}

	return &JSONLoad{
		Path:             load.Path,
		Headers:          load.Email.Headers,
		Body:             body,
		BodyIsHTML:       load.Email.BodyIsHTML,
		Attachments:      attachments,
		AttachmentErrors: attachmentErrors,
		Nav: &JSONNav{
			Index:    load.Nav.Index,
			Siblings: len(load.Nav.Paths),
		},
	}
}
