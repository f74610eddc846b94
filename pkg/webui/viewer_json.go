package webui

// JSONLoad formats an opened email for the UI.
type JSONLoad struct {
	Path             string            `json:"path"`
	Headers          map[string]string `json:"headers"`
	Body             string            `json:"body"`
	BodyIsHTML       bool              `json:"body-is-html"`
	Attachments      []*JSONAttachment `json:"attachments"`
	AttachmentErrors []string          `json:"attachment-errors"`
	Nav              *JSONNav          `json:"nav"`
}

// JSONAttachment formats a materialized attachment for the UI.
type JSONAttachment struct {
	FileName string `json:"filename"`
	Path     string `json:"path"`
}

// JSONNav formats sibling navigation state for the UI.
type JSONNav struct {
	Index    int `json:"index"`
	Siblings int `json:"siblings"`
}

// JSONError names the failure of a viewer operation.
type JSONError struct {
	Result string `json:"result"`
	Detail string `json:"detail"`
}

// JSONMonitorEvent is sent to WebSocket monitor clients on each open.
type JSONMonitorEvent struct {
	Variant string `json:"variant"`
	Opened  *JSONOpened `json:"opened"`
}

// JSONOpened summarizes an open event for monitor clients.
type JSONOpened struct {
	Path        string   `json:"path"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Date        string   `json:"date"`
	BodyIsHTML  bool     `json:"body-is-html"`
	Attachments []string `json:"attachments"`
}
