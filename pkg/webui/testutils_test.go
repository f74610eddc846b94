package webui_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/bitosaur/emlee/pkg/config"
	"github.com/bitosaur/emlee/pkg/msghub"
	"github.com/bitosaur/emlee/pkg/server/web"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/bitosaur/emlee/pkg/webui"
)

var routesOnce sync.Once

// setupWebServer initializes the shared router with the provided manager.
func setupWebServer(mm viewer.Manager) {
	conf := &config.Root{
		Web: config.Web{Addr: "127.0.0.1:9000"},
	}
	shutdownChan := make(chan bool)
	routesOnce.Do(func() {
		webui.SetupRoutes(web.Router.PathPrefix("/api/").Subrouter())
	})
	web.Initialize(conf, shutdownChan, mm, &msghub.Hub{})
}

func testGet(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", url, nil)
	req.Header.Add("Accept", "application/json")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

func testPost(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", url, nil)
	req.Header.Add("Accept", "application/json")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

// stubManager backs handler tests without touching the filesystem.
type stubManager struct {
	load   *viewer.Load
	err    error
	source string
}

func (m *stubManager) Open(path string) (*viewer.Load, error) { return m.load, m.err }
func (m *stubManager) Next() (*viewer.Load, error)            { return m.load, m.err }
func (m *stubManager) Previous() (*viewer.Load, error)        { return m.load, m.err }
func (m *stubManager) Current() *viewer.Load                  { return m.load }

func (m *stubManager) SourceReader() (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(strings.NewReader(m.source)), nil
}

var _ viewer.Manager = &stubManager{}

func contentType(w *httptest.ResponseRecorder) string {
	return w.Header().Get("Content-Type")
}
