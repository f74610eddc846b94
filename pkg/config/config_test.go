package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitosaur/emlee/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDefaults(t *testing.T) {
	conf, err := config.Process()
	require.NoError(t, err)

	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", conf.Web.Addr)
	assert.Equal(t, "", conf.Web.BasePath)
	assert.Equal(t, 30, conf.Viewer.MonitorHistory)
	assert.Equal(t, "emlee.lua", conf.Lua.Path)
	assert.Equal(t, filepath.Join(os.TempDir(), "emlee"), conf.Viewer.AttachmentDir)
}

func TestProcessOverrides(t *testing.T) {
	t.Setenv("EMLEE_LOGLEVEL", "Debug")
	t.Setenv("EMLEE_WEB_ADDR", "0.0.0.0:8080")
	t.Setenv("EMLEE_VIEWER_ATTACHMENTDIR", "/var/tmp/mail")
	t.Setenv("EMLEE_VIEWER_MONITORHISTORY", "5")

	conf, err := config.Process()
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.LogLevel, "log level is lowercased")
	assert.Equal(t, "0.0.0.0:8080", conf.Web.Addr)
	assert.Equal(t, "/var/tmp/mail", conf.Viewer.AttachmentDir)
	assert.Equal(t, 5, conf.Viewer.MonitorHistory)
}
