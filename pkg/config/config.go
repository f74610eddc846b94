// Package config provides the Emlee configuration, parsed from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"
)

const (
	prefix      = "emlee"
	tableFormat = `Emlee is configured via the environment. The following environment
variables can be used:

KEY	DEFAULT	DESCRIPTION
{{range .}}{{usage_key .}}	{{usage_default .}}	{{usage_description .}}
{{end}}`
)

var (
	// Version of this build, set by main.
	Version = ""

	// BuildDate for this build, set by main.
	BuildDate = ""
)

// Root wraps all other configurations.
type Root struct {
	LogLevel string `required:"true" default:"info" desc:"debug, info, warn, or error"`
	Viewer   Viewer
	Web      Web
	Lua      Lua
}

// Viewer contains the email viewer core configuration.
type Viewer struct {
	AttachmentDir  string `desc:"Attachment scratch dir, defaults beneath the system temp dir"`
	MonitorHistory int    `required:"true" default:"30" desc:"Monitor remembered open events"`
}

// Web contains the HTTP shell configuration.
type Web struct {
	Addr     string `required:"true" default:"127.0.0.1:9000" desc:"Web shell IP4 host:port"`
	BasePath string `desc:"Base path prefix for UI and API URLs"`
}

// Lua contains the extension script configuration.
type Lua struct {
	Path string `default:"emlee.lua" desc:"Lua extension script path"`
}

// Process loads and parses configuration from the environment.
func Process() (*Root, error) {
	c := &Root{}
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, err
	}
	if c.Viewer.AttachmentDir == "" {
		c.Viewer.AttachmentDir = filepath.Join(os.TempDir(), "emlee")
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	return c, nil
}

// Usage prints out the envconfig usage to Stderr.
func Usage() {
	tabs := tabwriter.NewWriter(os.Stderr, 1, 0, 4, ' ', 0)
	if err := envconfig.Usagef(prefix, &Root{}, tabs, tableFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse env config: %v\n", err)
		os.Exit(1)
	}
	tabs.Flush()
}
