// Package logging configures the hclog loggers used by the glyphrain
// command and passed down to the library packages.
package logging

import "io"
import "os"
import "time"
import "strings"

import "github.com/hashicorp/go-hclog"

// Environment variables read by [Level]() and [NewLogger]().
const (
	EnvLogLevel = "GLYPHRAIN_LOG_LEVEL"
	EnvJSONLog  = "GLYPHRAIN_JSON_LOG"
)

// Creates a logger with the given name and level writing to out
// (stderr if nil). Unknown levels fall back to info. JSON output
// is enabled by setting GLYPHRAIN_JSON_LOG=1.
func NewLogger(name string, level string, out io.Writer) hclog.Logger {
	if out == nil { out = os.Stderr }
	hclogLevel := hclog.LevelFromString(level)
	if hclogLevel == hclog.NoLevel { hclogLevel = hclog.Info }

	return hclog.New(&hclog.LoggerOptions{
		Name: name,
		Level: hclogLevel,
		Output: out,
		JSONFormat: os.Getenv(EnvJSONLog) == "1",
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time { return time.Now().UTC() },
	})
}

// Returns the given level if not empty, or the level configured
// through GLYPHRAIN_LOG_LEVEL otherwise, defaulting to "info".
func Level(flagLevel string) string {
	if flagLevel = strings.TrimSpace(flagLevel); flagLevel != "" { return flagLevel }
	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" { return envLevel }
	return "info"
}
