package logging

import "bytes"
import "strings"
import "testing"

func TestLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if Level("") != "info" { t.Fatalf("expected default info, got %q", Level("")) }
	t.Setenv(EnvLogLevel, "trace")
	if Level("") != "trace" { t.Fatalf("expected env level, got %q", Level("")) }
	if Level(" warn ") != "warn" { t.Fatalf("expected flag level, got %q", Level(" warn ")) }
}

func TestNewLogger(t *testing.T) {
	t.Setenv(EnvJSONLog, "")
	var out bytes.Buffer
	logger := NewLogger("glyphrain", "warn", &out)
	logger.Info("hidden")
	logger.Warn("shown", "frame", 3)
	text := out.String()
	if strings.Contains(text, "hidden") { t.Fatalf("info message logged at warn level: %q", text) }
	if !strings.Contains(text, "shown") || !strings.Contains(text, "frame=3") {
		t.Fatalf("unexpected output %q", text)
	}

	out.Reset()
	t.Setenv(EnvJSONLog, "1")
	logger = NewLogger("glyphrain", "bogus", &out)
	logger.Info("json")
	if !strings.HasPrefix(strings.TrimSpace(out.String()), "{") {
		t.Fatalf("expected JSON output, got %q", out.String())
	}
}
