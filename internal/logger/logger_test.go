package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

const escape = "\033["

func TestJSONRecord(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	JSON(&buf, slog.LevelInfo).With("run_id", "r1").Info("conversion complete", "artifact", "m.q8.bin")

	out := buf.String()
	for _, want := range []string{`"msg":"conversion complete"`, `"run_id":"r1"`, `"artifact":"m.q8.bin"`, `"level":"INFO"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "text", "plain"} {
		var buf bytes.Buffer
		log := ForFormat(&buf, format, slog.LevelWarn)
		log.Debug("conversion requested")
		log.Info("conversion complete")
		if buf.Len() > 0 {
			t.Fatalf("%s: expected nothing below warn, got %q", format, buf.String())
		}
		log.Warn("ignoring config file")
		if !strings.Contains(buf.String(), "ignoring config file") {
			t.Fatalf("%s: warn record missing, got %q", format, buf.String())
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), Plain(&buf, slog.LevelInfo))

	FromContext(ctx).Info("via context")
	if !strings.Contains(buf.String(), "via context") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without a logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPlainLine(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	Plain(&buf, slog.LevelInfo).Warn("converter finished", "tool", "llama-quantize", "src", "my model.bin")

	out := buf.String()
	if strings.Contains(out, escape) {
		t.Fatalf("plain output must not contain ANSI escapes: %q", out)
	}
	if !strings.Contains(out, `WARN  converter finished tool=llama-quantize src="my model.bin"`) {
		t.Fatalf("unexpected plain output: %q", out)
	}
}

func TestPrettyDuration(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	Plain(&buf, slog.LevelInfo).Info("done", "elapsed", 1500*time.Millisecond)

	if !strings.Contains(buf.String(), "elapsed=1.5s") {
		t.Fatalf("expected formatted duration, got: %s", buf.String())
	}
}

func TestPrettyGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	h.noColor = true

	if h.WithGroup("") != slog.Handler(h) {
		t.Fatal("WithGroup(\"\") should return the same handler")
	}
	slog.New(h.WithGroup("tool").WithGroup("exec")).Info("started", "pid", 42)
	if !strings.Contains(buf.String(), "tool.exec.pid=42") {
		t.Fatalf("expected nested group prefix, got %q", buf.String())
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		check  func(string) bool
	}{
		{"json", func(s string) bool { return strings.Contains(s, `"msg":"hello"`) }},
		{"text", func(s string) bool { return strings.Contains(s, "msg=hello") }},
		{"plain", func(s string) bool { return strings.Contains(s, "INFO  hello") && !strings.Contains(s, escape) }},
		{"pretty", func(s string) bool { return strings.Contains(s, "hello") && strings.Contains(s, escape) }},
		{"bogus", func(s string) bool { return strings.Contains(s, "hello") && strings.Contains(s, escape) }},
	}

	t.Setenv("NO_COLOR", "")
	for _, tc := range tests {
		var buf bytes.Buffer
		ForFormat(&buf, tc.format, slog.LevelInfo).Info("hello")
		if !tc.check(buf.String()) {
			t.Errorf("ForFormat(%q): unexpected output %q", tc.format, buf.String())
		}
	}
}

func TestForFormatHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	ForFormat(&buf, "pretty", slog.LevelInfo).Info("hello")
	if strings.Contains(buf.String(), escape) {
		t.Fatalf("NO_COLOR set but output is colored: %q", buf.String())
	}
}

func TestWithAttrsDoesNotLeak(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	base := Plain(&buf, slog.LevelInfo)
	base.With("run_id", "abc").Info("child")
	base.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "run_id=abc") {
		t.Fatalf("child attrs missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "run_id") {
		t.Fatalf("child attrs leaked into parent: %q", lines[1])
	}
}
