package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)
	l.Debug("too quiet")
	l.Info("still too quiet")
	l.Warn("audible")
	l.Error("also audible")

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("debug/info should have been filtered: %q", out)
	}
	if !strings.Contains(out, "[WARN] audible") {
		t.Errorf("expected WARN line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] also audible") {
		t.Errorf("expected ERROR line, got %q", out)
	}
}

func TestFromVerbosity(t *testing.T) {
	cases := []struct {
		count int
		want  Level
	}{
		{0, WarnLevel},
		{1, InfoLevel},
		{2, DebugLevel},
		{5, DebugLevel},
	}
	for _, c := range cases {
		if got := FromVerbosity(c.count); got != c.want {
			t.Errorf("FromVerbosity(%d) = %v, want %v", c.count, got, c.want)
		}
	}
}

func TestDebugfFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	l.Debugf("id=%d name=%s", 7, "FileContentStream")
	if !strings.Contains(buf.String(), "id=7 name=FileContentStream") {
		t.Errorf("got %q", buf.String())
	}
}
