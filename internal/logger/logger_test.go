package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithOutputWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docbot.log")
	log, err := NewWithOutput("prod", path)
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}
	log.With("session", "1:2").Info("document generated", "template", "invoice")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"msg":"document generated"`, `"template":"invoice"`, `"session":"1:2"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log output %q lacks %s", data, want)
		}
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("ignored", "k", 1)
	log.With("a", "b").Error("ignored")
}
