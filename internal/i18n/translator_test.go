package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLanguages(t *testing.T) {
	ru := New("ru")
	if msg := ru.Message(KeyBack, nil); msg != "« Назад" {
		t.Fatalf("ru back = %q", msg)
	}
	en := New("de")
	if msg := en.Message(KeyBack, nil); msg != "« Back" {
		t.Fatalf("unknown language should fall back to en, got %q", msg)
	}
	if msg := en.Message("no-such-key", nil); msg != "no-such-key" {
		t.Fatalf("missing key = %q, want the key itself", msg)
	}
}

func TestMessageArgs(t *testing.T) {
	tr := New("en")
	got := tr.Message(KeyQuestionDefault, map[string]string{"description": "age"})
	if got != "Enter age:" {
		t.Fatalf("Message = %q", got)
	}
}

func TestLoadOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := "back: \"<- Back\"\ncustom: \"Hello {name}\"\n"
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	tr, err := Load(dir, "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if msg := tr.Message(KeyBack, nil); msg != "<- Back" {
		t.Errorf("override = %q", msg)
	}
	if msg := tr.Message("custom", map[string]string{"name": "Bob"}); msg != "Hello Bob" {
		t.Errorf("custom = %q", msg)
	}
	if msg := tr.Message(KeyDelete, nil); msg != "Delete" {
		t.Errorf("builtin lost after load: %q", msg)
	}

	missing, err := Load(dir, "ru")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if msg := missing.Message(KeyBack, nil); msg != "« Назад" {
		t.Errorf("ru without file = %q", msg)
	}
}
