package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPromptTemplate_DefaultWhenUnset(t *testing.T) {
	template, err := LoadPromptTemplate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if template != DefaultPromptTemplate {
		t.Error("empty path should select the built-in template")
	}
}

func TestLoadPromptTemplate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.yaml")
	content := "template: |\n  Context: {context}\n  Question: {question}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	template, err := LoadPromptTemplate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(template, "{context}") || !strings.Contains(template, "{question}") {
		t.Errorf("loaded template lost its slots:\n%s", template)
	}
}

func TestLoadPromptTemplate_MissingFile(t *testing.T) {
	if _, err := LoadPromptTemplate("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadPromptTemplate_EmptyTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.yaml")
	if err := os.WriteFile(path, []byte("template: \"\"\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadPromptTemplate(path); err == nil {
		t.Fatal("expected error for empty template")
	}
}
