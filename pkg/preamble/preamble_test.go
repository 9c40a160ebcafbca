// Tests for preamble profile parsing and lookup.
package preamble

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// TestParseFile verifies front matter and body extraction.
func TestParseFile(t *testing.T) {
	path := writeProfile(t, t.TempDir(), `---
name: regex
description: Regular expressions
---
Write a regular expression
that matches
`)

	p, err := parseFile(path)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if p.Name != "regex" || p.Description != "Regular expressions" {
		t.Fatalf("unexpected metadata: %+v", p)
	}
	if p.Text != "Write a regular expression that matches" {
		t.Fatalf("unexpected text: %q", p.Text)
	}
	if p.Path != path {
		t.Fatalf("expected path %q, got %q", path, p.Path)
	}
}

func TestParseFileRejectsMissingFrontMatter(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "just text\nmore\nlines\n")
	if _, err := parseFile(path); err == nil {
		t.Fatal("expected error for missing front matter")
	}
}

func TestParseFileRejectsEmptyBody(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "---\nname: blank\n---\n\n")
	if _, err := parseFile(path); err == nil {
		t.Fatal("expected error for empty body")
	}
}

// TestLoadFromDirsSorted ensures deterministic ordering.
func TestLoadFromDirsSorted(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, filepath.Join(dir, "b"), "---\nname: beta\n---\nsecond\n")
	writeProfile(t, filepath.Join(dir, "a"), "---\nname: Alpha\n---\nfirst\n")

	profiles, err := LoadFromDirs([]string{dir, " "})
	if err != nil {
		t.Fatalf("LoadFromDirs: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "Alpha" || profiles[1].Name != "beta" {
		t.Fatalf("expected sorted [Alpha beta], got [%s %s]", profiles[0].Name, profiles[1].Name)
	}
}

func TestResolve(t *testing.T) {
	custom := []*Profile{{Name: "sql", Text: "custom sql"}}

	text, err := Resolve("SQL", custom)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if text != "custom sql" {
		t.Fatalf("expected loaded profile to shadow builtin, got %q", text)
	}

	text, err = Resolve("rust-qa", nil)
	if err != nil {
		t.Fatalf("Resolve builtin: %v", err)
	}
	if text == "" {
		t.Fatal("expected builtin text")
	}

	if _, err := Resolve("missing", nil); err == nil {
		t.Fatal("expected error for unknown preamble")
	}
}
