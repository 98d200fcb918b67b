package sysfs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNode(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writeNode: %v", err)
	}
	return path
}

func TestReadLine_TrimsTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := writeNode(t, dir, "fan1_fault", "1\n")

	line, err := ReadLine(path)
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "1" {
		t.Errorf("ReadLine = %q, want %q", line, "1")
	}
}

func TestReadLine_FirstLineOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeNode(t, dir, "node", "42\ngarbage on second line\n")

	line, err := ReadLine(path)
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "42" {
		t.Errorf("ReadLine = %q, want %q", line, "42")
	}
}

func TestReadLine_EmptyContent(t *testing.T) {
	dir := t.TempDir()
	path := writeNode(t, dir, "node", "\n")

	if _, err := ReadLine(path); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestReadLine_MissingFile(t *testing.T) {
	if _, err := ReadLine(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadInt(t *testing.T) {
	dir := t.TempDir()

	path := writeNode(t, dir, "temp1_input", "38000\n")
	val, err := ReadInt(path)
	if err != nil {
		t.Fatalf("ReadInt failed: %v", err)
	}
	if val != 38000 {
		t.Errorf("ReadInt = %d, want 38000", val)
	}

	bad := writeNode(t, dir, "temp2_input", "not-a-number\n")
	if _, err := ReadInt(bad); err == nil {
		t.Error("expected error for malformed content")
	}
}

func TestResolveGlob(t *testing.T) {
	dir := t.TempDir()
	hwmon := filepath.Join(dir, "hwmon", "hwmon3")
	if err := os.MkdirAll(hwmon, 0755); err != nil {
		t.Fatal(err)
	}
	writeNode(t, hwmon, "temp1_input", "31000\n")

	path, err := ResolveGlob(filepath.Join(dir, "hwmon", "hwmon*", "temp1_input"))
	if err != nil {
		t.Fatalf("ResolveGlob failed: %v", err)
	}
	if filepath.Base(filepath.Dir(path)) != "hwmon3" {
		t.Errorf("resolved unexpected path: %s", path)
	}

	if _, err := ResolveGlob(filepath.Join(dir, "hwmon", "hwmon*", "temp9_input")); err == nil {
		t.Error("expected error for no match")
	}
}
