// Package sysfs provides scoped single-read access to kernel-exposed
// virtual filesystem nodes. Every helper opens, reads once, and releases
// the handle on all paths.
package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadLine reads the first line of the given node and trims surrounding
// whitespace. An empty node is an error: the kernel always exposes at
// least one character for a valid attribute.
func ReadLine(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to open file: %w", err)
	}

	line := string(data)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)

	if line == "" {
		return "", fmt.Errorf("empty content in %s", path)
	}
	return line, nil
}

// ReadInt reads the node as a single decimal integer.
func ReadInt(path string) (int, error) {
	line, err := ReadLine(path)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("malformed content %q in %s: %w", line, path, err)
	}
	return val, nil
}

// ResolveGlob expands a path pattern containing a wildcard segment
// (typically the kernel-assigned hwmon directory) and returns the first
// match. No match is an error.
func ResolveGlob(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad device path pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no device node matches %q", pattern)
	}
	return matches[0], nil
}
