package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// PlatformFormatWriter wraps an io.Writer and converts zerolog JSON output
// into the bracketed text layout used by the platform monitor logs.
//
// Output format:
//
//	[2026-08-23 12:00:00.000] {fan-monitor} WARNING - Alarm for FAN-1 fault is detected fan=1
//	[2026-08-23 12:00:03.000] {thermal} ERROR - unable to open device node path=/sys/...
type PlatformFormatWriter struct {
	w io.Writer
}

// NewPlatformFormatWriter creates a PlatformFormatWriter that wraps the given writer.
func NewPlatformFormatWriter(w io.Writer) *PlatformFormatWriter {
	return &PlatformFormatWriter{w: w}
}

var levelMap = map[string]string{
	"trace": "TRACE",
	"debug": "DEBUG",
	"info":  "INFO",
	"warn":  "WARNING",
	"error": "ERROR",
	"fatal": "FATAL",
	"panic": "PANIC",
}

func (f *PlatformFormatWriter) Write(p []byte) (int, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(p, &fields); err != nil {
		// Not valid JSON, pass through as-is.
		return f.w.Write(p)
	}

	timestamp := extractString(fields, "time")
	level := extractString(fields, "level")
	component := extractString(fields, "component")
	message := extractString(fields, "message")

	// Remove known fields so the rest can be appended as key=value.
	delete(fields, "time")
	delete(fields, "level")
	delete(fields, "component")
	delete(fields, "message")
	delete(fields, "caller")

	ts := formatTimestamp(timestamp)

	lvl := levelMap[level]
	if lvl == "" {
		lvl = strings.ToUpper(level)
	}

	if component == "" {
		component = "-"
	}

	extra := formatExtra(fields)

	var line string
	if extra != "" {
		line = fmt.Sprintf("[%s] {%s} %s - %s %s\n", ts, component, lvl, message, extra)
	} else {
		line = fmt.Sprintf("[%s] {%s} %s - %s\n", ts, component, lvl, message)
	}

	_, err := f.w.Write([]byte(line))
	// Return the original length to satisfy zerolog's expectation.
	return len(p), err
}

func extractString(fields map[string]interface{}, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// formatTimestamp converts an RFC3339 timestamp to "2006-01-02 15:04:05.000".
func formatTimestamp(ts string) string {
	if len(ts) == 0 {
		return strings.Repeat(" ", 23)
	}

	result := strings.Replace(ts, "T", " ", 1)

	// Strip timezone suffix (Z, +09:00, -05:00, etc.)
	if len(result) > 11 {
		if idx := strings.IndexAny(result[11:], "Z+-"); idx >= 0 {
			result = result[:11+idx]
		}
	}

	// Normalize fractional seconds to exactly three digits.
	dotIdx := strings.LastIndex(result, ".")
	if dotIdx == -1 {
		result += ".000"
	} else {
		frac := result[dotIdx+1:]
		switch {
		case len(frac) > 3:
			result = result[:dotIdx+4]
		case len(frac) < 3:
			result += strings.Repeat("0", 3-len(frac))
		}
	}

	if len(result) < 23 {
		result += strings.Repeat(" ", 23-len(result))
	} else if len(result) > 23 {
		result = result[:23]
	}

	return result
}

// formatExtra builds a "key=value key2=value2" string from remaining fields.
func formatExtra(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		s := fmt.Sprintf("%v", fields[k])
		if strings.ContainsAny(s, " \t\n\"") {
			parts = append(parts, fmt.Sprintf("%s=%q", k, s))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", k, s))
		}
	}

	return strings.Join(parts, " ")
}
