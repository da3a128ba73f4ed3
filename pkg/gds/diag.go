package gds

import "fmt"

// Diagnostics collects recoverable conditions encountered while encoding
// or decoding a stream. Each distinct condition is recorded once, so a
// file with thousands of oversized polygons produces a single warning.
// Fatal conditions are returned as errors, never collected here.
type Diagnostics struct {
	warnings []string
	seen     map[string]bool
}

// Warnf records a warning. Duplicate messages are dropped.
func (d *Diagnostics) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[msg] {
		return
	}
	d.seen[msg] = true
	d.warnings = append(d.warnings, msg)
}

// Warnings returns the collected warnings in the order they occurred.
func (d *Diagnostics) Warnings() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.warnings...)
}

// Len returns the number of collected warnings.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.warnings)
}
