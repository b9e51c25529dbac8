// Package limiter selects the window of rows a grid is measured and
// previewed with.
package limiter

import (
	"fmt"
)

// Config holds the row-window parameters.
type Config struct {
	Limit  int // Keep only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Keep only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the half-open range [start, end) of a sequence of length n
// that the window keeps.
func (c Config) Bounds(n int) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	if c.Tail > 0 {
		return max(n-c.Tail, 0), n
	}

	start := min(max(c.Offset, 0), n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns the rows inside the window. The result shares the backing
// array of rows.
func Apply[T any](c Config, rows []T) []T {
	if !c.IsActive() {
		return rows
	}
	start, end := c.Bounds(len(rows))
	return rows[start:end]
}

// Describe summarizes the window for status lines, e.g. "rows 3-7 of 20".
// It returns "" when the window keeps every row.
func (c Config) Describe(n int) string {
	start, end := c.Bounds(n)
	if start == 0 && end == n {
		return ""
	}
	if start == end {
		return fmt.Sprintf("no rows of %d", n)
	}
	return fmt.Sprintf("rows %d-%d of %d", start+1, end, n)
}
