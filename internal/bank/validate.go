package bank

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on the bank.
// Returns a combined error describing all problems found, or nil if valid.
func (b *Bank) Validate() error {
	var errs []string

	if strings.TrimSpace(b.ID) == "" {
		errs = append(errs, "bank ID is empty")
	}

	if b.GroupSize <= 0 {
		errs = append(errs, fmt.Sprintf("GroupSize must be > 0, got %d", b.GroupSize))
	}

	if len(b.Categories) == 0 {
		errs = append(errs, "bank has no categories")
	}

	// Check scale
	if b.Scale.Min < 1 || b.Scale.Min >= b.Scale.Max {
		errs = append(errs, fmt.Sprintf("scale must satisfy 1 <= min < max, got [%d,%d]", b.Scale.Min, b.Scale.Max))
	}
	if !b.Scale.Contains(b.Scale.Default) {
		errs = append(errs, fmt.Sprintf("scale default %d outside [%d,%d]", b.Scale.Default, b.Scale.Min, b.Scale.Max))
	}

	// Check labels
	seen := make(map[string]bool, len(b.Categories))
	for _, c := range b.Categories {
		label := strings.TrimSpace(c.Label)
		if label == "" {
			errs = append(errs, fmt.Sprintf("category %d has an empty label", c.Index))
			continue
		}
		if seen[label] {
			errs = append(errs, fmt.Sprintf("duplicate category label: %q", label))
		}
		seen[label] = true
	}

	for _, q := range b.Questions {
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d has empty text", q.Index))
		}
	}

	// N = C * GroupSize, and every category gets exactly GroupSize questions.
	if b.GroupSize > 0 && len(b.Categories) > 0 {
		want := len(b.Categories) * b.GroupSize
		if len(b.Questions) != want {
			errs = append(errs, fmt.Sprintf("bank has %d questions, want %d (%d categories x %d)",
				len(b.Questions), want, len(b.Categories), b.GroupSize))
		}

		counts := make([]int, len(b.Categories))
		for i, cat := range b.assignment {
			if cat < 0 || cat >= len(b.Categories) {
				errs = append(errs, fmt.Sprintf("question %d maps to nonexistent category %d", i, cat))
				continue
			}
			counts[cat]++
		}
		for c, n := range counts {
			if n != b.GroupSize {
				errs = append(errs, fmt.Sprintf("category %d has %d questions, want %d", c, n, b.GroupSize))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
