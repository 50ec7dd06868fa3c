package bank

import (
	"fmt"
)

// DefaultGroupSize is the number of statements per category in the
// reference bank.
const DefaultGroupSize = 5

// Scale describes the Likert range a bank is answered on.
type Scale struct {
	Min     int `json:"min" yaml:"min"`
	Max     int `json:"max" yaml:"max"`
	Default int `json:"default" yaml:"default"`
}

// DefaultScale returns the 1..5 scale with a neutral default of 3.
func DefaultScale() Scale {
	return Scale{Min: 1, Max: 5, Default: 3}
}

// Contains reports whether v is a legal answer on this scale.
func (s Scale) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Category is one trait dimension being measured.
type Category struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	// Blurb is shown on the highlight card when the category ranks at the top.
	Blurb string `json:"blurb,omitempty"`
}

// Question is a single Likert statement.
type Question struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Category int    `json:"category"`
}

// Bank is an immutable question bank with its category table.
type Bank struct {
	ID         string
	Title      string
	Scale      Scale
	GroupSize  int
	Categories []Category
	Questions  []Question

	// Closing is the line shown under the report.
	Closing string

	// assignment maps question index to category index. Built once in build().
	assignment []int
}

// Spec is the declarative form of a bank, as read from a bank file or
// written inline for the built-in bank.
type Spec struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	GroupSize  int      `json:"group_size" yaml:"group_size"`
	Scale      *Scale   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Blurb      string   `json:"blurb,omitempty" yaml:"blurb,omitempty"`
	Closing    string   `json:"closing,omitempty" yaml:"closing,omitempty"`
	Categories []string `json:"categories" yaml:"categories"`
	Statements []string `json:"statements" yaml:"statements"`
}

// New builds and validates a bank with the default scale. Statement i is
// assigned to category i / groupSize.
func New(id, title string, groupSize int, labels, statements []string) (*Bank, error) {
	return FromSpec(Spec{
		ID:         id,
		Title:      title,
		GroupSize:  groupSize,
		Categories: labels,
		Statements: statements,
	})
}

// FromSpec builds and validates a bank from its declarative form.
func FromSpec(spec Spec) (*Bank, error) {
	b := build(spec)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// build materializes questions, categories and the assignment table without
// validating. Questions past the last full group get an out-of-range
// category so Validate can report them.
func build(spec Spec) *Bank {
	scale := DefaultScale()
	if spec.Scale != nil {
		scale = *spec.Scale
	}

	b := &Bank{
		ID:         spec.ID,
		Title:      spec.Title,
		Scale:      scale,
		GroupSize:  spec.GroupSize,
		Closing:    spec.Closing,
		Categories: make([]Category, len(spec.Categories)),
		Questions:  make([]Question, len(spec.Statements)),
		assignment: make([]int, len(spec.Statements)),
	}

	for i, label := range spec.Categories {
		b.Categories[i] = Category{Index: i, Label: label, Blurb: spec.Blurb}
	}

	for i, text := range spec.Statements {
		cat := -1
		if spec.GroupSize > 0 {
			cat = i / spec.GroupSize
		}
		b.assignment[i] = cat
		b.Questions[i] = Question{Index: i, Text: text, Category: cat}
	}

	return b
}

// Len returns the number of questions (N).
func (b *Bank) Len() int {
	return len(b.Questions)
}

// NumCategories returns the number of categories (C).
func (b *Bank) NumCategories() int {
	return len(b.Categories)
}

// CategoryOf returns the category index of question i.
func (b *Bank) CategoryOf(i int) int {
	return b.assignment[i]
}

// Assignment returns a copy of the question-to-category table.
func (b *Bank) Assignment() []int {
	out := make([]int, len(b.assignment))
	copy(out, b.assignment)
	return out
}

// Category returns the category at index c.
func (b *Bank) Category(c int) (Category, error) {
	if c < 0 || c >= len(b.Categories) {
		return Category{}, fmt.Errorf("category %d out of range [0,%d)", c, len(b.Categories))
	}
	return b.Categories[c], nil
}

// QuestionsIn returns the questions of category c in bank order.
func (b *Bank) QuestionsIn(c int) []Question {
	var out []Question
	for i, cat := range b.assignment {
		if cat == c {
			out = append(out, b.Questions[i])
		}
	}
	return out
}

// Labels returns category labels in index order.
func (b *Bank) Labels() []string {
	out := make([]string, len(b.Categories))
	for i, c := range b.Categories {
		out[i] = c.Label
	}
	return out
}

// DefaultResponses returns a fresh response vector filled with the scale's
// neutral default.
func (b *Bank) DefaultResponses() []int {
	out := make([]int, len(b.Questions))
	for i := range out {
		out[i] = b.Scale.Default
	}
	return out
}
