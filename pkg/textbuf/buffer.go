// Package textbuf provides a line-oriented text buffer for editing the
// card-style input and output files used by the simulation toolchain.
// All indices are zero-based; range operations are endpoint inclusive,
// matching the file formats' blank-line-terminated block structure.
package textbuf

import (
	"fmt"
	"os"
	"strings"
)

// Buffer holds the lines of a text file along with its origin path.
type Buffer struct {
	path  string
	lines []string
}

// Load reads a file into a Buffer. A missing path is a hard failure.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("textbuf: failed to read %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// Trailing newline produces one empty trailing element; drop it so
	// Save round-trips byte-identically.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &Buffer{path: path, lines: lines}, nil
}

// FromLines builds a Buffer from in-memory lines. The slice is copied.
func FromLines(lines []string) *Buffer {
	out := make([]string, len(lines))
	copy(out, lines)
	return &Buffer{lines: out}
}

// Path returns the path the buffer was loaded from, if any.
func (b *Buffer) Path() string { return b.path }

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Line returns the line at index i.
func (b *Buffer) Line(i int) string { return b.lines[i] }

// Range returns lines i0 through i1 inclusive.
func (b *Buffer) Range(i0, i1 int) []string {
	out := make([]string, 0, i1-i0+1)
	out = append(out, b.lines[i0:i1+1]...)
	return out
}

// All returns a copy of every line.
func (b *Buffer) All() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Search controls how Find and FindAll match lines.
type Search struct {
	// Exact requires the whole line to equal the query instead of
	// merely containing it.
	Exact bool
	// IgnoreCase folds case on both sides before comparing.
	IgnoreCase bool
	// Start is the first index considered.
	Start int
	// End bounds the search window (exclusive). Zero means end of buffer.
	End int
	// Max stops the search after this many matches. Zero means unlimited.
	Max int
}

func (s Search) matches(line, text string) bool {
	if s.IgnoreCase {
		line = strings.ToLower(line)
		text = strings.ToLower(text)
	}
	if s.Exact {
		return line == text
	}
	return strings.Contains(line, text)
}

// FindAll returns the indices of every line matching text within the
// search window, in order.
func (b *Buffer) FindAll(text string, opt Search) []int {
	end := opt.End
	if end <= 0 || end > len(b.lines) {
		end = len(b.lines)
	}
	start := opt.Start
	if start < 0 {
		start = 0
	}
	var indices []int
	for i := start; i < end; i++ {
		if opt.matches(b.lines[i], text) {
			indices = append(indices, i)
			if opt.Max > 0 && len(indices) == opt.Max {
				break
			}
		}
	}
	return indices
}

// Find returns the index of the first match, or -1 if absent.
func (b *Buffer) Find(text string, opt Search) int {
	return b.FindNth(text, 1, opt)
}

// FindNth returns the index of the nth match (1-based), or -1 if there
// are fewer than n matches.
func (b *Buffer) FindNth(text string, n int, opt Search) int {
	opt.Max = n
	indices := b.FindAll(text, opt)
	if len(indices) < n {
		return -1
	}
	return indices[n-1]
}

// FindNext returns the first match strictly after index i, or -1.
func (b *Buffer) FindNext(i int, text string, opt Search) int {
	opt.Start = i + 1
	return b.Find(text, opt)
}

// Insert places the given lines before index i.
func (b *Buffer) Insert(i int, lines ...string) {
	b.lines = append(b.lines[:i], append(append([]string{}, lines...), b.lines[i:]...)...)
}

// InsertAfter places the given lines after index i.
func (b *Buffer) InsertAfter(i int, lines ...string) {
	b.Insert(i+1, lines...)
}

// Remove deletes the line at index i.
func (b *Buffer) Remove(i int) {
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
}

// RemoveRange deletes lines i0 through i1 inclusive.
func (b *Buffer) RemoveRange(i0, i1 int) {
	if i1 >= len(b.lines) {
		i1 = len(b.lines) - 1
	}
	b.lines = append(b.lines[:i0], b.lines[i1+1:]...)
}

// Replace substitutes lines i0 through i1 inclusive with the given lines.
func (b *Buffer) Replace(i0, i1 int, lines ...string) {
	b.RemoveRange(i0, i1)
	b.Insert(i0, lines...)
}

// ReplaceLine substitutes a single line.
func (b *Buffer) ReplaceLine(i int, line string) {
	b.lines[i] = line
}

// Save writes the buffer to path, or back to its origin when path is empty.
func (b *Buffer) Save(path string) error {
	if path == "" {
		path = b.path
	}
	if path == "" {
		return fmt.Errorf("textbuf: no save path available")
	}
	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("textbuf: failed to write %s: %w", path, err)
	}
	return nil
}
