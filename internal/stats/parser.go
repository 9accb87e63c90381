package stats

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

var (
	entryLine = regexp.MustCompile(`^new\s+entry\s+"([^"]+)"\s*$`)
	usingLine = regexp.MustCompile(`using\s+"([^"]+)"\s*$`)
	typeLine  = regexp.MustCompile(`type\s+"([^"]+)"\s*$`)
	dataLine  = regexp.MustCompile(`data\s+"([^"]+)"\s+"([^"]+)"\s*$`)
)

// Parse reads every entry of a stat file. Lines before the first entry and
// lines that match no directive are ignored. Data values are split on
// semicolons regardless of key.
func Parse(r io.Reader) ([]*Entry, error) {
	var (
		entries []*Entry
		current *Entry
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if m := entryLine.FindStringSubmatch(line); m != nil {
			current = NewEntry(m[1], "")
			entries = append(entries, current)
			continue
		}
		if current == nil {
			continue
		}

		if m := dataLine.FindStringSubmatch(line); m != nil {
			current.Add(m[1], strings.Split(m[2], ";")...)
			continue
		}
		if m := usingLine.FindStringSubmatch(line); m != nil {
			current.Using = m[1]
			continue
		}
		if m := typeLine.FindStringSubmatch(line); m != nil {
			current.Type = m[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read stat file")
	}

	return entries, nil
}
