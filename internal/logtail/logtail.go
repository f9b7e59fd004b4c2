package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Entry is one diagnostic log line split into its slog text fields.
type Entry struct {
	Time    string
	Level   string
	Message string
	Attrs   string // remaining key=value pairs, verbatim
	Raw     string
}

// Read returns at most maxLines entries from the end of the log at path.
// A missing file yields no entries.
func Read(path string, maxLines int) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	entries := make([]Entry, count)
	start := 0
	if count == maxLines {
		start = idx
	}
	for i := 0; i < count; i++ {
		entries[i] = Parse(ring[(start+i)%maxLines])
	}
	return entries, nil
}

// Parse splits a slog text line. Lines that are not in that format come back
// with only Raw and Message set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	rest := line
	var attrs []string
	for rest != "" {
		key, value, remaining, ok := nextPair(rest)
		if !ok {
			entry.Message = line
			entry.Time, entry.Level, entry.Attrs = "", "", ""
			return entry
		}
		switch key {
		case "time":
			entry.Time = value
		case "level":
			entry.Level = value
		case "msg":
			entry.Message = value
		default:
			attrs = append(attrs, rest[:len(rest)-len(remaining)])
		}
		rest = strings.TrimLeft(remaining, " ")
	}
	entry.Attrs = strings.TrimSpace(strings.Join(attrs, " "))
	return entry
}

func nextPair(s string) (key, value, rest string, ok bool) {
	eq := strings.IndexByte(s, '=')
	if eq <= 0 || strings.ContainsAny(s[:eq], " \"") {
		return "", "", "", false
	}
	key = s[:eq]
	s = s[eq+1:]
	if strings.HasPrefix(s, `"`) {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", "", false
		}
		unquoted, err := strconv.Unquote(quoted)
		if err != nil {
			return "", "", "", false
		}
		return key, unquoted, s[len(quoted):], true
	}
	end := strings.IndexByte(s, ' ')
	if end < 0 {
		return key, s, "", true
	}
	return key, s[:end], s[end:], true
}
