package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// logEntry is one line of the result log:
//
//	<RFC3339 time>\t<status>\t<file>\t<type or diagnostic count>
type logEntry struct {
	Time   string
	Status string
	File   string
	Detail string
}

func entryFor(r result, now time.Time) logEntry {
	e := logEntry{
		Time:   now.UTC().Format(time.RFC3339),
		Status: r.status(),
		File:   r.File,
	}
	switch {
	case r.Err != nil:
		e.Detail = r.Err.Error()
	case len(r.ParseErrs) > 0:
		e.Detail = fmt.Sprintf("%d syntax error(s)", len(r.ParseErrs))
	case len(r.TypeErrs) > 0:
		e.Detail = fmt.Sprintf("%d type error(s)", len(r.TypeErrs))
	default:
		e.Detail = r.Type.String()
	}
	return e
}

func (e logEntry) String() string {
	detail := strings.ReplaceAll(e.Detail, "\n", " ")
	return strings.Join([]string{e.Time, e.Status, e.File, detail}, "\t")
}

// appendResults appends one line per result to path.
// A file lock keeps lines from concurrent typelang processes whole.
func appendResults(path string, results []result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire log lock: %w", err)
	}
	defer lock.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	now := time.Now()
	for _, r := range results {
		if _, err := fmt.Fprintln(w, entryFor(r, now)); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
	}
	return w.Flush()
}

// readResults loads the log under a shared lock.
func readResults(path string) ([]logEntry, error) {
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("acquire log lock: %w", err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries := []logEntry{}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("malformed log line %q", line)
		}
		entries = append(entries, logEntry{Time: parts[0], Status: parts[1], File: parts[2], Detail: parts[3]})
	}
	return entries, nil
}

// summarize prints the latest entry for each logged file, in the order
// the files first appear, followed by totals.
func summarize(w io.Writer, entries []logEntry) {
	type fileRuns struct {
		last logEntry
		runs int
	}
	order := []string{}
	byFile := map[string]*fileRuns{}
	for _, e := range entries {
		r, ok := byFile[e.File]
		if !ok {
			r = &fileRuns{}
			byFile[e.File] = r
			order = append(order, e.File)
		}
		r.last = e
		r.runs++
	}

	failing := 0
	for _, file := range order {
		r := byFile[file]
		if r.last.Status != "ok" {
			failing++
		}
		fmt.Fprintf(w, "%s\t%s\t%s (%d run(s))\n", r.last.Status, file, r.last.Detail, r.runs)
	}
	fmt.Fprintf(w, "%d file(s), %d failing, %d run(s) logged\n", len(order), failing, len(entries))
}
