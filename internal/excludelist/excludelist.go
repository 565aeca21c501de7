// Package excludelist implements the append-only processed-file ledger: a
// newline-delimited text file under the output directory recording every
// input path that has already been transcoded successfully, so the
// filter chain (run by the Watcher and by the initial directory scan)
// rejects it instead of scheduling it again.
package excludelist

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const filename = "exclude.list"

// List wraps the exclude.list file under a given output directory. Reads
// tolerate a missing file (treated as empty). Writes are serialized by a
// mutex as cheap insurance for any caller that isn't already serialized by
// the scheduler's single-flight property (e.g. a concurrent test).
type List struct {
	mu        sync.Mutex
	outputDir string
}

// New returns a List rooted at outputDir.
func New(outputDir string) *List {
	return &List{outputDir: outputDir}
}

func (l *List) path() string {
	return filepath.Join(l.outputDir, filename)
}

// Contains reports whether rel (a path relative to the input root) already
// appears as a line in exclude.list. A missing file passes (reports
// false), matching ExcludeListFilter's semantics.
func (l *List) Contains(rel string) (bool, error) {
	f, err := os.Open(l.path())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if scanner.Text() == rel {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// Append writes rel as a new line in exclude.list, creating the output
// directory and file if needed. Called exactly once per successful
// transcode.
func (l *List) Append(rel string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.outputDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(strings.TrimRight(rel, "\n") + "\n")
	return err
}
