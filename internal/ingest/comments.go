package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// LoadComments reads comments from .txt files, one comment per non-blank
// line. Paths may be globs; "-" reads from stdin. Comments keep file order,
// then line order.
func LoadComments(paths []string) ([]string, error) {
	return loadComments(paths, os.Stdin)
}

func loadComments(paths []string, stdin io.Reader) ([]string, error) {
	var comments []string
	matched := 0
	for _, p := range paths {
		if p == Stdin {
			got, err := ReadComments(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			comments = append(comments, got...)
			matched++
			continue
		}
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				continue
			}
			got, err := readFile(m)
			if err != nil {
				return nil, err
			}
			comments = append(comments, got...)
			matched++
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("no .txt comment files found")
	}
	return comments, nil
}

// ReadComments returns the trimmed non-blank lines of r.
func ReadComments(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	comments, err := ReadComments(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return comments, nil
}
