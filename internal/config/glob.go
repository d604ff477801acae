package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stdin is the file argument that reads the export from standard input.
const Stdin = "-"

// ExpandGlobs turns export arguments into a sorted list of unique paths.
// Plain paths must exist, patterns must match at least one file, and Stdin
// is passed through unchanged.
func ExpandGlobs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no file patterns provided")
	}

	seen := make(map[string]struct{}, len(args))
	files := make([]string, 0, len(args))
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		switch {
		case arg == Stdin:
			add(arg)

		case strings.ContainsAny(arg, "*?["):
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no matches for pattern %q", arg)
			}
			for _, match := range matches {
				add(match)
			}

		default:
			if _, err := os.Stat(arg); err != nil {
				return nil, err
			}
			add(arg)
		}
	}

	sort.Strings(files)
	return files, nil
}
