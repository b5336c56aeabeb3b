package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

const (
	annotationUp        = "-- +goose Up"
	annotationDown      = "-- +goose Down"
	annotationStmtBegin = "-- +goose StatementBegin"
	annotationStmtEnd   = "-- +goose StatementEnd"
)

// ValidateDir checks every .sql file in dir for a well formed name, a unique
// version, both goose sections and balanced statement blocks. All problems are
// reported together.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	var problems []error
	seen := map[string]string{}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			problems = append(problems, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name))
			continue
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			problems = append(problems, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name))
		}
		seen[version] = name

		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			problems = append(problems, fmt.Errorf("read file %q: %w", name, err))
			continue
		}
		problems = append(problems, validateBody(name, string(body))...)
	}

	return errors.Join(problems...)
}

func validateBody(name, txt string) []error {
	var problems []error

	up := strings.Index(txt, annotationUp)
	down := strings.Index(txt, annotationDown)
	switch {
	case up < 0:
		problems = append(problems, fmt.Errorf("migration %q missing %q", name, annotationUp))
	case down < 0:
		problems = append(problems, fmt.Errorf("migration %q missing %q", name, annotationDown))
	case down < up:
		problems = append(problems, fmt.Errorf("migration %q has Down section before Up", name))
	}

	depth := 0
	for _, line := range strings.Split(txt, "\n") {
		switch strings.TrimSpace(line) {
		case annotationStmtBegin:
			depth++
			if depth > 1 {
				problems = append(problems, fmt.Errorf("migration %q nests StatementBegin", name))
			}
		case annotationStmtEnd:
			depth--
			if depth < 0 {
				problems = append(problems, fmt.Errorf("migration %q has StatementEnd without StatementBegin", name))
				depth = 0
			}
		}
	}
	if depth != 0 {
		problems = append(problems, fmt.Errorf("migration %q has an unterminated StatementBegin", name))
	}
	return problems
}
