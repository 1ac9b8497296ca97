package params

import (
	"fmt"
	"strings"

	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
)

// Rename maps one state key to another
type Rename struct {
	From string
	To   string
}

// RenameRule is the ordered list of renames encoded in rename_keys
type RenameRule []Rename

// ParseRenameRule parses "old:new;old2:new2". Order is preserved.
func ParseRenameRule(s string) (RenameRule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty rule", errs.ErrInvalidRenameRule)
	}

	var rule RenameRule
	for i, pair := range strings.Split(s, ";") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: pair %d (%q) must be old:new", errs.ErrInvalidRenameRule, i, pair)
		}

		from, to := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: pair %d (%q) has an empty key", errs.ErrInvalidRenameRule, i, pair)
		}

		rule = append(rule, Rename{From: from, To: to})
	}

	return rule, nil
}

// String encodes the rule back into rename_keys form
func (r RenameRule) String() string {
	pairs := make([]string, 0, len(r))
	for _, rename := range r {
		pairs = append(pairs, rename.From+":"+rename.To)
	}
	return strings.Join(pairs, ";")
}
