package classify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leakwatch/leakage-engine/internal/models"
)

// Classifier maps raw column headers to semantic roles using per-role keyword
// tables. Classification is a pure string computation: it never fails and
// roles with no matching column simply come back empty.
type Classifier struct {
	keywords map[models.Role][]string
}

// keywordPack is the YAML shape of an externally editable keyword table.
type keywordPack struct {
	Roles map[string][]string `yaml:"roles"`
}

// Default returns a classifier using the built-in keyword tables.
func Default() *Classifier {
	keywords := make(map[models.Role][]string, len(defaultKeywords))
	for role, words := range defaultKeywords {
		keywords[role] = append([]string(nil), words...)
	}
	return &Classifier{keywords: keywords}
}

// Load reads a keyword pack from a YAML file. An empty path, or a missing
// file, falls back to the built-in tables so deployments without a pack keep
// working. Roles absent from the pack also keep their defaults.
func Load(path string) (*Classifier, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read keyword pack: %w", err)
	}
	var pack keywordPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse keyword pack: %w", err)
	}
	for name, words := range pack.Roles {
		role := models.Role(strings.ToLower(name))
		if len(words) == 0 {
			continue
		}
		normalized := make([]string, 0, len(words))
		for _, w := range words {
			if w = Normalize(w); w != "" {
				normalized = append(normalized, w)
			}
		}
		c.keywords[role] = normalized
	}
	return c, nil
}

// Keywords exposes the active table for one role, mainly for diagnostics.
func (c *Classifier) Keywords(role models.Role) []string {
	return append([]string(nil), c.keywords[role]...)
}

// Classify assigns every column name to each role whose keyword table it
// matches. Columns keep their input order within each role, and a column may
// satisfy several roles at once.
func (c *Classifier) Classify(columns []string) models.ColumnRoles {
	roles := make(models.ColumnRoles, len(models.Roles))
	for _, role := range models.Roles {
		var matched []string
		for _, col := range columns {
			if matchesAny(Normalize(col), c.keywords[role]) {
				matched = append(matched, col)
			}
		}
		roles[role] = matched
	}
	return roles
}

// Normalize lower-cases a header and folds underscores and hyphens to spaces
// so keyword matching sees "Total_Amount" and "total amount" identically.
func Normalize(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	lower = strings.ReplaceAll(lower, "_", " ")
	lower = strings.ReplaceAll(lower, "-", " ")
	return lower
}

// matchesAny applies the two-way substring rule: a keyword inside the header
// catches composites ("net revenue usd"), the header inside a keyword catches
// abbreviations ("qty" against "quantity" is handled by its own keyword, but
// "disc" matches inside "discount").
func matchesAny(normalized string, keywords []string) bool {
	if normalized == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) || strings.Contains(keyword, normalized) {
			return true
		}
	}
	return false
}
