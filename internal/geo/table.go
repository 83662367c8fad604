package geo

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps a phone dial code ("+33") to the ISO country codes a caller using it may be in.
type Table struct {
	entries map[string][]string
}

// defaultEntries cover the diaspora communities served by the platform.
var defaultEntries = map[string][]string{
	"+1":   {"CA", "US"},
	"+7":   {"RU", "KZ"},
	"+31":  {"NL"},
	"+32":  {"BE"},
	"+33":  {"FR"},
	"+34":  {"ES"},
	"+39":  {"IT"},
	"+41":  {"CH"},
	"+44":  {"GB"},
	"+49":  {"DE"},
	"+90":  {"TR"},
	"+212": {"MA"},
	"+213": {"DZ"},
	"+216": {"TN"},
	"+221": {"SN"},
	"+223": {"ML"},
	"+224": {"GN"},
	"+225": {"CI"},
	"+226": {"BF"},
	"+227": {"NE"},
	"+228": {"TG"},
	"+229": {"BJ"},
	"+233": {"GH"},
	"+234": {"NG"},
	"+237": {"CM"},
	"+241": {"GA"},
	"+242": {"CG"},
	"+243": {"CD"},
	"+351": {"PT"},
	"+375": {"BY"},
	"+380": {"UA"},
}

// DefaultTable returns the built-in table.
func DefaultTable() *Table {
	t, _ := NewTable(defaultEntries)
	return t
}

// NewTable normalizes entries: dial codes trimmed, country codes trimmed and upper-cased.
func NewTable(entries map[string][]string) (*Table, error) {
	t := &Table{entries: make(map[string][]string, len(entries))}
	for code, countries := range entries {
		code = strings.TrimSpace(code)
		if !strings.HasPrefix(code, "+") || len(code) < 2 {
			return nil, fmt.Errorf("geo table: invalid dial code %q", code)
		}
		norm := make([]string, 0, len(countries))
		for _, c := range countries {
			c = strings.ToUpper(strings.TrimSpace(c))
			if len(c) != 2 {
				return nil, fmt.Errorf("geo table: invalid country %q for %s", c, code)
			}
			norm = append(norm, c)
		}
		if len(norm) == 0 {
			return nil, fmt.Errorf("geo table: no countries for %s", code)
		}
		t.entries[code] = norm
	}
	return t, nil
}

// LoadTable reads a YAML mapping of dial code to country list, for example:
//
//	"+33": [FR]
//	"+1": [CA, US]
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo table: %w", err)
	}
	var entries map[string][]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("geo table: parse %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("geo table: %s is empty", path)
	}
	return NewTable(entries)
}

// Lookup returns the allowed countries for dialCode.
func (t *Table) Lookup(dialCode string) ([]string, bool) {
	c, ok := t.entries[strings.TrimSpace(dialCode)]
	return c, ok
}

// DialCodes returns the configured dial codes, sorted.
func (t *Table) DialCodes() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
