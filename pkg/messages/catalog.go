// Package messages turns structured parse failures into localized
// diagnostics.
package messages

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yurifrl/secstmt/pkg/errs"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// KindInternal describes errors that carry no structured kind.
const KindInternal errs.Kind = "internal"

// Entry holds the templates of one error kind.
type Entry struct {
	ES string `yaml:"es"`
	EN string `yaml:"en"`
}

func (e Entry) template(lang Language) string {
	if lang == English {
		return e.EN
	}
	return e.ES
}

// Catalog maps error kinds to templates in both languages.
type Catalog struct {
	entries map[errs.Kind]Entry
}

// Load parses a YAML catalog. Every kind in errs.Kinds must be present with
// both templates.
func Load(data []byte) (*Catalog, error) {
	var entries map[errs.Kind]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c := &Catalog{entries: entries}
	for _, kind := range append([]errs.Kind{KindInternal}, errs.Kinds...) {
		e, ok := c.entries[kind]
		if !ok || e.ES == "" || e.EN == "" {
			return nil, fmt.Errorf("catalog is missing templates for %q", kind)
		}
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaults    *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultCatalog)
		if err != nil {
			panic(err)
		}
		defaults = c
	})
	return defaults
}

// LoadFile overlays the templates found in path on the built-in catalog.
// Kinds the file leaves out keep their default wording.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var overrides map[errs.Kind]Entry
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	base := Default()
	c := &Catalog{entries: make(map[errs.Kind]Entry, len(base.entries))}
	for k, v := range base.entries {
		c.entries[k] = v
	}
	for k, v := range overrides {
		e := c.entries[k]
		if v.ES != "" {
			e.ES = v.ES
		}
		if v.EN != "" {
			e.EN = v.EN
		}
		c.entries[k] = e
	}
	return c, nil
}

// Template returns the raw template for kind.
func (c *Catalog) Template(kind errs.Kind, lang Language) string {
	e, ok := c.entries[kind]
	if !ok {
		e = c.entries[KindInternal]
	}
	return e.template(lang)
}

// Format substitutes line and args into the template of kind.
func (c *Catalog) Format(kind errs.Kind, lang Language, line int, args ...any) string {
	return fmt.Sprintf(c.Template(kind, lang), append([]any{line}, args...)...)
}

// Describe formats err. Errors without a structured kind are reported with
// their own text at line 0.
func (c *Catalog) Describe(err error, lang Language) string {
	if err == nil {
		return ""
	}
	var e errs.Error
	if errors.As(err, &e) {
		return c.Format(e.Kind(), lang, e.Line(), e.Args()...)
	}
	return c.Format(KindInternal, lang, 0, err.Error())
}

// Kinds returns the kinds known to the catalog in sorted order.
func (c *Catalog) Kinds() []errs.Kind {
	kinds := make([]errs.Kind, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
