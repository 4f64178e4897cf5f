package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yurifrl/secstmt/pkg/messages"
)

// Plan is a batch of statement files processed in one run.
type Plan struct {
	Language   string      `yaml:"language"`
	Statements []Statement `yaml:"statements"`
}

type Statement struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	Language string `yaml:"language"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Statements) == 0 {
		return nil, fmt.Errorf("plan has no statements")
	}
	for i, st := range p.Statements {
		if st.File == "" {
			return nil, fmt.Errorf("statement %d has no file", i+1)
		}
		if _, err := st.Lang(messages.Spanish); err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	if _, err := messages.ParseLanguage(p.Language); err != nil {
		return nil, err
	}
	return &p, nil
}

// DefaultLanguage returns the plan-wide language, falling back to fallback
// when the plan sets none.
func (p *Plan) DefaultLanguage(fallback messages.Language) messages.Language {
	if p.Language == "" {
		return fallback
	}
	lang, _ := messages.ParseLanguage(p.Language)
	return lang
}

// Lang returns the statement's own language, or fallback if it has none.
func (s Statement) Lang(fallback messages.Language) (messages.Language, error) {
	if s.Language == "" {
		return fallback, nil
	}
	return messages.ParseLanguage(s.Language)
}

// Path returns the statement file's path, expanding ~ and resolving relative
// paths against base.
func (s Statement) Path(base string) (string, error) {
	if strings.HasPrefix(s.File, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.File[2:]), nil
	}
	if filepath.IsAbs(s.File) || base == "" {
		return s.File, nil
	}
	return filepath.Join(base, s.File), nil
}

// Label names the statement in output.
func (s Statement) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(s.File)
}

func (p *Plan) Print(w io.Writer) {
	lang := p.Language
	if lang == "" {
		lang = "default"
	}
	fmt.Fprintf(w, "Language: %s\n", lang)
	for i, st := range p.Statements {
		fmt.Fprintf(w, "[%d] name=%s file=%s language=%s\n", i+1, st.Label(), st.File, st.Language)
	}
}
