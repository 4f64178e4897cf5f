package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yurifrl/secstmt/pkg/config"
	"github.com/yurifrl/secstmt/pkg/csv"
	"github.com/yurifrl/secstmt/pkg/messages"
	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/parser"
	"github.com/yurifrl/secstmt/pkg/plan"
	"github.com/yurifrl/secstmt/pkg/reconcile"
	"github.com/yurifrl/secstmt/pkg/workbook"
)

const outputSuffix = "-secstmt.csv"

// Result is the outcome of processing one file. When Err is set Envelopes
// and Report are nil and Message holds the localized diagnostic.
type Result struct {
	RunID     string
	File      string
	Label     string
	Language  messages.Language
	Envelopes []*models.Envelope
	Report    *reconcile.Report
	Err       error
	Message   string
	Output    string
}

func (r *Result) OK() bool { return r.Err == nil }

type Processor struct {
	config  *config.Config
	logger  *log.Logger
	parser  *parser.Parser
	catalog *messages.Catalog
	filter  csv.FilterFunc[csv.Movement]
}

func NewProcessor(cfg *config.Config, logger *log.Logger) (*Processor, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return &Processor{
		config:  cfg,
		logger:  logger,
		parser:  parser.New(logger),
		catalog: catalog,
	}, nil
}

// SetFilter restricts the movements written to CSV files.
func (p *Processor) SetFilter(filter csv.FilterFunc[csv.Movement]) {
	p.filter = filter
}

// Catalog returns the catalog diagnostics are rendered with.
func (p *Processor) Catalog() *messages.Catalog {
	return p.catalog
}

// ProcessBytes parses data already in memory.
func (p *Processor) ProcessBytes(data []byte, filename string, lang messages.Language) *Result {
	res := &Result{
		RunID:    uuid.NewString(),
		File:     filename,
		Label:    filepath.Base(filename),
		Language: lang,
	}
	envs, err := p.parser.ProcessBytes(data, filepath.Base(filename))
	if err != nil {
		res.Err = err
		res.Message = p.catalog.Describe(err, lang)
		p.logger.Error("failed to parse statement", "run", res.RunID, "file", filename, "error", err)
		return res
	}
	res.Envelopes = envs
	res.Report = reconcile.Build(envs)
	p.logger.Info("parsed statement", "run", res.RunID, "file", filename,
		"messages", len(envs), "balanced", res.Report.BalancedCount())
	return res
}

// ProcessFile parses the file at path and writes its CSV when the output
// format asks for it.
func (p *Processor) ProcessFile(path string, lang messages.Language) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read file: %w", err)
		res := &Result{RunID: uuid.NewString(), File: path, Label: filepath.Base(path), Language: lang, Err: err}
		res.Message = p.catalog.Describe(err, lang)
		p.logger.Error("failed to read statement", "file", path, "error", err)
		return res
	}
	res := p.ProcessBytes(data, path, lang)
	if res.OK() && p.config.Output == config.OutputCSV {
		if err := p.writeCSV(res); err != nil {
			res.Err = err
			res.Message = p.catalog.Describe(err, lang)
		}
	}
	return res
}

// ProcessDirectory processes every statement file directly inside dir and
// writes the workbook. Failures are reported per file and do not stop the run.
func (p *Processor) ProcessDirectory(dir string) ([]*Result, error) {
	results, err := p.ScanDirectory(dir)
	if err != nil {
		return nil, err
	}
	if err := p.export(results); err != nil {
		return results, err
	}
	return results, nil
}

// ScanDirectory is ProcessDirectory without the workbook export.
func (p *Processor) ScanDirectory(dir string) ([]*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	var results []*Result
	for _, entry := range entries {
		if entry.IsDir() || parser.DetectSource(entry.Name()) == "" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		p.logger.Info("processing file", "path", path, "type", parser.DetectSource(entry.Name()))
		results = append(results, p.ProcessFile(path, p.config.Language))
	}
	return results, nil
}

// ProcessPlan processes every statement of pl. Relative paths are resolved
// against base.
func (p *Processor) ProcessPlan(pl *plan.Plan, base string) ([]*Result, error) {
	fallback := pl.DefaultLanguage(p.config.Language)

	var results []*Result
	for _, st := range pl.Statements {
		lang, err := st.Lang(fallback)
		if err != nil {
			return results, err
		}
		path, err := st.Path(base)
		if err != nil {
			return results, fmt.Errorf("failed to resolve %s: %w", st.File, err)
		}
		res := p.ProcessFile(path, lang)
		res.Label = st.Label()
		results = append(results, res)
	}
	if err := p.export(results); err != nil {
		return results, err
	}
	return results, nil
}

// Export writes the workbook of results when one is configured.
func (p *Processor) Export(results ...*Result) error {
	return p.export(results)
}

func (p *Processor) export(results []*Result) error {
	if p.config.XLSX == "" {
		return nil
	}
	var envs []*models.Envelope
	for _, r := range results {
		envs = append(envs, r.Envelopes...)
	}
	f, err := os.Create(p.config.XLSX)
	if err != nil {
		return fmt.Errorf("error creating workbook: %w", err)
	}
	defer f.Close()
	if err := workbook.Write(f, envs); err != nil {
		return err
	}
	p.logger.Info("wrote workbook", "path", p.config.XLSX, "messages", len(envs))
	return nil
}

func (p *Processor) writeCSV(res *Result) error {
	out, err := csv.Create(csv.MovementHeader, csv.Movements(res.Envelopes), p.filter)
	if err != nil {
		return fmt.Errorf("error rendering csv: %w", err)
	}
	res.Output = p.determineOutputPath(res.File)
	if err := os.WriteFile(res.Output, out, 0o644); err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	p.logger.Info("wrote movements", "input", res.File, "output", res.Output)
	return nil
}

func (p *Processor) determineOutputPath(inputPath string) string {
	fileName := filepath.Base(inputPath)
	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if p.config.GetOutputPath() != "" {
		return filepath.Join(p.config.GetOutputPath(), baseName+outputSuffix)
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + outputSuffix
}
