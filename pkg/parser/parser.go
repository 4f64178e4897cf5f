package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/lines"
	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/reconcile"
)

type SourceType string

const (
	SourceText SourceType = "text"
	SourceXLS  SourceType = "xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessBytes loads data according to the file name and parses it.
func (p *Parser) ProcessBytes(data []byte, filename string) ([]*models.Envelope, error) {
	sourceType := DetectSource(filename)
	p.logger.Debug("detected source type", "type", sourceType, "filename", filename)

	var buf *lines.Buffer
	switch sourceType {
	case SourceText:
		buf = lines.FromText(data)
	case SourceXLS:
		var err error
		buf, err = lines.FromXLS(data)
		if err != nil {
			return nil, err
		}
	default:
		p.logger.Debug("unknown source type", "filename", filename)
		return nil, fmt.Errorf("unknown file type")
	}
	return p.Parse(buf)
}

// DetectSource picks a loader from the file extension.
func DetectSource(filename string) SourceType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return SourceXLS
	case "", ".txt", ".fin", ".dat", ".mt":
		return SourceText
	}
	return ""
}

// Parse consumes buf entirely. The first error aborts the run and nothing
// assembled before it is returned.
func (p *Parser) Parse(buf *lines.Buffer) ([]*models.Envelope, error) {
	m := newMerger(p.logger)
	for !buf.Exhausted() {
		env, err := p.assembleMessage(buf)
		if err != nil {
			p.logger.Debug("parse failed", "error", err)
			return nil, err
		}
		if err := m.Add(env); err != nil {
			return nil, err
		}
	}

	envelopes := m.Envelopes()
	for _, env := range envelopes {
		if env.Body != models.BodyStatement {
			continue
		}
		sort.SliceStable(env.Pages, func(i, j int) bool {
			return env.Pages[i].Number < env.Pages[j].Number
		})
		if err := reconcile.Continuity(env.Pages); err != nil {
			return nil, err
		}
	}
	p.logger.Debug("parsed input", "messages", len(envelopes), "lines", buf.LastLine())
	return envelopes, nil
}

// assembleMessage reads one message from its "$" marker through the shared
// header, then hands over to the body layout selected by the message type.
func (p *Parser) assembleMessage(buf *lines.Buffer) (*models.Envelope, error) {
	start, ok, err := expectLiteral(buf, markerStart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &errs.HeaderError{At: start.Number, Got: start.Text}
	}

	env := &models.Envelope{Line: start.Number}
	if env.MessageType, err = readMessageType(buf); err != nil {
		return nil, err
	}
	if env.Sender, err = readBIC(buf, fieldSender); err != nil {
		return nil, err
	}
	if env.Receiver, err = readBIC(buf, fieldReceiver); err != nil {
		return nil, err
	}
	if env.Reference, err = readReference(buf); err != nil {
		return nil, err
	}

	if statementType(env.MessageType) {
		err = p.assembleStatement(buf, env)
	} else {
		err = p.assembleSecurities(buf, env)
	}
	if err != nil {
		return nil, err
	}
	p.logger.Debug("assembled message", "reference", env.Reference, "type", env.MessageType,
		"page", env.Pagination.Page, "indicator", env.Pagination.Indicator, "line", env.Line)
	return env, nil
}

// statementType reports whether a message type uses the cash statement
// layout (9xx) rather than instrument blocks.
func statementType(messageType string) bool {
	return strings.HasPrefix(messageType, "9")
}
