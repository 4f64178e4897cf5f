package parser

import (
	"github.com/charmbracelet/log"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/reconcile"
)

// merger folds continuation messages into the first message seen with the
// same reference, keeping first-seen order.
type merger struct {
	logger    *log.Logger
	envelopes []*models.Envelope
	index     map[string]int
}

func newMerger(logger *log.Logger) *merger {
	return &merger{
		logger: logger,
		index:  make(map[string]int),
	}
}

// Add appends env, or folds it into an earlier envelope with the same
// reference. Continuation pages always fold. Statement pages fold whatever
// their number, so pages arriving out of order or twice still go through
// the continuity and duplicate checks.
func (m *merger) Add(env *models.Envelope) error {
	pos, seen := m.index[env.Reference]
	if !seen || !(env.Pagination.Continuation() || env.Body == models.BodyStatement) {
		if env.Pagination.Continuation() {
			m.logger.Warn("continuation without first page", "reference", env.Reference, "page", env.Pagination.Page, "line", env.Line)
		}
		if !seen {
			m.index[env.Reference] = len(m.envelopes)
		}
		m.envelopes = append(m.envelopes, env)
		return nil
	}

	target := m.envelopes[pos]
	if target.Body != env.Body {
		return &errs.ValidationError{At: env.Line, Subject: env.Reference, Reason: errs.KindLayoutMismatch}
	}

	switch env.Body {
	case models.BodySecurities:
		for _, block := range env.Blocks {
			existing := target.Block(block.ISIN)
			if existing == nil {
				target.Blocks = append(target.Blocks, block)
				continue
			}
			if err := reconcile.Extend(existing, block); err != nil {
				return err
			}
		}
	case models.BodyStatement:
		// The envelope describes its lowest page.
		if env.Pagination.Page < target.Pagination.Page {
			target.MessageType = env.MessageType
			target.Sender = env.Sender
			target.Receiver = env.Receiver
			target.Account = env.Account
			target.Pagination = env.Pagination
			target.Line = env.Line
		}
		target.Pages = append(target.Pages, env.Pages...)
	}
	m.logger.Debug("merged continuation", "reference", env.Reference, "page", env.Pagination.Page, "into_line", target.Line)
	return nil
}

func (m *merger) Envelopes() []*models.Envelope {
	return m.envelopes
}
