package parser

import (
	"strings"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/lines"
	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/reconcile"
)

// assembleStatement reads a single cash statement page:
// [28C] [25] (n) [60F|60M] [61]* [62F|62M] @@.
func (p *Parser) assembleStatement(buf *lines.Buffer, env *models.Envelope) error {
	env.Body = models.BodyStatement

	page := &models.Page{}
	var err error
	if page.StatementCode, err = readStatementCode(buf); err != nil {
		return err
	}
	if page.AccountCode, err = readAccount(buf); err != nil {
		return err
	}
	if page.Number, err = readPageNumber(buf); err != nil {
		return err
	}

	opening, err := readBalance(buf, "opening balance", openingTags)
	if err != nil {
		return err
	}
	page.OpeningTag, page.OpeningDate, page.Opening, page.Line = opening.tag, opening.date, opening.quantity, opening.line

	for {
		line, ok := buf.Peek()
		if !ok || !strings.HasPrefix(line.Text, tagStatementLine) {
			break
		}
		tx, err := readStatementLine(buf, page.Opening.Kind)
		if err != nil {
			return err
		}
		page.Transactions = append(page.Transactions, tx)
	}

	closing, err := readBalance(buf, "closing balance", closingTags)
	if err != nil {
		return err
	}
	page.ClosingTag, page.ClosingDate, page.Closing, page.ClosingLine = closing.tag, closing.date, closing.quantity, closing.line

	if err := reconcile.Page(page); err != nil {
		return err
	}

	end, ok, err := expectLiteral(buf, markerEnd)
	if err != nil {
		return err
	}
	if !ok {
		return &errs.FooterError{At: end.Number, Got: end.Text}
	}

	env.Account = page.AccountCode
	env.Pagination = pagination(page)
	env.Pages = []*models.Page{page}
	return nil
}

// pagination derives the continuation state of a page from its closing tag:
// an intermediate closing (62M) means more pages follow.
func pagination(page *models.Page) models.Pagination {
	indicator := models.IndicatorOnly
	switch {
	case page.ClosingTag == "62M":
		indicator = models.IndicatorMore
	case page.Number > 1:
		indicator = models.IndicatorLast
	}
	return models.Pagination{Page: page.Number, Indicator: indicator}
}
