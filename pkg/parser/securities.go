package parser

import (
	"strings"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/lines"
	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/reconcile"
)

// assembleSecurities reads pagination, the safekeeping account and one or
// more instrument blocks up to the "@@" sentinel.
func (p *Parser) assembleSecurities(buf *lines.Buffer, env *models.Envelope) error {
	env.Body = models.BodySecurities

	var err error
	if env.Pagination, err = readPagination(buf); err != nil {
		return err
	}
	if env.Account, err = readSafekeeping(buf); err != nil {
		return err
	}

	for {
		block, err := readBlock(buf)
		if err != nil {
			return err
		}
		if err := reconcile.Block(block); err != nil {
			return err
		}
		env.Blocks = append(env.Blocks, block)

		line, ok := buf.Peek()
		if !ok {
			return &errs.UnexpectedEndError{At: buf.LastLine(), Expected: strings.Join([]string{tagISIN, markerEnd}, " | ")}
		}
		if line.Text == markerEnd {
			_, _ = buf.Consume()
			return nil
		}
		if !strings.HasPrefix(line.Text, tagISIN) {
			return &errs.FooterError{At: line.Number, Got: line.Text}
		}
	}
}

// readBlock reads [35B], the opening [93B], the run of [T] lines and the
// closing [93B].
func readBlock(buf *lines.Buffer) (*models.InstrumentBlock, error) {
	isin, at, err := readISIN(buf)
	if err != nil {
		return nil, err
	}
	block := &models.InstrumentBlock{ISIN: isin, Line: at}

	if block.Opening, _, err = readQuantity(buf); err != nil {
		return nil, err
	}
	for {
		line, ok := buf.Peek()
		if !ok || !strings.HasPrefix(line.Text, tagTrade) {
			break
		}
		tx, err := readTrade(buf)
		if err != nil {
			return nil, err
		}
		block.Transactions = append(block.Transactions, tx)
	}
	if block.Closing, block.ClosingLine, err = readQuantity(buf); err != nil {
		return nil, err
	}
	return block, nil
}
