package csv

import (
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/secstmt/pkg/models"
)

// Movement is one transaction flattened together with the message and the
// block or page that holds it.
type Movement struct {
	Reference        string
	Subject          string // ISIN or page number
	TradeDate        string
	SettlementDate   string
	Kind             models.Kind
	Value            decimal.Decimal
	Mark             models.Mark
	TypeCode         string
	TxReference      string
	CounterReference string
	Line             int
}

func (m Movement) Date() string            { return m.TradeDate }
func (m Movement) Amount() decimal.Decimal { return m.Value }

// ID is a short stable identifier of the movement.
func (m Movement) ID() string {
	input := fmt.Sprintf("%s-%s-%s-%d", m.Reference, m.Subject, m.TxReference, m.Line)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash)[:8]
}

func (m Movement) Row() []string {
	return []string{
		m.ID(),
		m.Reference,
		m.Subject,
		m.TradeDate,
		m.SettlementDate,
		string(m.Kind),
		amount(m.Kind, m.Value),
		string(m.Mark),
		m.TypeCode,
		m.TxReference,
		m.CounterReference,
		strconv.Itoa(m.Line),
	}
}

// MovementHeader names the columns of Movement.Row.
var MovementHeader = []string{
	"id", "reference", "subject", "trade_date", "settlement_date", "kind",
	"amount", "mark", "type_code", "tx_reference", "counter_reference", "line",
}

// Movements flattens every transaction of envs, signed as it counts toward
// its balance.
func Movements(envs []*models.Envelope) []Movement {
	var out []Movement
	for _, env := range envs {
		for _, b := range env.Blocks {
			for _, tx := range b.Transactions {
				out = append(out, movement(env.Reference, b.ISIN, tx))
			}
		}
		for _, p := range env.Pages {
			for _, tx := range p.Transactions {
				out = append(out, movement(env.Reference, strconv.Itoa(p.Number), tx))
			}
		}
	}
	return out
}

func movement(reference, subject string, tx models.Transaction) Movement {
	return Movement{
		Reference:        reference,
		Subject:          subject,
		TradeDate:        tx.TradeDate.Format("2006-01-02"),
		SettlementDate:   tx.SettlementDate.Format("2006-01-02"),
		Kind:             tx.Quantity.Kind,
		Value:            tx.Movement(),
		Mark:             tx.Mark,
		TypeCode:         tx.TypeCode,
		TxReference:      tx.Reference,
		CounterReference: tx.CounterReference,
		Line:             tx.Line,
	}
}

func amount(kind models.Kind, v decimal.Decimal) string {
	if kind.Decimal() {
		return v.StringFixed(2)
	}
	return v.String()
}
