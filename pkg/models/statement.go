package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mark is the receive/deliver letter carried by page-variant movements and
// balances. Instrument-variant movements carry no mark: their sign is already
// part of the decoded value.
type Mark string

const (
	MarkNone   Mark = ""
	MarkCredit Mark = "C"
	MarkDebit  Mark = "D"
)

// Continuation indicators of a paginated message.
const (
	IndicatorOnly = "ONLY"
	IndicatorMore = "MORE"
	IndicatorLast = "LAST"
)

// Indicators lists the accepted continuation indicators.
var Indicators = []string{IndicatorOnly, IndicatorMore, IndicatorLast}

// Transaction is a single movement inside an instrument block or a page.
type Transaction struct {
	TradeDate        time.Time `json:"trade_date"`
	SettlementDate   time.Time `json:"settlement_date"`
	Quantity         Quantity  `json:"quantity"`
	Mark             Mark      `json:"mark,omitempty"`
	TypeCode         string    `json:"type_code,omitempty"`
	Reference        string    `json:"reference"`
	CounterReference string    `json:"counter_reference,omitempty"`
	Line             int       `json:"line"`
}

// Movement returns the signed contribution of t to its balance.
func (t Transaction) Movement() decimal.Decimal {
	if t.Mark == MarkDebit {
		return t.Quantity.Value.Neg()
	}
	return t.Quantity.Value
}

// InstrumentBlock holds the positions of a single ISIN.
type InstrumentBlock struct {
	ISIN         string        `json:"isin"`
	Opening      Quantity      `json:"opening"`
	Transactions []Transaction `json:"transactions"`
	Closing      Quantity      `json:"closing"`
	Line         int           `json:"line"`
	ClosingLine  int           `json:"-"`
}

// Page is one page of a cash statement.
type Page struct {
	AccountCode   string        `json:"account_code"`
	StatementCode string        `json:"statement_code"`
	Number        int           `json:"page_number"`
	OpeningTag    string        `json:"opening_tag"`
	OpeningDate   time.Time     `json:"opening_date"`
	Opening       Quantity      `json:"opening"`
	Transactions  []Transaction `json:"transactions"`
	ClosingTag    string        `json:"closing_tag"`
	ClosingDate   time.Time     `json:"closing_date"`
	Closing       Quantity      `json:"closing"`
	Line          int           `json:"line"`
	ClosingLine   int           `json:"-"`
}

// Pagination is the page number and continuation indicator of a message.
type Pagination struct {
	Page      int    `json:"page"`
	Indicator string `json:"indicator"`
}

// Continuation reports whether the message continues one seen earlier.
func (p Pagination) Continuation() bool {
	return p.Indicator != IndicatorOnly && p.Page > 1
}

// BodyType distinguishes the two message layouts.
type BodyType string

const (
	BodySecurities BodyType = "securities"
	BodyStatement  BodyType = "statement"
)

// Envelope is a fully assembled message. Continuation pages are folded into
// the first envelope carrying the same reference.
type Envelope struct {
	MessageType string             `json:"message_type"`
	Sender      string             `json:"sender"`
	Receiver    string             `json:"receiver"`
	Reference   string             `json:"reference"`
	Pagination  Pagination         `json:"pagination"`
	Account     string             `json:"account"`
	Body        BodyType           `json:"body"`
	Blocks      []*InstrumentBlock `json:"blocks,omitempty"`
	Pages       []*Page            `json:"pages,omitempty"`
	Line        int                `json:"line"`
}

// Block returns the block for isin, or nil.
func (e *Envelope) Block(isin string) *InstrumentBlock {
	for _, b := range e.Blocks {
		if b.ISIN == isin {
			return b
		}
	}
	return nil
}

// Movements returns every transaction of the envelope in document order.
func (e *Envelope) Movements() []Transaction {
	var out []Transaction
	for _, b := range e.Blocks {
		out = append(out, b.Transactions...)
	}
	for _, p := range e.Pages {
		out = append(out, p.Transactions...)
	}
	return out
}
