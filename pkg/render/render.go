// Package render prints parse results for people and programs.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"

	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/reconcile"
)

// Envelope is the printable form of models.Envelope. Quantities are
// rendered as strings so decimals print by value.
type Envelope struct {
	MessageType string  `json:"message_type"`
	Sender      string  `json:"sender"`
	Receiver    string  `json:"receiver"`
	Reference   string  `json:"reference"`
	Page        int     `json:"page"`
	Indicator   string  `json:"indicator"`
	Account     string  `json:"account"`
	Body        string  `json:"body"`
	Blocks      []Block `json:"blocks,omitempty"`
	Pages       []Page  `json:"pages,omitempty"`
}

type Block struct {
	ISIN         string        `json:"isin"`
	Opening      string        `json:"opening"`
	Transactions []Transaction `json:"transactions"`
	Closing      string        `json:"closing"`
}

type Page struct {
	Number        int           `json:"page_number"`
	AccountCode   string        `json:"account_code"`
	StatementCode string        `json:"statement_code"`
	Opening       string        `json:"opening"`
	OpeningDate   string        `json:"opening_date"`
	Transactions  []Transaction `json:"transactions"`
	Closing       string        `json:"closing"`
	ClosingDate   string        `json:"closing_date"`
	Final         bool          `json:"final"`
}

type Transaction struct {
	TradeDate        string `json:"trade_date"`
	SettlementDate   string `json:"settlement_date"`
	Quantity         string `json:"quantity"`
	Mark             string `json:"mark,omitempty"`
	TypeCode         string `json:"type_code,omitempty"`
	Reference        string `json:"reference"`
	CounterReference string `json:"counter_reference,omitempty"`
	Line             int    `json:"line"`
}

const dateLayout = "2006-01-02"

// View converts envs to their printable form.
func View(envs []*models.Envelope) []Envelope {
	out := make([]Envelope, 0, len(envs))
	for _, e := range envs {
		v := Envelope{
			MessageType: e.MessageType,
			Sender:      e.Sender,
			Receiver:    e.Receiver,
			Reference:   e.Reference,
			Page:        e.Pagination.Page,
			Indicator:   e.Pagination.Indicator,
			Account:     e.Account,
			Body:        string(e.Body),
		}
		for _, b := range e.Blocks {
			v.Blocks = append(v.Blocks, Block{
				ISIN:         b.ISIN,
				Opening:      b.Opening.String(),
				Transactions: transactions(b.Transactions),
				Closing:      b.Closing.String(),
			})
		}
		for _, p := range e.Pages {
			v.Pages = append(v.Pages, Page{
				Number:        p.Number,
				AccountCode:   p.AccountCode,
				StatementCode: p.StatementCode,
				Opening:       p.Opening.String(),
				OpeningDate:   p.OpeningDate.Format(dateLayout),
				Transactions:  transactions(p.Transactions),
				Closing:       p.Closing.String(),
				ClosingDate:   p.ClosingDate.Format(dateLayout),
				Final:         p.ClosingTag == "62F",
			})
		}
		out = append(out, v)
	}
	return out
}

func transactions(txs []models.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, Transaction{
			TradeDate:        t.TradeDate.Format(dateLayout),
			SettlementDate:   t.SettlementDate.Format(dateLayout),
			Quantity:         t.Quantity.String(),
			Mark:             string(t.Mark),
			TypeCode:         t.TypeCode,
			Reference:        t.Reference,
			CounterReference: t.CounterReference,
			Line:             t.Line,
		})
	}
	return out
}

// Pretty dumps envs with colors when color is set.
func Pretty(w io.Writer, envs []*models.Envelope, color bool) error {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)
	printer.SetExportedOnly(true)
	_, err := printer.Println(View(envs))
	return err
}

// JSON writes envs as an indented JSON array.
func JSON(w io.Writer, envs []*models.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(View(envs))
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	balancedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	unbalancedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// Summary prints one line per block or page followed by a total.
func Summary(w io.Writer, title string, report *reconcile.Report) {
	fmt.Fprintln(w, titleStyle.Render(title))
	for _, e := range report.Items {
		line := fmt.Sprintf("%-12s | %-14s | %s | %s %s = %s | %s txs",
			e.Reference, e.Subject, e.Kind,
			format(e.Kind, e.Opening.String(), e.Opening.StringFixed(2)),
			signed(e.Kind, e.Movement.String(), e.Movement.StringFixed(2)),
			format(e.Kind, e.Closing.String(), e.Closing.StringFixed(2)),
			strconv.Itoa(e.Count))
		if e.Status == reconcile.Balanced {
			fmt.Fprintln(w, balancedStyle.Render("= "+line))
		} else {
			fmt.Fprintln(w, unbalancedStyle.Render("! "+line))
		}
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d of %d balanced", report.BalancedCount(), len(report.Items))))
}

func format(kind models.Kind, whole, fixed string) string {
	if kind.Decimal() {
		return fixed
	}
	return whole
}

func signed(kind models.Kind, whole, fixed string) string {
	s := format(kind, whole, fixed)
	if len(s) > 0 && s[0] == '-' {
		return "- " + s[1:]
	}
	return "+ " + s
}
