package parser

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/lines"
	"github.com/yurifrl/secstmt/pkg/models"
)

const (
	markerStart = "$"
	markerEnd   = "@@"
)

const bic = `[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?`

// field is the fixed grammar of one tagged line.
type field struct {
	name    string
	format  string
	pattern *regexp.Regexp
}

var (
	fieldMessageType = field{"message type", "[M]<3 digits>",
		regexp.MustCompile(`^\[M\](\d{3})$`)}
	fieldSender = field{"sender", "[S]<BIC>",
		regexp.MustCompile(`^\[S\](` + bic + `)$`)}
	fieldReceiver = field{"receiver", "[R]<BIC>",
		regexp.MustCompile(`^\[R\](` + bic + `)$`)}
	fieldReference = field{"reference", "[20]<alphanumeric>",
		regexp.MustCompile(`^\[20\]([A-Za-z0-9]+)$`)}
	fieldPagination = field{"pagination", "[28E]<page>/<indicator>",
		regexp.MustCompile(`^\[28E\](\d{1,5})/([A-Z]{4})$`)}
	fieldStatementCode = field{"statement code", "[28C]<digits>",
		regexp.MustCompile(`^\[28C\](\d+)$`)}
	fieldAccount = field{"account", "[25]<account>",
		regexp.MustCompile(`^\[25\](.+)$`)}
	fieldSafekeeping = field{"safekeeping account", "[97]<alphanumeric>",
		regexp.MustCompile(`^\[97\]([A-Za-z0-9]+)$`)}
	fieldPageNumber = field{"page number", "(<digits>)",
		regexp.MustCompile(`^\((\d+)\)$`)}
	fieldISIN = field{"instrument", "[35B]<ISIN>",
		regexp.MustCompile(`^\[35B\]([A-Z0-9]{12})$`)}
	fieldQuantity = field{"quantity", "[93B]<kind>/[N]<amount>",
		regexp.MustCompile(`^\[93B\]([A-Z]{4})/(N)?(\S+)$`)}
	fieldTrade = field{"transaction", "[T]<YYYYMMDD>/<YYYYMMDD>/<kind>/[N]<amount>/<reference>[/<counter reference>]",
		regexp.MustCompile(`^\[T\](\d{8})/(\d{8})/([A-Z]{4})/(N)?([^/]+)/([A-Za-z0-9]+)(?:/([A-Za-z0-9]+))?$`)}
	fieldStatementLine = field{"statement line", "[61]<YYMMDD>[MMDD]<C|D><amount><type><reference>[(<counter reference>)]",
		regexp.MustCompile(`^\[61\](\d{6})(\d{4})?([CD])(\d[\d,]*)([A-Z][A-Z0-9]{3})([A-Za-z0-9]+)(?:\(([A-Za-z0-9]+)\))?$`)}
)

// Balance lines are matched in two steps so a wrong tag and a malformed
// payload can be told apart.
var (
	balanceTag     = regexp.MustCompile(`^\[(\d{2}[A-Z]?)\](.*)$`)
	balancePayload = regexp.MustCompile(`^([CD])(\d{6})([A-Z]{4})(\S+)$`)
)

var (
	openingTags = []string{"60F", "60M"}
	closingTags = []string{"62F", "62M"}
)

const (
	tagTrade         = "[T]"
	tagStatementLine = "[61]"
	tagISIN          = "[35B]"
)

// next consumes a line, naming what was expected if the input ran out.
func next(buf *lines.Buffer, expected string) (lines.Line, error) {
	line, err := buf.Consume()
	if err != nil {
		var end *errs.UnexpectedEndError
		if errors.As(err, &end) {
			end.Expected = expected
		}
		return line, err
	}
	return line, nil
}

// read consumes the next line and returns the capture groups of f.
func (f field) read(buf *lines.Buffer) (lines.Line, []string, error) {
	line, err := next(buf, f.name)
	if err != nil {
		return line, nil, err
	}
	m := f.pattern.FindStringSubmatch(line.Text)
	if m == nil {
		return line, nil, &errs.SyntaxError{At: line.Number, Field: f.name, Format: f.format}
	}
	return line, m[1:], nil
}

func (f field) readString(buf *lines.Buffer) (string, error) {
	_, m, err := f.read(buf)
	if err != nil {
		return "", err
	}
	return m[0], nil
}

// expectLiteral consumes a line that must be exactly literal.
func expectLiteral(buf *lines.Buffer, literal string) (lines.Line, bool, error) {
	line, err := next(buf, strconv.Quote(literal))
	if err != nil {
		return line, false, err
	}
	return line, line.Text == literal, nil
}

func readMessageType(buf *lines.Buffer) (string, error) {
	return fieldMessageType.readString(buf)
}

func readBIC(buf *lines.Buffer, f field) (string, error) {
	return f.readString(buf)
}

func readReference(buf *lines.Buffer) (string, error) {
	return fieldReference.readString(buf)
}

func readPagination(buf *lines.Buffer) (models.Pagination, error) {
	line, m, err := fieldPagination.read(buf)
	if err != nil {
		return models.Pagination{}, err
	}
	page, err := positive(line, fieldPagination, m[0])
	if err != nil {
		return models.Pagination{}, err
	}
	if !slices.Contains(models.Indicators, m[1]) {
		return models.Pagination{}, &errs.ContinuationError{At: line.Number, Got: m[1], Allowed: models.Indicators}
	}
	return models.Pagination{Page: page, Indicator: m[1]}, nil
}

func readStatementCode(buf *lines.Buffer) (string, error) {
	return fieldStatementCode.readString(buf)
}

func readAccount(buf *lines.Buffer) (string, error) {
	account, err := fieldAccount.readString(buf)
	return strings.TrimSpace(account), err
}

func readSafekeeping(buf *lines.Buffer) (string, error) {
	return fieldSafekeeping.readString(buf)
}

func readPageNumber(buf *lines.Buffer) (int, error) {
	line, m, err := fieldPageNumber.read(buf)
	if err != nil {
		return 0, err
	}
	return positive(line, fieldPageNumber, m[0])
}

func readISIN(buf *lines.Buffer) (string, int, error) {
	line, m, err := fieldISIN.read(buf)
	if err != nil {
		return "", line.Number, err
	}
	return m[0], line.Number, nil
}

func readQuantity(buf *lines.Buffer) (models.Quantity, int, error) {
	line, m, err := fieldQuantity.read(buf)
	if err != nil {
		return models.Quantity{}, line.Number, err
	}
	q, err := Decode(line.Number, models.Kind(m[0]), m[1] == "N", m[2])
	return q, line.Number, err
}

// readTrade reads an instrument-variant movement. Its sign comes from the
// optional N marker in front of the amount.
func readTrade(buf *lines.Buffer) (models.Transaction, error) {
	line, m, err := fieldTrade.read(buf)
	if err != nil {
		return models.Transaction{}, err
	}
	trade, err := fullDate(line.Number, m[0])
	if err != nil {
		return models.Transaction{}, err
	}
	settlement, err := fullDate(line.Number, m[1])
	if err != nil {
		return models.Transaction{}, err
	}
	q, err := Decode(line.Number, models.Kind(m[2]), m[3] == "N", m[4])
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		TradeDate:        trade,
		SettlementDate:   settlement,
		Quantity:         q,
		Reference:        m[5],
		CounterReference: m[6],
		Line:             line.Number,
	}, nil
}

// readStatementLine reads a page-variant movement. The amount is decoded
// unsigned under the page's kind; the C/D mark decides the sign when the
// page is reconciled.
func readStatementLine(buf *lines.Buffer, kind models.Kind) (models.Transaction, error) {
	line, m, err := fieldStatementLine.read(buf)
	if err != nil {
		return models.Transaction{}, err
	}
	value, err := compactDate(line.Number, m[0])
	if err != nil {
		return models.Transaction{}, err
	}
	entry := value
	if m[1] != "" {
		entry, err = fullDate(line.Number, fmt.Sprintf("%04d%s", entryYear(value, m[1]), m[1]))
		if err != nil {
			return models.Transaction{}, err
		}
	}
	q, err := Decode(line.Number, kind, false, m[3])
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		TradeDate:        entry,
		SettlementDate:   value,
		Quantity:         q,
		Mark:             models.Mark(m[2]),
		TypeCode:         m[4],
		Reference:        m[5],
		CounterReference: m[6],
		Line:             line.Number,
	}, nil
}

// entryYear picks the year of an MMDD entry date that lies closest to the
// value date, so entries across a year end land in the neighbouring year.
func entryYear(value time.Time, mmdd string) int {
	month, _ := strconv.Atoi(mmdd[:2])
	switch diff := month - int(value.Month()); {
	case diff < -6:
		return value.Year() + 1
	case diff > 6:
		return value.Year() - 1
	}
	return value.Year()
}

type balance struct {
	tag      string
	date     time.Time
	quantity models.Quantity
	line     int
}

// readBalance reads an opening or closing balance whose tag must be one of
// accepted.
func readBalance(buf *lines.Buffer, name string, accepted []string) (balance, error) {
	line, err := next(buf, name)
	if err != nil {
		return balance{}, err
	}
	m := balanceTag.FindStringSubmatch(line.Text)
	if m == nil {
		return balance{}, &errs.SyntaxError{
			At:     line.Number,
			Field:  name,
			Format: "[" + strings.Join(accepted, "|") + "]<C|D><YYMMDD><kind><amount>",
		}
	}
	tag := m[1]
	if !slices.Contains(accepted, tag) {
		return balance{}, &errs.WrongBalanceTagError{At: line.Number, Got: tag, Expected: accepted}
	}
	p := balancePayload.FindStringSubmatch(m[2])
	if p == nil {
		return balance{}, &errs.BadBalanceFieldError{At: line.Number, Tag: tag}
	}
	date, err := compactDate(line.Number, p[2])
	if err != nil {
		return balance{}, err
	}
	q, err := Decode(line.Number, models.Kind(p[3]), p[1] == string(models.MarkDebit), p[4])
	if err != nil {
		return balance{}, err
	}
	return balance{tag: tag, date: date, quantity: q, line: line.Number}, nil
}

func positive(line lines.Line, f field, digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, &errs.SyntaxError{At: line.Number, Field: f.name, Format: f.format}
	}
	return n, nil
}

// fullDate parses YYYYMMDD and rejects days that do not exist.
func fullDate(line int, s string) (time.Time, error) {
	d, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, &errs.DateFormatError{At: line, Value: s}
	}
	return d, nil
}

// compactDate parses YYMMDD and rejects days that do not exist.
func compactDate(line int, s string) (time.Time, error) {
	d, err := time.Parse("060102", s)
	if err != nil {
		return time.Time{}, &errs.DateFormatError{At: line, Value: s}
	}
	return d, nil
}
