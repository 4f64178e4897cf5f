package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/lines"
	"github.com/yurifrl/secstmt/pkg/models"
)

func one(text string) *lines.Buffer {
	return lines.New([]string{text})
}

func TestReadBIC(t *testing.T) {
	for _, ok := range []string{"[S]BANKESMM", "[S]BANKESMMXXX", "[S]CITIUS33"} {
		got, err := readBIC(one(ok), fieldSender)
		require.NoError(t, err, ok)
		assert.Equal(t, ok[3:], got)
	}
	for _, bad := range []string{"[S]BANKES", "[S]BANKESMMXX", "[S]bankesmm", "[R]BANKESMM", "[S]12NKESMM"} {
		_, err := readBIC(one(bad), fieldSender)
		var syntax *errs.SyntaxError
		require.True(t, errors.As(err, &syntax), bad)
		assert.Equal(t, "sender", syntax.Field)
	}
}

func TestReadPagination(t *testing.T) {
	p, err := readPagination(one("[28E]2/MORE"))
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Page: 2, Indicator: "MORE"}, p)

	_, err = readPagination(one("[28E]1/NEXT"))
	var cont *errs.ContinuationError
	require.True(t, errors.As(err, &cont))
	assert.Equal(t, "NEXT", cont.Got)

	_, err = readPagination(one("[28E]0/ONLY"))
	var syntax *errs.SyntaxError
	require.True(t, errors.As(err, &syntax))

	_, err = readPagination(one("[28E]123456/ONLY"))
	require.True(t, errors.As(err, &syntax))
}

func TestReadPageNumber(t *testing.T) {
	n, err := readPageNumber(one("(12)"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = readPageNumber(one("12"))
	var syntax *errs.SyntaxError
	require.True(t, errors.As(err, &syntax))
	assert.Equal(t, "page number", syntax.Field)
}

func TestReadQuantity(t *testing.T) {
	q, at, err := readQuantity(one("[93B]FAMT/N1500,25"))
	require.NoError(t, err)
	assert.Equal(t, 1, at)
	assert.Equal(t, "FAMT/N1500,25", q.String())

	_, _, err = readQuantity(one("[93B]XXXX/100"))
	var code *errs.CodeError
	require.True(t, errors.As(err, &code))

	_, _, err = readQuantity(one("[93B]UNIT/N"))
	var typeErr *errs.TypeError
	require.True(t, errors.As(err, &typeErr))
}

func TestReadTrade(t *testing.T) {
	tx, err := readTrade(one("[T]20240102/20240104/UNIT/N25/TRD1/CTR9"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), tx.TradeDate)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), tx.SettlementDate)
	assert.Equal(t, "UNIT/N25", tx.Quantity.String())
	assert.Equal(t, "TRD1", tx.Reference)
	assert.Equal(t, "CTR9", tx.CounterReference)
	assert.Equal(t, models.MarkNone, tx.Mark)

	_, err = readTrade(one("[T]20240230/20240104/UNIT/25/TRD1"))
	var date *errs.DateFormatError
	require.True(t, errors.As(err, &date))
	assert.Equal(t, "20240230", date.Value)
}

func TestReadStatementLine(t *testing.T) {
	tx, err := readStatementLine(one("[61]2401020103D250,50NTRFPAY1(CP1)"), models.KindFaceAmount)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), tx.SettlementDate)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), tx.TradeDate)
	assert.Equal(t, models.MarkDebit, tx.Mark)
	assert.Equal(t, "FAMT/250,50", tx.Quantity.String())
	assert.Equal(t, "NTRF", tx.TypeCode)
	assert.Equal(t, "PAY1", tx.Reference)
	assert.Equal(t, "CP1", tx.CounterReference)
	assert.Equal(t, "-250.5", tx.Movement().String())

	tx, err = readStatementLine(one("[61]2412310102C10NTRFPAY1"), models.KindUnit)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), tx.SettlementDate)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), tx.TradeDate)

	tx, err = readStatementLine(one("[61]2501021231C10NTRFPAY1"), models.KindUnit)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), tx.TradeDate)

	_, err = readStatementLine(one("[61]241332C10NTRFPAY1"), models.KindUnit)
	var date *errs.DateFormatError
	require.True(t, errors.As(err, &date))

	_, err = readStatementLine(one("[61]240101C10,5NTRFPAY1"), models.KindUnit)
	var typeErr *errs.TypeError
	require.True(t, errors.As(err, &typeErr))
}

func TestReadBalance(t *testing.T) {
	b, err := readBalance(one("[60F]D240101AMOR12,00"), "opening balance", openingTags)
	require.NoError(t, err)
	assert.Equal(t, "60F", b.tag)
	assert.Equal(t, "AMOR/N12,00", b.quantity.String())

	_, err = readBalance(one("[62F]C240101AMOR12,00"), "opening balance", openingTags)
	var wrong *errs.WrongBalanceTagError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, "62F", wrong.Got)
	assert.Equal(t, []string{"60F", "60M"}, wrong.Expected)

	_, err = readBalance(one("[60M]X240101AMOR12,00"), "opening balance", openingTags)
	var bad *errs.BadBalanceFieldError
	require.True(t, errors.As(err, &bad))
	assert.Equal(t, "60M", bad.Tag)

	_, err = readBalance(one("[60F]C240230AMOR12,00"), "opening balance", openingTags)
	var date *errs.DateFormatError
	require.True(t, errors.As(err, &date))

	_, err = readBalance(one("60F C240101AMOR12,00"), "opening balance", openingTags)
	var syntax *errs.SyntaxError
	require.True(t, errors.As(err, &syntax))
	assert.Equal(t, "opening balance", syntax.Field)
}

func TestReaderAtEndOfInput(t *testing.T) {
	_, err := readReference(lines.New(nil))
	var end *errs.UnexpectedEndError
	require.True(t, errors.As(err, &end))
	assert.Equal(t, "reference", end.Expected)
}
