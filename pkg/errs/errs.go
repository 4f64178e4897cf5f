// Package errs defines the structured failures raised while reading a
// statement. Every error carries the 1-based source line it refers to and the
// positional arguments a message catalog needs to describe it.
package errs

import (
	"fmt"
	"strings"
)

// Kind identifies an error independently of its wording.
type Kind string

const (
	KindSyntax          Kind = "syntax"
	KindType            Kind = "type"
	KindCode            Kind = "code"
	KindContinuation    Kind = "continuation"
	KindBadBalance      Kind = "bad_balance"
	KindWrongBalanceTag Kind = "wrong_balance_tag"
	KindDateFormat      Kind = "date_format"
	KindHeader          Kind = "header"
	KindFooter          Kind = "footer"
	KindUnexpectedEnd   Kind = "unexpected_end"

	// Validation reasons. A ValidationError reports one of these as its kind.
	KindBalanceMismatch    Kind = "balance_mismatch"
	KindContinuityMismatch Kind = "continuity_mismatch"
	KindKindMismatch       Kind = "kind_mismatch"
	KindDuplicatePage      Kind = "duplicate_page"
	KindLayoutMismatch     Kind = "layout_mismatch"
)

// Kinds lists every kind a catalog has to describe.
var Kinds = []Kind{
	KindSyntax, KindType, KindCode, KindContinuation, KindBadBalance,
	KindWrongBalanceTag, KindDateFormat, KindHeader, KindFooter, KindUnexpectedEnd,
	KindBalanceMismatch, KindContinuityMismatch, KindKindMismatch,
	KindDuplicatePage, KindLayoutMismatch,
}

// Error is implemented by every error in this package.
type Error interface {
	error
	Kind() Kind
	Line() int
	Args() []any
}

// SyntaxError: a line does not match the grammar expected at its position.
type SyntaxError struct {
	At     int
	Field  string
	Format string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s field must match %q", e.At, e.Field, e.Format)
}
func (e *SyntaxError) Kind() Kind  { return KindSyntax }
func (e *SyntaxError) Line() int   { return e.At }
func (e *SyntaxError) Args() []any { return []any{e.Field, e.Format} }

// TypeError: a payload does not parse as the numeric type its kind implies.
type TypeError struct {
	At       int
	Expected string
	Got      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("line %d: %q is not a valid %s", e.At, e.Got, e.Expected)
}
func (e *TypeError) Kind() Kind  { return KindType }
func (e *TypeError) Line() int   { return e.At }
func (e *TypeError) Args() []any { return []any{e.Got, e.Expected} }

// CodeError: the declared quantity kind is not recognised.
type CodeError struct {
	At      int
	Got     string
	Allowed []string
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("line %d: unknown code %q, expected one of %s", e.At, e.Got, strings.Join(e.Allowed, ", "))
}
func (e *CodeError) Kind() Kind  { return KindCode }
func (e *CodeError) Line() int   { return e.At }
func (e *CodeError) Args() []any { return []any{e.Got, strings.Join(e.Allowed, ", ")} }

// ContinuationError: the pagination indicator is not recognised.
type ContinuationError struct {
	At      int
	Got     string
	Allowed []string
}

func (e *ContinuationError) Error() string {
	return fmt.Sprintf("line %d: unknown continuation indicator %q, expected one of %s", e.At, e.Got, strings.Join(e.Allowed, ", "))
}
func (e *ContinuationError) Kind() Kind  { return KindContinuation }
func (e *ContinuationError) Line() int   { return e.At }
func (e *ContinuationError) Args() []any { return []any{e.Got, strings.Join(e.Allowed, ", ")} }

// BadBalanceFieldError: a balance line fails its sub-grammar.
type BadBalanceFieldError struct {
	At  int
	Tag string
}

func (e *BadBalanceFieldError) Error() string {
	return fmt.Sprintf("line %d: malformed %s balance", e.At, e.Tag)
}
func (e *BadBalanceFieldError) Kind() Kind  { return KindBadBalance }
func (e *BadBalanceFieldError) Line() int   { return e.At }
func (e *BadBalanceFieldError) Args() []any { return []any{e.Tag} }

// WrongBalanceTagError: a balance line carries a tag outside the accepted set.
type WrongBalanceTagError struct {
	At       int
	Got      string
	Expected []string
}

func (e *WrongBalanceTagError) Error() string {
	return fmt.Sprintf("line %d: balance tag %q, expected one of %s", e.At, e.Got, strings.Join(e.Expected, ", "))
}
func (e *WrongBalanceTagError) Kind() Kind  { return KindWrongBalanceTag }
func (e *WrongBalanceTagError) Line() int   { return e.At }
func (e *WrongBalanceTagError) Args() []any { return []any{e.Got, strings.Join(e.Expected, ", ")} }

// DateFormatError: a date is not a valid calendar day.
type DateFormatError struct {
	At    int
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid date %q", e.At, e.Value)
}
func (e *DateFormatError) Kind() Kind  { return KindDateFormat }
func (e *DateFormatError) Line() int   { return e.At }
func (e *DateFormatError) Args() []any { return []any{e.Value} }

// HeaderError: a message does not start with the "$" marker.
type HeaderError struct {
	At  int
	Got string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("line %d: start of message expected, got %q", e.At, e.Got)
}
func (e *HeaderError) Kind() Kind  { return KindHeader }
func (e *HeaderError) Line() int   { return e.At }
func (e *HeaderError) Args() []any { return []any{e.Got} }

// FooterError: a message body is not closed by the "@@" sentinel.
type FooterError struct {
	At  int
	Got string
}

func (e *FooterError) Error() string {
	return fmt.Sprintf("line %d: end of message expected, got %q", e.At, e.Got)
}
func (e *FooterError) Kind() Kind  { return KindFooter }
func (e *FooterError) Line() int   { return e.At }
func (e *FooterError) Args() []any { return []any{e.Got} }

// UnexpectedEndError: the input ran out while a rule still expected a line.
// At is the number of the last line of the input.
type UnexpectedEndError struct {
	At       int
	Expected string
}

func (e *UnexpectedEndError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("line %d: unexpected end of input", e.At)
	}
	return fmt.Sprintf("line %d: unexpected end of input, expected %s", e.At, e.Expected)
}
func (e *UnexpectedEndError) Kind() Kind  { return KindUnexpectedEnd }
func (e *UnexpectedEndError) Line() int   { return e.At }
func (e *UnexpectedEndError) Args() []any { return []any{e.Expected} }

// ValidationError: a balance reconciliation failed. Subject names the ISIN,
// page or reference that did not reconcile; Reason is one of the mismatch
// kinds above.
type ValidationError struct {
	At      int
	Subject string
	Reason  Kind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.At, e.Subject, strings.ReplaceAll(string(e.Reason), "_", " "))
}
func (e *ValidationError) Kind() Kind  { return e.Reason }
func (e *ValidationError) Line() int   { return e.At }
func (e *ValidationError) Args() []any { return []any{e.Subject} }
