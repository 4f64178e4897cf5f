package messages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/secstmt/pkg/errs"
)

func samples() []errs.Error {
	return []errs.Error{
		&errs.SyntaxError{At: 1, Field: "reference", Format: "[20]<alphanumeric>"},
		&errs.TypeError{At: 2, Expected: "integer", Got: "1,5"},
		&errs.CodeError{At: 3, Got: "XXXX", Allowed: []string{"UNIT", "FAMT", "AMOR"}},
		&errs.ContinuationError{At: 4, Got: "NEXT", Allowed: []string{"ONLY", "MORE", "LAST"}},
		&errs.BadBalanceFieldError{At: 5, Tag: "60F"},
		&errs.WrongBalanceTagError{At: 6, Got: "64", Expected: []string{"62F", "62M"}},
		&errs.DateFormatError{At: 7, Value: "240231"},
		&errs.HeaderError{At: 8, Got: "[M]543"},
		&errs.FooterError{At: 9, Got: "$"},
		&errs.UnexpectedEndError{At: 10, Expected: "quantity"},
		&errs.ValidationError{At: 11, Subject: "US0378331005", Reason: errs.KindBalanceMismatch},
		&errs.ValidationError{At: 12, Subject: "2", Reason: errs.KindContinuityMismatch},
		&errs.ValidationError{At: 13, Subject: "2", Reason: errs.KindKindMismatch},
		&errs.ValidationError{At: 14, Subject: "2", Reason: errs.KindDuplicatePage},
		&errs.ValidationError{At: 15, Subject: "REF1", Reason: errs.KindLayoutMismatch},
	}
}

func TestEveryKindFormatsCleanly(t *testing.T) {
	c := Default()
	for _, e := range samples() {
		for _, lang := range []Language{Spanish, English} {
			msg := c.Describe(e, lang)
			assert.NotContains(t, msg, "%!", "%s/%s: %s", e.Kind(), lang, msg)
			assert.Contains(t, msg, fmt.Sprint(e.Line()), "%s/%s: %s", e.Kind(), lang, msg)
		}
	}
}

func TestDescribe(t *testing.T) {
	c := Default()
	err := fmt.Errorf("failed to process file: %w",
		&errs.ValidationError{At: 11, Subject: "US0378331005", Reason: errs.KindBalanceMismatch})

	assert.Equal(t,
		"Validation error at line 11. Opening and closing balances don't match the movements of 'US0378331005'.",
		c.Describe(err, English))
	assert.True(t, strings.HasPrefix(c.Describe(err, Spanish), "Error de validación en la línea 11."))

	assert.Equal(t, "Error at line 0: boom", c.Describe(fmt.Errorf("boom"), English))
	assert.Equal(t, "", c.Describe(nil, English))
}

func TestFormat(t *testing.T) {
	assert.Equal(t,
		"Syntax error at line 4. The 'sender' field must have the format '[S]<BIC>'.",
		Default().Format(errs.KindSyntax, English, 4, "sender", "[S]<BIC>"))
}

func TestTypeMessageNamesValue(t *testing.T) {
	e := &errs.TypeError{At: 9, Expected: "integer", Got: "1,5"}
	assert.Equal(t, "Error at line 9. The value '1,5' must be of type integer.", Default().Describe(e, English))
	assert.Equal(t, "Error en la línea 9. El valor '1,5' debe ser de tipo integer.", Default().Describe(e, Spanish))
}

func TestLoadRequiresEveryKind(t *testing.T) {
	_, err := Load([]byte("syntax:\n  es: a\n  en: b\n"))
	require.Error(t, err)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("header:\n  en: \"Line %d: no '$' marker before '%s'.\"\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Line 2: no '$' marker before 'x'.", c.Describe(&errs.HeaderError{At: 2, Got: "x"}, English))
	assert.Equal(t, Default().Template(errs.KindHeader, Spanish), c.Template(errs.KindHeader, Spanish))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"":        Spanish,
		"0":       Spanish,
		"1":       English,
		"es":      Spanish,
		"es-AR":   Spanish,
		"en":      English,
		"en-GB":   English,
		"English": English,
	}
	for in, want := range tests {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLanguage("not a language!")
	require.Error(t, err)
	_, err = ParseLanguage("ja")
	require.Error(t, err)
}
