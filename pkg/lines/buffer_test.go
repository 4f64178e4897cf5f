package lines

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/secstmt/pkg/errs"
)

func TestFromTextDropsBlankLinesAndKeepsNumbers(t *testing.T) {
	buf := FromText([]byte("$\r\n\n[M]543\n   \n@@"))

	require.Equal(t, 3, buf.Len())
	assert.Equal(t, 5, buf.LastLine())

	line, err := buf.Consume()
	require.NoError(t, err)
	assert.Equal(t, Line{Number: 1, Text: "$"}, line)

	line, ok := buf.Peek()
	require.True(t, ok)
	assert.Equal(t, Line{Number: 3, Text: "[M]543"}, line)

	line, err = buf.Consume()
	require.NoError(t, err)
	assert.Equal(t, 3, line.Number)

	line, err = buf.Consume()
	require.NoError(t, err)
	assert.Equal(t, Line{Number: 5, Text: "@@"}, line)
	assert.True(t, buf.Exhausted())
}

func TestConsumePastEnd(t *testing.T) {
	buf := New([]string{"$", "[M]543"})
	_, _ = buf.Consume()
	_, _ = buf.Consume()

	_, ok := buf.Peek()
	assert.False(t, ok)

	_, err := buf.Consume()
	var end *errs.UnexpectedEndError
	require.True(t, errors.As(err, &end))
	assert.Equal(t, 2, end.At)
}

func TestEmptyInput(t *testing.T) {
	buf := FromText(nil)
	assert.True(t, buf.Exhausted())
	assert.Equal(t, 0, buf.LastLine())
}
