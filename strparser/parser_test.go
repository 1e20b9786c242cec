package strparser_test

import (
	"testing"

	"github.com/MichalStehlikCz/common-sub000/strparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CURSOR PRIMITIVES
// =============================================================================

func TestParser_PeekNextCurrent(t *testing.T) {
	p := strparser.New("ab")

	_, err := p.Current()
	assert.ErrorIs(t, err, strparser.ErrInvalidPosition, "nothing consumed yet")

	c, err := p.Peek()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), c)
	assert.Equal(t, 0, p.Pos(), "peek must not advance")

	c, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), c)
	c, err = p.Current()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), c)

	_, _ = p.Next()
	assert.False(t, p.HasNext())

	_, err = p.Peek()
	assert.ErrorIs(t, err, strparser.ErrOutOfRange)
	_, err = p.Next()
	assert.ErrorIs(t, err, strparser.ErrEndOfInput)
	assert.ErrorIs(t, err, strparser.ErrGrammar)
}

func TestParser_SetPos(t *testing.T) {
	p := strparser.New("abc")
	require.NoError(t, p.SetPos(2))
	assert.Equal(t, 2, p.Pos())
	require.NoError(t, p.SetPos(3), "end of text is a valid position")

	assert.ErrorIs(t, p.SetPos(-1), strparser.ErrInvalidPosition)
	assert.ErrorIs(t, p.SetPos(4), strparser.ErrInvalidPosition)
	assert.Equal(t, 3, p.Pos(), "failed SetPos leaves cursor alone")
}

func TestParser_OnText(t *testing.T) {
	p := strparser.New("HelloWorld")

	assert.False(t, p.OnText("hello"))
	assert.Equal(t, 0, p.Pos())
	assert.True(t, p.IsOnTextIgnoreCase("hello"))
	assert.Equal(t, 0, p.Pos(), "probe must not advance")
	assert.True(t, p.OnTextIgnoreCase("hello"))
	assert.Equal(t, 5, p.Pos())

	assert.True(t, p.IsOnText("World"))
	assert.False(t, p.OnText("WorldWide"), "longer than remaining input")
	assert.True(t, p.OnText("World"))
	assert.NoError(t, p.ExpectEnd())
}

// =============================================================================
// INTEGER READING
// =============================================================================

func TestParser_ReadUnsignedInt(t *testing.T) {
	t.Run("reads digits between bounds", func(t *testing.T) {
		p := strparser.New("ab12cdefg")
		require.NoError(t, p.SetPos(2))
		v, err := p.ReadUnsignedInt(2, 4)
		require.NoError(t, err)
		assert.Equal(t, 12, v)
		assert.Equal(t, 4, p.Pos())
	})

	t.Run("stops at max digits", func(t *testing.T) {
		p := strparser.New("123456")
		v, err := p.ReadUnsignedInt(1, 4)
		require.NoError(t, err)
		assert.Equal(t, 1234, v)
		assert.Equal(t, 4, p.Pos())
	})

	t.Run("too few digits", func(t *testing.T) {
		p := strparser.New("ab1cdefg")
		require.NoError(t, p.SetPos(2))
		_, err := p.ReadUnsignedInt(2, 4)
		assert.ErrorIs(t, err, strparser.ErrTooFewDigits)
		assert.Equal(t, 3, strparser.Position(err))
	})

	t.Run("no digit at all", func(t *testing.T) {
		_, err := strparser.New("x").ReadUnsignedInt(1, 2)
		assert.ErrorIs(t, err, strparser.ErrInvalidDigit)
	})

	t.Run("end of input", func(t *testing.T) {
		_, err := strparser.New("").ReadUnsignedInt(1, 2)
		assert.ErrorIs(t, err, strparser.ErrEndOfInput)
	})

	t.Run("overflow past int32", func(t *testing.T) {
		_, err := strparser.New("2147483648").ReadUnsignedInt(1, 10)
		assert.ErrorIs(t, err, strparser.ErrOverflow)

		v, err := strparser.New("2147483647").ReadUnsignedInt(1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2147483647, v)
	})

	t.Run("invalid bounds panic", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = strparser.New("1").ReadUnsignedInt(3, 2) })
	})
}

func TestParser_ReadInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		min, max int
		mode     strparser.SignMode
		want     int
		wantPos  int
		wantErr  error
	}{
		{"mandatory with sign", "+12x", 3, 3, strparser.SignMandatory, 12, 3, nil},
		{"mandatory negative", "-05", 3, 3, strparser.SignMandatory, -5, 3, nil},
		{"mandatory missing", "12", 3, 3, strparser.SignMandatory, 0, 0, strparser.ErrMissingSign},
		{"included signed counts width", "-1234", 1, 3, strparser.SignIncluded, -12, 3, nil},
		{"included unsigned", "1234", 1, 3, strparser.SignIncluded, 123, 3, nil},
		{"extend excludes sign", "-1234", 1, 3, strparser.SignExtend, -123, 4, nil},
		{"none with sign", "-1", 1, 2, strparser.SignNone, 0, 0, strparser.ErrUnexpectedSign},
		{"none without sign", "42", 1, 2, strparser.SignNone, 42, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := strparser.New(tt.input)
			v, err := p.ReadInt(tt.min, tt.max, tt.mode)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.wantPos, p.Pos())
		})
	}
}

func TestParser_ExpectEnd(t *testing.T) {
	p := strparser.New("12ab")
	_, err := p.ReadUnsignedInt(1, 2)
	require.NoError(t, err)

	err = p.ExpectEnd()
	assert.ErrorIs(t, err, strparser.ErrTrailingInput)
	assert.NotErrorIs(t, err, strparser.ErrGrammar)
	assert.Equal(t, 2, strparser.Position(err))
	assert.Contains(t, err.Error(), `"ab"`)
}
