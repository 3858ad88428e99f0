package lexer_test

import (
	"testing"

	"github.com/jcorbin/snow/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []lexer.Token {
	t.Helper()
	lx := lexer.New(src)
	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			return toks
		}
	}
}

func Test_scanIntsAndOperators(t *testing.T) {
	toks := scanAll(t, "3 + 4")
	require.Len(t, toks, 4) // 3, +, 4, EOF
	assert.Equal(t, lexer.Int, toks[0].Kind)
	assert.EqualValues(t, 3, toks[0].Int)
	assert.Equal(t, lexer.Op, toks[1].Kind)
	assert.Equal(t, "+", toks[1].Text)
	assert.Equal(t, lexer.Int, toks[2].Kind)
	assert.EqualValues(t, 4, toks[2].Int)
	assert.Equal(t, lexer.EOF, toks[3].Kind)
}

func Test_scanIdentsAndKeywords(t *testing.T) {
	toks := scanAll(t, "try catch x_1 foo")
	require.Len(t, toks, 5)
	assert.Equal(t, lexer.KwTry, toks[0].Kind)
	assert.Equal(t, lexer.KwCatch, toks[1].Kind)
	assert.Equal(t, lexer.Ident, toks[2].Kind)
	assert.Equal(t, "x_1", toks[2].Text)
	assert.Equal(t, lexer.Ident, toks[3].Kind)
	assert.Equal(t, "foo", toks[3].Text)
}

func Test_scanTwoCharOperators(t *testing.T) {
	toks := scanAll(t, "a == b")
	require.Len(t, toks, 4)
	assert.Equal(t, "==", toks[1].Text)
}

func Test_scanPunctuation(t *testing.T) {
	toks := scanAll(t, "f(a: 1, *b); o.x[i] |x| @(1,2)")
	var texts []string
	for _, tk := range toks {
		if tk.Kind != lexer.EOF {
			texts = append(texts, tk.Text)
		}
	}
	assert.Contains(t, texts, "(")
	assert.Contains(t, texts, ":")
	assert.Contains(t, texts, "*")
	assert.Contains(t, texts, ".")
	assert.Contains(t, texts, "[")
	assert.Contains(t, texts, "|")
	assert.Contains(t, texts, "@")
}

func Test_scanTracksLineNumbers(t *testing.T) {
	toks := scanAll(t, "1\n2\n3")
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func Test_scanCaretControlRune(t *testing.T) {
	toks := scanAll(t, "^C")
	require.Len(t, toks, 2) // ^C, EOF
	assert.Equal(t, lexer.Int, toks[0].Kind)
	assert.EqualValues(t, 3, toks[0].Int, "^C is ETX, codepoint 3")
}

func Test_unexpectedRune(t *testing.T) {
	lx := lexer.New("$")
	_, err := lx.Next()
	require.Error(t, err)
	var ure *lexer.UnexpectedRuneError
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, '$', ure.Rune)
}
