// Package lexer implements the rune-at-a-time token scanner backing the
// minimal front end (internal/compiler). It is not part of the object
// model or invocation engine — spec.md leaves parsing out of scope — but
// reuses the same rune-reading plumbing (internal/fileinput,
// internal/runeio) the rest of this runtime's ambient stack uses for
// source/line tracking.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jcorbin/snow/internal/fileinput"
	"github.com/jcorbin/snow/internal/runeio"
)

// Kind classifies one Token.
type Kind int

const (
	EOF Kind = iota
	Int
	Ident
	Op      // one of the fixed operator/punctuation strings below
	KwTry
	KwCatch
)

// Token is one scanned lexical unit.
type Token struct {
	Kind Kind
	Text string
	Int  int64
	Line int
}

var keywords = map[string]Kind{
	"try":   KwTry,
	"catch": KwCatch,
}

// multi-rune operators, checked longest-first.
var operators = []string{
	"==", "<=", ">=", "!=",
	"+", "-", "*", "/", "%", "<", ">", "=",
	"(", ")", "{", "}", "[", "]",
	",", ";", ":", "|", ".", "@",
}

// Lexer scans src into Tokens on demand.
type Lexer struct {
	in     fileinput.Input
	peeked []rune
	line   int
}

// New returns a Lexer reading from src.
func New(src string) *Lexer {
	l := &Lexer{line: 1}
	l.in.Queue = append(l.in.Queue, strings.NewReader(src))
	return l
}

func (l *Lexer) readRune() (rune, bool) {
	if n := len(l.peeked); n > 0 {
		r := l.peeked[n-1]
		l.peeked = l.peeked[:n-1]
		if r == '\n' {
			l.line++
		}
		return r, true
	}
	r, _, err := l.in.ReadRune()
	if err != nil {
		return 0, false
	}
	if r == '\n' {
		l.line++
	}
	return r, true
}

func (l *Lexer) unread(r rune) {
	if r == '\n' {
		l.line--
	}
	l.peeked = append(l.peeked, r)
}

// Next scans and returns the next Token, or a Kind==EOF Token at end of
// input.
func (l *Lexer) Next() (Token, error) {
	for {
		r, ok := l.readRune()
		if !ok {
			return Token{Kind: EOF, Line: l.line}, nil
		}
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.IsDigit(r) {
			return l.scanInt(r)
		}
		if isIdentStart(r) {
			return l.scanIdent(r)
		}
		if r == '^' {
			return l.scanCaretRune()
		}
		return l.scanOp(r)
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanInt(first rune) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if !unicode.IsDigit(r) {
			l.unread(r)
			break
		}
		sb.WriteRune(r)
	}
	n, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: Int, Text: sb.String(), Int: n, Line: l.line}, nil
}

func (l *Lexer) scanIdent(first rune) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if !isIdentCont(r) {
			l.unread(r)
			break
		}
		sb.WriteRune(r)
	}
	text := sb.String()
	if kw, ok := keywords[text]; ok {
		return Token{Kind: kw, Text: text, Line: l.line}, nil
	}
	return Token{Kind: Ident, Text: text, Line: l.line}, nil
}

// scanCaretRune scans a caret-form control-rune literal, e.g. "^C" for
// ETX, down to its codepoint via runeio.UnquoteRune/ControlWords, and
// hands it back as an Int token — so script source can name an
// otherwise-unrepresentable control character (for use with __echo__,
// say) without resorting to its raw byte.
func (l *Lexer) scanCaretRune() (Token, error) {
	second, ok := l.readRune()
	if !ok {
		return Token{}, &UnexpectedRuneError{Rune: '^', Line: l.line}
	}
	text := "^" + string(second)
	r, err := runeio.UnquoteRune(text)
	if err != nil {
		return Token{}, &UnexpectedRuneError{Rune: second, Line: l.line}
	}
	return Token{Kind: Int, Text: text, Int: int64(r), Line: l.line}, nil
}

func (l *Lexer) scanOp(first rune) (Token, error) {
	second, ok := l.readRune()
	if ok {
		two := string(first) + string(second)
		for _, op := range operators {
			if op == two {
				return Token{Kind: Op, Text: two, Line: l.line}, nil
			}
		}
		l.unread(second)
	}
	one := string(first)
	for _, op := range operators {
		if op == one {
			return Token{Kind: Op, Text: one, Line: l.line}, nil
		}
	}
	return Token{}, &UnexpectedRuneError{Rune: first, Line: l.line}
}

// UnexpectedRuneError reports a rune that starts no valid token.
type UnexpectedRuneError struct {
	Rune rune
	Line int
}

func (err *UnexpectedRuneError) Error() string {
	return "lexer: unexpected character " + strconv.QuoteRune(err.Rune)
}
