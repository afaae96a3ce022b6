// Package lexer converts ArcScript source text into a token stream with
// 1-based line/column positions for every token.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error is a lexical error anchored to the start of the offending token.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Lexer scans ArcScript source text rune by rune.
type Lexer struct {
	src  string
	pos  int // byte offset of the next rune
	line int
	col  int

	startLine int // position of the token being scanned
	startCol  int
}

// New returns a lexer over the given source text.
func New(source string) *Lexer {
	return &Lexer{src: source, line: 1, col: 1}
}

// Tokenize scans the entire source and returns the token stream, always
// terminated by an EOF token, plus every lexical error found. An error does
// not abort the scan: the offending input is skipped and scanning resumes,
// so independent errors later in the file still surface with their own
// positions.
func Tokenize(source string) ([]Token, []*Error) {
	l := New(source)
	var tokens []Token
	var errs []*Error
	for {
		tok, err := l.next()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, errs
		}
	}
}

func (l *Lexer) errorf(format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    l.startLine,
		Column:  l.startCol,
	}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, true
}

func (l *Lexer) advance() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

// match consumes the next rune iff it equals want.
func (l *Lexer) match(want rune) bool {
	if r, ok := l.peek(); ok && r == want {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) makeToken(t TokenType, lexeme string) Token {
	return Token{
		Type:      t,
		Lexeme:    lexeme,
		Line:      l.startLine,
		Column:    l.startCol,
		EndLine:   l.line,
		EndColumn: l.col,
	}
}

// next scans and returns the next token, skipping whitespace and comments.
func (l *Lexer) next() (Token, *Error) {
	for {
		l.startLine = l.line
		l.startCol = l.col
		r, ok := l.advance()
		if !ok {
			return l.makeToken(TokenEOF, ""), nil
		}

		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		case '(':
			return l.makeToken(TokenLParen, "("), nil
		case ')':
			return l.makeToken(TokenRParen, ")"), nil
		case '{':
			return l.makeToken(TokenLBrace, "{"), nil
		case '}':
			return l.makeToken(TokenRBrace, "}"), nil
		case '[':
			return l.makeToken(TokenLBracket, "["), nil
		case ']':
			return l.makeToken(TokenRBracket, "]"), nil
		case ',':
			return l.makeToken(TokenComma, ","), nil
		case '.':
			return l.makeToken(TokenDot, "."), nil
		case ':':
			return l.makeToken(TokenColon, ":"), nil
		case ';':
			return l.makeToken(TokenSemicolon, ";"), nil
		case '+':
			if l.match('=') {
				return l.makeToken(TokenPlusAssign, "+="), nil
			}
			return l.makeToken(TokenPlus, "+"), nil
		case '-':
			if l.match('=') {
				return l.makeToken(TokenMinusAssign, "-="), nil
			}
			return l.makeToken(TokenMinus, "-"), nil
		case '*':
			if l.match('*') {
				return l.makeToken(TokenStarStar, "**"), nil
			}
			if l.match('=') {
				return l.makeToken(TokenStarAssign, "*="), nil
			}
			return l.makeToken(TokenStar, "*"), nil
		case '/':
			if l.match('/') {
				l.skipLineComment()
				continue
			}
			if l.match('*') {
				if err := l.skipBlockComment(); err != nil {
					return Token{}, err
				}
				continue
			}
			if l.match('=') {
				return l.makeToken(TokenSlashAssign, "/="), nil
			}
			return l.makeToken(TokenSlash, "/"), nil
		case '%':
			return l.makeToken(TokenPercent, "%"), nil
		case '=':
			if l.match('=') {
				return l.makeToken(TokenEqual, "=="), nil
			}
			return l.makeToken(TokenAssign, "="), nil
		case '!':
			if l.match('=') {
				return l.makeToken(TokenNotEqual, "!="), nil
			}
			return l.makeToken(TokenNot, "!"), nil
		case '<':
			if l.match('=') {
				return l.makeToken(TokenLessEqual, "<="), nil
			}
			return l.makeToken(TokenLess, "<"), nil
		case '>':
			if l.match('=') {
				return l.makeToken(TokenGreaterEqual, ">="), nil
			}
			return l.makeToken(TokenGreater, ">"), nil
		case '"':
			return l.scanString()
		}

		if isDigit(r) {
			return l.scanNumber(r), nil
		}
		if isIdentStart(r) {
			return l.scanIdentifier(r), nil
		}
		return Token{}, l.errorf("unexpected character %q", r)
	}
}

func (l *Lexer) skipLineComment() {
	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			return
		}
		l.advance()
	}
}

// skipBlockComment consumes up to the closing */. Block comments do not nest.
func (l *Lexer) skipBlockComment() *Error {
	for {
		r, ok := l.advance()
		if !ok {
			return l.errorf("unterminated block comment")
		}
		if r == '*' && l.match('/') {
			return nil
		}
	}
}

// scanString decodes a double-quoted string literal. The recognized escapes
// are \n, \t, \r, \" and \\; any other escaped character stands for itself.
func (l *Lexer) scanString() (Token, *Error) {
	var out strings.Builder
	for {
		r, ok := l.advance()
		if !ok {
			return Token{}, l.errorf("unterminated string literal")
		}
		switch r {
		case '"':
			return l.makeToken(TokenString, out.String()), nil
		case '\\':
			esc, ok := l.advance()
			if !ok {
				return Token{}, l.errorf("unterminated string literal")
			}
			switch esc {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			case '"':
				out.WriteRune('"')
			case '\\':
				out.WriteRune('\\')
			default:
				out.WriteRune(esc)
			}
		default:
			out.WriteRune(r)
		}
	}
}

// scanNumber reads an integer or, when a fractional part follows, a float.
func (l *Lexer) scanNumber(first rune) Token {
	var out strings.Builder
	out.WriteRune(first)
	for {
		r, ok := l.peek()
		if !ok || !isDigit(r) {
			break
		}
		l.advance()
		out.WriteRune(r)
	}
	if r, ok := l.peek(); ok && r == '.' {
		// Only consume the dot when digits follow, so "t.x" style member
		// access after an integer index stays intact.
		if next, ok := l.peekSecond(); ok && isDigit(next) {
			l.advance()
			out.WriteRune('.')
			for {
				r, ok := l.peek()
				if !ok || !isDigit(r) {
					break
				}
				l.advance()
				out.WriteRune(r)
			}
			return l.makeToken(TokenFloat, out.String())
		}
	}
	return l.makeToken(TokenInt, out.String())
}

func (l *Lexer) peekSecond() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if l.pos+size >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+size:])
	return r, true
}

func (l *Lexer) scanIdentifier(first rune) Token {
	var out strings.Builder
	out.WriteRune(first)
	for {
		r, ok := l.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		l.advance()
		out.WriteRune(r)
	}
	name := out.String()
	if t, ok := keywords[name]; ok {
		return l.makeToken(t, name)
	}
	return l.makeToken(TokenIdent, name)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }
