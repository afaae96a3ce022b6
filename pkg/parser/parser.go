// Package parser builds ArcScript ASTs by recursive descent. Syntax errors do
// not stop the parse: the parser records them and synchronizes at the next
// statement boundary, so one pass reports every independent error it can find.
package parser

import (
	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/lexer"
)

// Parser consumes a token stream produced by the lexer.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []*ParseError
}

// New wraps an already-tokenized stream for parsing.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []lexer.Token{{Type: lexer.TokenEOF, Line: 1, Column: 1, EndLine: 1, EndColumn: 1}}
	}
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses source in one call. Every lexical error surfaces
// as a ParseError at its position; when any are present the damaged token
// stream is not parsed, so syntax diagnostics never cascade from skipped
// characters.
func Parse(source string) (*ast.Program, []*ParseError) {
	tokens, lexErrs := lexer.Tokenize(source)
	if len(lexErrs) > 0 {
		errs := make([]*ParseError, len(lexErrs))
		for i, lexErr := range lexErrs {
			errs[i] = lexicalParseError(lexErr)
		}
		return nil, errs
	}
	return New(tokens).ParseProgram()
}

// ParseProgram parses the whole stream. On success the program is returned
// with a nil error slice; otherwise the program is nil and every collected
// diagnostic is returned, ordered by position of detection.
func (p *Parser) ParseProgram() (*ast.Program, []*ParseError) {
	body := make([]ast.Statement, 0)
	for p.current().Type != lexer.TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		body = append(body, stmt)
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	program := ast.NewProgram(body)
	end := p.current()
	ast.SetSpan(program, ast.Span{
		Start: ast.Position{Line: 1, Column: 1},
		End:   ast.Position{Line: end.Line, Column: end.Column},
	})
	return program, nil
}

// Token cursor

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	if i := p.pos + offset; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.current().Type == t
}

// match consumes the current token iff it has the given type.
func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or fails with a message built
// from the grammatical context, e.g. "expected ':' after object name, got
// 'end'".
func (p *Parser) expect(t lexer.TokenType, context string) (lexer.Token, *ParseError) {
	if p.check(t) {
		return p.advance(), nil
	}
	tok := p.current()
	return tok, errorAtToken(tok, "expected %s %s, got %s", t, context, tok.Type)
}

func (p *Parser) expectIdent(context string) (lexer.Token, *ParseError) {
	if p.check(lexer.TokenIdent) {
		return p.advance(), nil
	}
	tok := p.current()
	return tok, errorAtToken(tok, "expected identifier %s, got %s", context, tok.Type)
}

func (p *Parser) record(err *ParseError) {
	p.errors = append(p.errors, err)
}

// synchronize discards tokens up to the next likely statement boundary so
// parsing can resume after an error.
func (p *Parser) synchronize() {
	p.advance()
	for p.current().Type != lexer.TokenEOF {
		switch p.current().Type {
		case lexer.TokenSemicolon:
			p.advance()
			return
		case lexer.TokenVar, lexer.TokenFunc, lexer.TokenObject, lexer.TokenIf,
			lexer.TokenWhile, lexer.TokenFor, lexer.TokenReturn,
			lexer.TokenBreak, lexer.TokenContinue:
			return
		case lexer.TokenRBrace, lexer.TokenEnd:
			return
		}
		p.advance()
	}
}

// Span annotation

func tokenSpan(tok lexer.Token) ast.Span {
	return ast.Span{
		Start: ast.Position{Line: tok.Line, Column: tok.Column},
		End:   ast.Position{Line: tok.EndLine, Column: tok.EndColumn},
	}
}

func (p *Parser) annotate(node ast.Node, start lexer.Token) {
	prev := p.previous()
	ast.SetSpan(node, ast.Span{
		Start: ast.Position{Line: start.Line, Column: start.Column},
		End:   ast.Position{Line: prev.EndLine, Column: prev.EndColumn},
	})
}

func (p *Parser) annotateFrom(node ast.Node, start ast.Position) {
	prev := p.previous()
	ast.SetSpan(node, ast.Span{
		Start: start,
		End:   ast.Position{Line: prev.EndLine, Column: prev.EndColumn},
	})
}
