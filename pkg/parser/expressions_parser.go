package parser

import (
	"strconv"

	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/lexer"
)

// compoundOps maps a compound assignment token to the binary operator its
// desugaring applies.
var compoundOps = map[lexer.TokenType]string{
	lexer.TokenPlusAssign:  "+",
	lexer.TokenMinusAssign: "-",
	lexer.TokenStarAssign:  "*",
	lexer.TokenSlashAssign: "/",
}

func (p *Parser) parseExpression() (ast.Expression, *ParseError) {
	return p.parseAssignment()
}

// parseAssignment handles the lowest precedence level. Assignment is
// right-associative and its left side must be an identifier, member access
// or index expression. A compound form `x op= y` is rewritten here into
// `x = x op y`; the target node is shared between both sides of the rewrite,
// so its subexpressions evaluate once per side.
func (p *Parser) parseAssignment() (ast.Expression, *ParseError) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	binOp, compound := compoundOps[p.current().Type]
	if !compound && !p.check(lexer.TokenAssign) {
		return expr, nil
	}
	opTok := p.advance()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	target, ok := expr.(ast.AssignmentTarget)
	if !ok {
		return nil, errorAtToken(opTok, "invalid assignment target")
	}
	if compound {
		desugared := ast.NewBinaryExpression(binOp, expr, right)
		p.annotateFrom(desugared, expr.Span().Start)
		right = desugared
	}
	node := ast.NewAssignmentExpression(target, right)
	p.annotateFrom(node, expr.Span().Start)
	return node, nil
}

func (p *Parser) parseOr() (ast.Expression, *ParseError) {
	expr, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		node := ast.NewBinaryExpression("or", expr, right)
		p.annotateFrom(node, expr.Span().Start)
		expr = node
	}
	return expr, nil
}

func (p *Parser) parseAnd() (ast.Expression, *ParseError) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenAnd) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		node := ast.NewBinaryExpression("and", expr, right)
		p.annotateFrom(node, expr.Span().Start)
		expr = node
	}
	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expression, *ParseError) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.current().Type {
		case lexer.TokenEqual:
			op = "=="
		case lexer.TokenNotEqual:
			op = "!="
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		node := ast.NewBinaryExpression(op, expr, right)
		p.annotateFrom(node, expr.Span().Start)
		expr = node
	}
}

func (p *Parser) parseComparison() (ast.Expression, *ParseError) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.current().Type {
		case lexer.TokenLess:
			op = "<"
		case lexer.TokenLessEqual:
			op = "<="
		case lexer.TokenGreater:
			op = ">"
		case lexer.TokenGreaterEqual:
			op = ">="
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node := ast.NewBinaryExpression(op, expr, right)
		p.annotateFrom(node, expr.Span().Start)
		expr = node
	}
}

func (p *Parser) parseTerm() (ast.Expression, *ParseError) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.current().Type {
		case lexer.TokenPlus:
			op = "+"
		case lexer.TokenMinus:
			op = "-"
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node := ast.NewBinaryExpression(op, expr, right)
		p.annotateFrom(node, expr.Span().Start)
		expr = node
	}
}

func (p *Parser) parseFactor() (ast.Expression, *ParseError) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.current().Type {
		case lexer.TokenStar:
			op = "*"
		case lexer.TokenSlash:
			op = "/"
		case lexer.TokenPercent:
			op = "%"
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := ast.NewBinaryExpression(op, expr, right)
		p.annotateFrom(node, expr.Span().Start)
		expr = node
	}
}

func (p *Parser) parseUnary() (ast.Expression, *ParseError) {
	switch p.current().Type {
	case lexer.TokenMinus:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := ast.NewUnaryExpression(ast.UnaryOperatorNegate, operand)
		p.annotate(node, tok)
		return node, nil
	case lexer.TokenNot:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := ast.NewUnaryExpression(ast.UnaryOperatorNot, operand)
		p.annotate(node, tok)
		return node, nil
	default:
		return p.parsePower()
	}
}

// parsePower binds tighter than unary so -x ** 2 negates the power, while
// the right operand re-enters parseUnary to keep '**' right-associative and
// allow 2 ** -3.
func (p *Parser) parsePower() (ast.Expression, *ParseError) {
	expr, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TokenStarStar) {
		return expr, nil
	}
	p.advance()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	node := ast.NewBinaryExpression("**", expr, right)
	p.annotateFrom(node, expr.Span().Start)
	return node, nil
}

func (p *Parser) parsePostfix() (ast.Expression, *ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current().Type {
		case lexer.TokenLParen:
			p.advance()
			args := make([]ast.Expression, 0)
			if !p.check(lexer.TokenRParen) {
				for {
					arg, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if p.match(lexer.TokenComma) {
						continue
					}
					break
				}
			}
			if _, err := p.expect(lexer.TokenRParen, "after arguments"); err != nil {
				return nil, err
			}
			node := ast.NewFunctionCall(expr, args)
			p.annotateFrom(node, expr.Span().Start)
			expr = node
		case lexer.TokenDot:
			p.advance()
			if !p.check(lexer.TokenIdent) {
				tok := p.current()
				return nil, errorAtToken(tok, "expected field name after '.', got %s", tok.Type)
			}
			fieldTok := p.advance()
			member := ast.NewIdentifier(fieldTok.Lexeme)
			ast.SetSpan(member, tokenSpan(fieldTok))
			node := ast.NewMemberAccessExpression(expr, member)
			p.annotateFrom(node, expr.Span().Start)
			expr = node
		case lexer.TokenLBracket:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRBracket, "after index"); err != nil {
				return nil, err
			}
			node := ast.NewIndexExpression(expr, index)
			p.annotateFrom(node, expr.Span().Start)
			expr = node
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, *ParseError) {
	tok := p.current()
	switch tok.Type {
	case lexer.TokenInt:
		p.advance()
		value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, errorAtToken(tok, "invalid integer literal '%s'", tok.Lexeme)
		}
		node := ast.NewIntegerLiteral(value)
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenFloat:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, errorAtToken(tok, "invalid float literal '%s'", tok.Lexeme)
		}
		node := ast.NewFloatLiteral(value)
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenString:
		p.advance()
		node := ast.NewStringLiteral(tok.Lexeme)
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenTrue:
		p.advance()
		node := ast.NewBooleanLiteral(true)
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenFalse:
		p.advance()
		node := ast.NewBooleanLiteral(false)
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenNil:
		p.advance()
		node := ast.NewNilLiteral()
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenIdent:
		p.advance()
		node := ast.NewIdentifier(tok.Lexeme)
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen, "after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.TokenLBrace:
		return p.parseTableLiteral()
	case lexer.TokenFunc:
		return p.parseLambda()
	default:
		return nil, errorAtToken(tok, "unexpected %s in expression", tok.Type)
	}
}

// parseTableLiteral parses { entries }. An entry is either `key: value` with
// an identifier, string or integer key, or a bare expression keyed by its
// position at evaluation time. A trailing comma is allowed.
func (p *Parser) parseTableLiteral() (*ast.TableLiteral, *ParseError) {
	start := p.advance() // '{'
	entries := make([]*ast.TableEntry, 0)
	for !p.check(lexer.TokenRBrace) && !p.check(lexer.TokenEOF) {
		entryStart := p.current()
		var key ast.Expression
		switch {
		case p.check(lexer.TokenIdent) && p.peekAt(1).Type == lexer.TokenColon:
			keyTok := p.advance()
			p.advance() // ':'
			lit := ast.NewStringLiteral(keyTok.Lexeme)
			ast.SetSpan(lit, tokenSpan(keyTok))
			key = lit
		case p.check(lexer.TokenString) && p.peekAt(1).Type == lexer.TokenColon:
			keyTok := p.advance()
			p.advance() // ':'
			lit := ast.NewStringLiteral(keyTok.Lexeme)
			ast.SetSpan(lit, tokenSpan(keyTok))
			key = lit
		case p.check(lexer.TokenInt) && p.peekAt(1).Type == lexer.TokenColon:
			keyTok := p.advance()
			p.advance() // ':'
			value, err := strconv.ParseInt(keyTok.Lexeme, 10, 64)
			if err != nil {
				return nil, errorAtToken(keyTok, "invalid integer literal '%s'", keyTok.Lexeme)
			}
			lit := ast.NewIntegerLiteral(value)
			ast.SetSpan(lit, tokenSpan(keyTok))
			key = lit
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entry := ast.NewTableEntry(key, value)
		p.annotate(entry, entryStart)
		entries = append(entries, entry)

		if !p.match(lexer.TokenComma) {
			break
		}
	}
	if _, err := p.expect(lexer.TokenRBrace, "to close table literal"); err != nil {
		return nil, err
	}
	node := ast.NewTableLiteral(entries)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseLambda() (*ast.LambdaExpression, *ParseError) {
	start := p.advance() // 'func'
	var name *ast.Identifier
	openContext := "after 'func'"
	if p.check(lexer.TokenIdent) {
		nameTok := p.advance()
		name = ast.NewIdentifier(nameTok.Lexeme)
		ast.SetSpan(name, tokenSpan(nameTok))
		openContext = "after function name"
	}
	params, err := p.parseParameterList(openContext)
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody("function")
	if err != nil {
		return nil, err
	}
	node := ast.NewLambdaExpression(name, params, body)
	p.annotate(node, start)
	return node, nil
}
