package parser

import (
	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, *ParseError) {
	switch p.current().Type {
	case lexer.TokenVar:
		return p.parseVariableDeclaration()
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenBreak:
		tok := p.advance()
		p.match(lexer.TokenSemicolon)
		node := ast.NewBreakStatement()
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenContinue:
		tok := p.advance()
		p.match(lexer.TokenSemicolon)
		node := ast.NewContinueStatement()
		ast.SetSpan(node, tokenSpan(tok))
		return node, nil
	case lexer.TokenFunc:
		// A name after 'func' makes this a definition; otherwise the token
		// opens a function literal in an expression statement.
		if p.peekAt(1).Type == lexer.TokenIdent {
			return p.parseFunctionDefinition()
		}
		return p.parseExpressionStatement()
	case lexer.TokenObject:
		return p.parseObjectDefinition()
	case lexer.TokenLBrace:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (ast.Statement, *ParseError) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.match(lexer.TokenSemicolon)
	return expr, nil
}

func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, *ParseError) {
	start := p.advance() // 'var'
	nameTok, err := p.expectIdent("after 'var'")
	if err != nil {
		return nil, err
	}
	name := ast.NewIdentifier(nameTok.Lexeme)
	ast.SetSpan(name, tokenSpan(nameTok))

	// Optional type annotation, ignored.
	if p.match(lexer.TokenColon) {
		p.match(lexer.TokenIdent)
	}

	if _, err := p.expect(lexer.TokenAssign, "in var declaration"); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.match(lexer.TokenSemicolon)

	node := ast.NewVariableDeclaration(name, init)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseBlock() (*ast.BlockStatement, *ParseError) {
	start, err := p.expect(lexer.TokenLBrace, "to start block")
	if err != nil {
		return nil, err
	}
	body := make([]ast.Statement, 0)
	for !p.check(lexer.TokenRBrace) && !p.check(lexer.TokenEOF) {
		stmt, serr := p.parseStatement()
		if serr != nil {
			p.record(serr)
			p.synchronize()
			continue
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.TokenRBrace, "to close block"); err != nil {
		return nil, err
	}
	node := ast.NewBlockStatement(body)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, *ParseError) {
	start := p.advance() // 'if'
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenThen, "after if condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elifs []*ast.ElifClause
	for p.check(lexer.TokenElif) {
		elifTok := p.advance()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenThen, "after elif condition"); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clause := ast.NewElifClause(cond, block)
		p.annotate(clause, elifTok)
		elifs = append(elifs, clause)
	}

	var elseBody *ast.BlockStatement
	if p.match(lexer.TokenElse) {
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TokenEnd, "after if statement"); err != nil {
		return nil, err
	}
	node := ast.NewIfStatement(condition, body, elifs, elseBody)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, *ParseError) {
	start := p.advance() // 'while'
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDo, "after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEnd, "after while statement"); err != nil {
		return nil, err
	}
	node := ast.NewWhileStatement(condition, body)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseForStatement() (*ast.ForStatement, *ParseError) {
	start := p.advance() // 'for'
	nameTok, err := p.expectIdent("after 'for'")
	if err != nil {
		return nil, err
	}
	variable := ast.NewIdentifier(nameTok.Lexeme)
	ast.SetSpan(variable, tokenSpan(nameTok))

	if _, err := p.expect(lexer.TokenAssign, "after for variable"); err != nil {
		return nil, err
	}
	startExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenComma, "after for start expression"); err != nil {
		return nil, err
	}
	endExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var stepExpr ast.Expression
	if p.match(lexer.TokenComma) {
		stepExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenDo, "after for clauses"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEnd, "after for statement"); err != nil {
		return nil, err
	}
	node := ast.NewForStatement(variable, startExpr, endExpr, stepExpr, body)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, *ParseError) {
	start := p.advance() // 'return'
	var argument ast.Expression
	if !p.check(lexer.TokenSemicolon) && !p.check(lexer.TokenRBrace) &&
		!p.check(lexer.TokenEnd) && !p.check(lexer.TokenEOF) {
		var err *ParseError
		argument, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	p.match(lexer.TokenSemicolon)
	node := ast.NewReturnStatement(argument)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, *ParseError) {
	start := p.advance() // 'func'
	nameTok, err := p.expectIdent("after 'func'")
	if err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(nameTok.Lexeme)
	ast.SetSpan(id, tokenSpan(nameTok))

	params, err := p.parseParameterList("after function name")
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody("function")
	if err != nil {
		return nil, err
	}
	node := ast.NewFunctionDefinition(id, params, body)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseParameterList(openContext string) ([]*ast.FunctionParameter, *ParseError) {
	if _, err := p.expect(lexer.TokenLParen, openContext); err != nil {
		return nil, err
	}
	params := make([]*ast.FunctionParameter, 0)
	if !p.check(lexer.TokenRParen) {
		for {
			if !p.check(lexer.TokenIdent) {
				tok := p.current()
				return nil, errorAtToken(tok, "expected parameter name, got %s", tok.Type)
			}
			nameTok := p.advance()
			name := ast.NewIdentifier(nameTok.Lexeme)
			ast.SetSpan(name, tokenSpan(nameTok))

			// Optional type annotation, ignored.
			var typeName *ast.Identifier
			if p.match(lexer.TokenColon) {
				if p.check(lexer.TokenIdent) {
					typeTok := p.advance()
					typeName = ast.NewIdentifier(typeTok.Lexeme)
					ast.SetSpan(typeName, tokenSpan(typeTok))
				}
			}

			param := ast.NewFunctionParameter(name, typeName)
			p.annotate(param, nameTok)
			params = append(params, param)
			if p.match(lexer.TokenComma) {
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.TokenRParen, "after parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseFunctionBody parses the ':' block 'end' tail shared by function
// definitions, function literals and event handlers. A return type annotation
// may sit between the ')' and the body colon; it is parsed and ignored.
func (p *Parser) parseFunctionBody(kind string) (*ast.BlockStatement, *ParseError) {
	if _, err := p.expect(lexer.TokenColon, "before "+kind+" body"); err != nil {
		return nil, err
	}
	if p.check(lexer.TokenIdent) {
		p.advance()
		if _, err := p.expect(lexer.TokenColon, "before "+kind+" body"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEnd, "after "+kind+" body"); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseObjectDefinition() (*ast.ObjectDefinition, *ParseError) {
	start := p.advance() // 'object'
	nameTok, err := p.expectIdent("after 'object'")
	if err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(nameTok.Lexeme)
	ast.SetSpan(id, tokenSpan(nameTok))

	if _, err := p.expect(lexer.TokenColon, "after object name"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace, "to start object body"); err != nil {
		return nil, err
	}

	fields := make([]*ast.FieldDefinition, 0)
	methods := make([]*ast.FunctionDefinition, 0)
	var handlers []*ast.EventHandler
	for !p.check(lexer.TokenRBrace) && !p.check(lexer.TokenEOF) {
		switch p.current().Type {
		case lexer.TokenVar:
			decl, err := p.parseVariableDeclaration()
			if err != nil {
				return nil, err
			}
			field := ast.NewFieldDefinition(decl.Name, decl.Initializer)
			ast.SetSpan(field, decl.Span())
			fields = append(fields, field)
		case lexer.TokenFunc:
			method, err := p.parseFunctionDefinition()
			if err != nil {
				return nil, err
			}
			methods = append(methods, method)
		case lexer.TokenOn:
			handler, err := p.parseEventHandler()
			if err != nil {
				return nil, err
			}
			handlers = append(handlers, handler)
		default:
			tok := p.current()
			return nil, errorAtToken(tok, "expected 'var', 'func', or 'on' in object body, got %s", tok.Type)
		}
	}

	if _, err := p.expect(lexer.TokenRBrace, "to close object body"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEnd, "after object"); err != nil {
		return nil, err
	}
	node := ast.NewObjectDefinition(id, fields, methods, handlers)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseEventHandler() (*ast.EventHandler, *ParseError) {
	start := p.advance() // 'on'
	nameTok, err := p.expectIdent("after 'on'")
	if err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(nameTok.Lexeme)
	ast.SetSpan(id, tokenSpan(nameTok))

	params, err := p.parseParameterList("after event name")
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody("event")
	if err != nil {
		return nil, err
	}
	node := ast.NewEventHandler(id, params, body)
	p.annotate(node, start)
	return node, nil
}
