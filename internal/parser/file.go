package parser

import (
	"github.com/sflang/sfl/internal/cst"
	"github.com/sflang/sfl/internal/lexer"
)

// ParseFile parses the file/definition grammar variant (spec.md
// §4.2): zero or more defs. Turning on fileMode changes how the
// expression-core's application fold treats an adjacent '(': it
// becomes a Call's argument list rather than a grouped-expression
// operand, the one behavioral difference the file variant asks for.
// An unmatched token outside a def is wrapped in an ErrorTree and
// skipped, one token at a time, per spec.md's top-level recovery rule.
func (p *Parser) ParseFile() *cst.Tree {
	p.fileMode = true
	p.allowEmptyArgs = true
	for !p.isEnd() {
		if p.at(lexer.KwDef) {
			p.parseDef()
			continue
		}
		p.advanceWithError("expected 'def'")
	}
	return buildTree(p.finish(cst.KindFile))
}

// parseDef parses 'def' name params? (':' type_expr)? ('{' statement '}')?.
func (p *Parser) parseDef() MarkClosed {
	m := p.open()
	p.advance() // 'def'
	p.expect(lexer.Name)

	if p.at(lexer.LParen) {
		p.parseParams()
	}
	if p.at(lexer.Colon) {
		p.advance()
		p.parseTypeExpr()
	}
	if p.at(lexer.LBrace) {
		p.parseBlock()
	}
	return p.close(m, cst.KindDefinition)
}

// parseParams parses '(' param (',' param)* ')'.
func (p *Parser) parseParams() MarkClosed {
	m := p.open()
	p.advance() // '('
	if !p.at(lexer.RParen) {
		p.parseParam()
		for p.at(lexer.Comma) {
			p.advance()
			p.parseParam()
		}
	}
	p.expect(lexer.RParen)
	return p.close(m, cst.KindParams)
}

// parseParam parses name (':' type_expr)?.
func (p *Parser) parseParam() MarkClosed {
	m := p.open()
	p.expect(lexer.Name)
	if p.at(lexer.Colon) {
		p.advance()
		p.parseTypeExpr()
	}
	return p.close(m, cst.KindParam)
}

// parseTypeExpr parses name ('->' type_expr)?, right-associative so
// 'int -> int -> bool' reads as 'int -> (int -> bool)'.
func (p *Parser) parseTypeExpr() MarkClosed {
	m := p.open()
	p.expect(lexer.Name)
	if p.at(lexer.Arrow) {
		p.advance()
		p.parseTypeExpr()
	}
	return p.close(m, cst.KindTypeExpr)
}

// parseBlock parses '{' statement '}'.
func (p *Parser) parseBlock() MarkClosed {
	m := p.open()
	p.advance() // '{'
	p.parseStatement()
	p.expect(lexer.RBrace)
	return p.close(m, cst.KindBlock)
}

// parseStatement parses expression (';' expression)*.
func (p *Parser) parseStatement() MarkClosed {
	m := p.open()
	p.parseExpression()
	for p.at(lexer.Semi) {
		p.advance()
		p.parseExpression()
	}
	return p.close(m, cst.KindStatement)
}

// parseCallArgs parses '(' arg (',' arg)* ')' as the trailing children
// of a Call node the caller already opened via openBefore (the callee
// expression is the Call's first child by construction). An empty
// argument list is accepted when allowEmptyArgs is set, a supplemented
// convenience the grammar's 'arg (',' arg)*' (at least one arg) does
// not itself provide for zero-parameter calls.
func (p *Parser) parseCallArgs() {
	p.advance() // '('

	if p.allowEmptyArgs && p.at(lexer.RParen) {
		argsOpen := p.open()
		p.close(argsOpen, cst.KindArgs)
		p.expect(lexer.RParen)
		return
	}

	argsOpen := p.open()
	p.parseArg()
	for p.at(lexer.Comma) {
		p.advance()
		p.parseArg()
	}
	p.close(argsOpen, cst.KindArgs)

	p.expect(lexer.RParen)
}

func (p *Parser) parseArg() MarkClosed {
	m := p.open()
	p.parseExpression()
	return p.close(m, cst.KindArg)
}
