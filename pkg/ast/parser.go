// Copyright the go-cella authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// SyntaxError reports a problem encountered whilst parsing a contract file.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// END_OF signals "end of file"
const END_OF uint = 0

// IDENTIFIER signals a name.
const IDENTIFIER uint = 1

// NUMBER signals an integer literal.
const NUMBER uint = 2

// FLOAT signals a floating-point literal.
const FLOAT uint = 3

// STRING signals a string literal.
const STRING uint = 4

// OPERATOR signals a punctuation or operator token.
const OPERATOR uint = 5

type token struct {
	kind uint
	text string
	pos  Position
}

// ParseProgram parses a complete contract file into a program.
func ParseProgram(input string) (*Program, error) {
	parser, err := newParser(input)
	if err != nil {
		return nil, err
	}
	//
	program := &Program{}
	//
	for !parser.done() {
		switch {
		case parser.matchesKeyword("record"):
			record, err := parser.parseRecord()
			if err != nil {
				return nil, err
			}
			//
			program.Records = append(program.Records, record)
		case parser.matchesKeyword("cell"):
			cell, err := parser.parseCell()
			if err != nil {
				return nil, err
			}
			//
			program.Cells = append(program.Cells, cell)
		default:
			return nil, parser.syntaxError("expected record or cell declaration")
		}
	}
	//
	return program, nil
}

// ParseExpr parses a single expression, such as a constraint given on the
// command line.
func ParseExpr(input string) (Expr, error) {
	parser, err := newParser(input)
	if err != nil {
		return nil, err
	}
	//
	expr, err := parser.parseExpr()
	if err != nil {
		return nil, err
	}
	//
	if !parser.done() {
		return nil, parser.syntaxError("unexpected trailing input")
	}
	//
	return expr, nil
}

// ===================================================================
// Lexer
// ===================================================================

var operators = []string{
	"<=", ">=", "==", "!=", "->",
	"(", ")", "{", "}", ",", ":", ";",
	"<", ">", "+", "-", "*", "/", "%",
}

func scan(input string) ([]token, error) {
	var (
		tokens []token
		line   = 1
		column = 1
	)
	//
	for i := 0; i < len(input); {
		c := rune(input[i])
		pos := Position{line, column}
		//
		switch {
		case c == '\n':
			line, column = line+1, 1
			i++
		case unicode.IsSpace(c):
			column++
			i++
		case unicode.IsDigit(c):
			j := i
			kind := NUMBER
			//
			for j < len(input) && (unicode.IsDigit(rune(input[j])) || input[j] == '.') {
				if input[j] == '.' {
					kind = FLOAT
				}
				//
				j++
			}
			//
			tokens = append(tokens, token{kind, input[i:j], pos})
			column += j - i
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			//
			for j < len(input) && (unicode.IsLetter(rune(input[j])) || unicode.IsDigit(rune(input[j])) || input[j] == '_') {
				j++
			}
			//
			tokens = append(tokens, token{IDENTIFIER, input[i:j], pos})
			column += j - i
			i = j
		case c == '"':
			j := i + 1
			//
			for j < len(input) && input[j] != '"' {
				j++
			}
			//
			if j == len(input) {
				return nil, &SyntaxError{pos, "unterminated string literal"}
			}
			//
			tokens = append(tokens, token{STRING, input[i+1 : j], pos})
			column += j - i + 1
			i = j + 1
		case c == '/' && strings.HasPrefix(input[i:], "//"):
			// line comment
			for i < len(input) && input[i] != '\n' {
				i++
			}
		default:
			matched := false
			//
			for _, op := range operators {
				if strings.HasPrefix(input[i:], op) {
					tokens = append(tokens, token{OPERATOR, op, pos})
					column += len(op)
					i += len(op)
					matched = true
					//
					break
				}
			}
			//
			if !matched {
				return nil, &SyntaxError{pos, fmt.Sprintf("unknown character %q", c)}
			}
		}
	}
	//
	tokens = append(tokens, token{END_OF, "", Position{line, column}})
	//
	return tokens, nil
}

// ===================================================================
// Parser
// ===================================================================

type parser struct {
	tokens []token
	index  int
}

func newParser(input string) (*parser, error) {
	tokens, err := scan(input)
	if err != nil {
		return nil, err
	}
	//
	return &parser{tokens, 0}, nil
}

func (p *parser) done() bool {
	return p.lookahead().kind == END_OF
}

func (p *parser) lookahead() token {
	return p.tokens[p.index]
}

func (p *parser) next() token {
	tok := p.tokens[p.index]
	//
	if tok.kind != END_OF {
		p.index++
	}
	//
	return tok
}

func (p *parser) matchesKeyword(name string) bool {
	tok := p.lookahead()
	//
	return tok.kind == IDENTIFIER && tok.text == name
}

func (p *parser) matchesOperator(op string) bool {
	tok := p.lookahead()
	//
	return tok.kind == OPERATOR && tok.text == op
}

func (p *parser) acceptOperator(op string) bool {
	if p.matchesOperator(op) {
		p.next()
		//
		return true
	}
	//
	return false
}

func (p *parser) expectOperator(op string) error {
	if !p.acceptOperator(op) {
		return p.syntaxError(fmt.Sprintf("expected %q", op))
	}
	//
	return nil
}

func (p *parser) expectKeyword(name string) error {
	if !p.matchesKeyword(name) {
		return p.syntaxError(fmt.Sprintf("expected %q", name))
	}
	//
	p.next()
	//
	return nil
}

func (p *parser) expectIdentifier() (string, error) {
	tok := p.lookahead()
	//
	if tok.kind != IDENTIFIER {
		return "", p.syntaxError("expected identifier")
	}
	//
	p.next()
	//
	return tok.text, nil
}

func (p *parser) syntaxError(msg string) error {
	return &SyntaxError{p.lookahead().pos, msg}
}

// record := "record" IDENT "{" field* "}"
// field := IDENT ":" IDENT ("where" expr ("," expr)*)?
func (p *parser) parseRecord() (*Record, error) {
	pos := p.lookahead().pos
	//
	if err := p.expectKeyword("record"); err != nil {
		return nil, err
	}
	//
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectOperator("{"); err != nil {
		return nil, err
	}
	//
	record := &Record{Name: name, Pos: pos}
	//
	for !p.matchesOperator("}") {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		//
		record.Fields = append(record.Fields, field)
	}
	//
	p.next()
	//
	return record, nil
}

func (p *parser) parseField() (*Field, error) {
	pos := p.lookahead().pos
	//
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectOperator(":"); err != nil {
		return nil, err
	}
	//
	typ, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	//
	field := &Field{Name: name, Type: typ, Pos: pos}
	//
	if p.matchesKeyword("where") {
		p.next()
		//
		if field.Where, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	//
	p.acceptOperator(";")
	//
	return field, nil
}

// cell := "cell" IDENT "(" params ")" ("where" exprs)? ("uses" effects)? block
func (p *parser) parseCell() (*Cell, error) {
	pos := p.lookahead().pos
	//
	if err := p.expectKeyword("cell"); err != nil {
		return nil, err
	}
	//
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	//
	cell := &Cell{Name: name, Pos: pos}
	//
	if err := p.expectOperator("("); err != nil {
		return nil, err
	}
	//
	for !p.matchesOperator(")") {
		if len(cell.Params) != 0 {
			if err := p.expectOperator(","); err != nil {
				return nil, err
			}
		}
		//
		pname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		//
		if err := p.expectOperator(":"); err != nil {
			return nil, err
		}
		//
		ptype, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		//
		cell.Params = append(cell.Params, &Param{pname, ptype})
	}
	//
	p.next()
	//
	if p.matchesKeyword("where") {
		p.next()
		//
		if cell.Where, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	//
	for p.matchesKeyword("uses") {
		clause, err := p.parseEffectClause()
		if err != nil {
			return nil, err
		}
		//
		cell.Uses = append(cell.Uses, clause)
	}
	//
	if cell.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	//
	return cell, nil
}

// effect := "uses" IDENT "<=" NUMBER
func (p *parser) parseEffectClause() (*EffectClause, error) {
	pos := p.lookahead().pos
	//
	if err := p.expectKeyword("uses"); err != nil {
		return nil, err
	}
	//
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectOperator("<="); err != nil {
		return nil, err
	}
	//
	tok := p.lookahead()
	if tok.kind != NUMBER {
		return nil, p.syntaxError("expected effect budget")
	}
	//
	p.next()
	//
	max, err := strconv.ParseInt(tok.text, 10, 64)
	if err != nil {
		return nil, &SyntaxError{tok.pos, "invalid effect budget"}
	}
	//
	return &EffectClause{name, max, pos}, nil
}

func (p *parser) parseBlock() ([]Stmt, error) {
	if err := p.expectOperator("{"); err != nil {
		return nil, err
	}
	//
	var stmts []Stmt
	//
	for !p.matchesOperator("}") {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		//
		stmts = append(stmts, stmt)
	}
	//
	p.next()
	//
	return stmts, nil
}

func (p *parser) parseStmt() (Stmt, error) {
	if p.matchesKeyword("if") {
		return p.parseIfStmt()
	}
	//
	pos := p.lookahead().pos
	//
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	//
	call, err := p.parseCallTail(name)
	if err != nil {
		return nil, err
	}
	//
	p.acceptOperator(";")
	//
	return CallStmt{call, pos}, nil
}

func (p *parser) parseIfStmt() (Stmt, error) {
	pos := p.lookahead().pos
	//
	p.next()
	//
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	//
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	//
	stmt := IfStmt{Cond: cond, Pos: pos, Then: then}
	//
	if p.matchesKeyword("else") {
		p.next()
		//
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	//
	return stmt, nil
}

func (p *parser) parseExprList() ([]Expr, error) {
	var exprs []Expr
	//
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		exprs = append(exprs, expr)
		//
		if !p.acceptOperator(",") {
			return exprs, nil
		}
	}
}

// expr := conjunct ("or" conjunct)*
func (p *parser) parseExpr() (Expr, error) {
	expr, err := p.parseConjunct()
	if err != nil {
		return nil, err
	}
	//
	for p.matchesKeyword("or") {
		p.next()
		//
		rhs, err := p.parseConjunct()
		if err != nil {
			return nil, err
		}
		//
		expr = Binary{BinOr, expr, rhs}
	}
	//
	return expr, nil
}

// conjunct := condition ("and" condition)*
func (p *parser) parseConjunct() (Expr, error) {
	expr, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	//
	for p.matchesKeyword("and") {
		p.next()
		//
		rhs, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		//
		expr = Binary{BinAnd, expr, rhs}
	}
	//
	return expr, nil
}

var conditions = map[string]BinOp{
	"<": BinLt, ">": BinGt, "<=": BinLtEq, ">=": BinGtEq, "==": BinEq, "!=": BinNotEq,
}

// condition := arith (CMPOP arith)?
func (p *parser) parseCondition() (Expr, error) {
	lhs, err := p.parseArithTerm()
	if err != nil {
		return nil, err
	}
	//
	tok := p.lookahead()
	//
	if tok.kind == OPERATOR {
		if op, ok := conditions[tok.text]; ok {
			p.next()
			//
			rhs, err := p.parseArithTerm()
			if err != nil {
				return nil, err
			}
			//
			return Binary{op, lhs, rhs}, nil
		}
	}
	//
	return lhs, nil
}

// arith := factor (("+"|"-") factor)*
func (p *parser) parseArithTerm() (Expr, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	//
	for p.matchesOperator("+") || p.matchesOperator("-") {
		op := BinAdd
		//
		if p.next().text == "-" {
			op = BinSub
		}
		//
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		//
		lhs = Binary{op, lhs, rhs}
	}
	//
	return lhs, nil
}

// factor := unit (("*"|"/"|"%") unit)*
func (p *parser) parseFactor() (Expr, error) {
	lhs, err := p.parseUnit()
	if err != nil {
		return nil, err
	}
	//
	for p.matchesOperator("*") || p.matchesOperator("/") || p.matchesOperator("%") {
		var op BinOp
		//
		switch p.next().text {
		case "*":
			op = BinMul
		case "/":
			op = BinDiv
		default:
			op = BinMod
		}
		//
		rhs, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		//
		lhs = Binary{op, lhs, rhs}
	}
	//
	return lhs, nil
}

func (p *parser) parseUnit() (Expr, error) {
	tok := p.lookahead()
	//
	switch {
	case tok.kind == NUMBER:
		p.next()
		//
		value, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, &SyntaxError{tok.pos, "invalid integer literal"}
		}
		//
		return IntLit{value}, nil
	case tok.kind == FLOAT:
		p.next()
		//
		value, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, &SyntaxError{tok.pos, "invalid float literal"}
		}
		//
		return FloatLit{value}, nil
	case tok.kind == STRING:
		p.next()
		//
		return StringLit{tok.text}, nil
	case tok.kind == IDENTIFIER && tok.text == "true":
		p.next()
		//
		return BoolLit{true}, nil
	case tok.kind == IDENTIFIER && tok.text == "false":
		p.next()
		//
		return BoolLit{false}, nil
	case tok.kind == IDENTIFIER && tok.text == "not":
		p.next()
		//
		if err := p.expectOperator("("); err != nil {
			return nil, err
		}
		//
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		if err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		//
		return Unary{UnNot, operand}, nil
	case tok.kind == IDENTIFIER:
		p.next()
		//
		if p.matchesOperator("(") {
			return p.parseCallTail(tok.text)
		}
		//
		return Ident{tok.text}, nil
	case p.matchesOperator("-"):
		p.next()
		//
		operand, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		// Fold negated literals immediately.
		if lit, ok := operand.(IntLit); ok {
			return IntLit{-lit.Value}, nil
		}
		//
		return Unary{UnNeg, operand}, nil
	case p.matchesOperator("("):
		p.next()
		//
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		if err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		//
		return expr, nil
	default:
		return nil, p.syntaxError("expected expression")
	}
}

func (p *parser) parseCallTail(name string) (Call, error) {
	call := Call{Name: name}
	//
	if err := p.expectOperator("("); err != nil {
		return call, err
	}
	//
	for !p.matchesOperator(")") {
		if len(call.Args) != 0 {
			if err := p.expectOperator(","); err != nil {
				return call, err
			}
		}
		//
		arg, err := p.parseExpr()
		if err != nil {
			return call, err
		}
		//
		call.Args = append(call.Args, arg)
	}
	//
	p.next()
	//
	return call, nil
}
