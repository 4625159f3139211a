package simplelang

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth bounds statement and expression nesting.
const DefaultMaxDepth = 256

// ParseError.Index is the position of Token in the slice given to NewParser.
type ParseError struct {
	Message string
	Token   Token
	Index   int
}

func (e *ParseError) Error() string {
	if e.Token.Typ == TokenEOF {
		return fmt.Sprintf("%s (at end of input)", e.Message)
	}

	return fmt.Sprintf("%s (at token %d %s)", e.Message, e.Index, e.Token)
}

type Option func(p *Parser)

// WithMaxDepth sets the nesting limit, 0 disables it.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser is a single use recursive descent parser over a fixed token slice.
type Parser struct {
	tokens  []Token
	indices []int // source index of each entry in tokens
	pos     int

	end int // index reported at end of input

	depth    int
	maxDepth int

	err error
}

func NewParser(tokens []Token, opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for i, tok := range tokens {
		// Comments never reach the grammar
		if !tok.isComment() {
			p.tokens = append(p.tokens, tok)
			p.indices = append(p.indices, i)
		}
	}
	p.end = len(tokens)

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses statements until the tokens run out or the first error.
// The statements parsed before an error are kept, see Err.
func (p *Parser) Parse() *Program {
	program := &Program{Statements: []Stmt{}}

	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			p.err = err
			log.WithError(err).WithFields(logrus.Fields{
				"index":  p.sourceIndex(p.pos),
				"parsed": len(program.Statements),
			}).Warn("parse failed")

			break
		}

		program.Statements = append(program.Statements, stmt)
	}

	return program
}

// Err returns the error that stopped Parse, if any.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) peek() Token {
	return p.peekAt(p.pos)
}

// peekAt looks at an absolute index without moving the cursor.
func (p *Parser) peekAt(i int) Token {
	if i < 0 || i >= len(p.tokens) {
		return Token{Typ: TokenEOF}
	}

	return p.tokens[i]
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.pos++
	}

	return p.previous()
}

func (p *Parser) previous() Token {
	return p.peekAt(p.pos - 1)
}

func (p *Parser) check(typ TokenType) bool {
	return !p.isAtEnd() && p.peek().Typ == typ
}

func (p *Parser) checkKeyword(word string) bool {
	return !p.isAtEnd() && p.peek().isKeyword(word)
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(word) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) consume(typ TokenType, message string) (Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}

	return Token{}, p.errorf("%s", message)
}

func (p *Parser) consumeKeyword(word string, message string) error {
	if p.matchKeyword(word) {
		return nil
	}

	return p.errorf("%s", message)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Token:   p.peek(),
		Index:   p.sourceIndex(p.pos),
	}
}

func (p *Parser) sourceIndex(pos int) int {
	if pos < len(p.indices) {
		return p.indices[pos]
	}

	return p.end
}

func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.errorf("Maximum nesting depth exceeded.")
	}

	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) statement() (Stmt, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	if p.isAtEnd() {
		return nil, p.errorf("Unexpected end of input.")
	}

	switch tok := p.peek(); tok.Typ {
	case TokenKeyword:
		switch tok.Value {
		case "var":
			return p.variableDecl()
		case "if":
			return p.ifStmt()
		case "while":
			return p.whileStmt()
		case "for":
			return p.forStmt()
		case "function":
			return p.funcDecl()
		case "print":
			return p.printStmt()
		case "return":
			return p.returnStmt()
		case "break":
			return p.breakStmt()
		case "continue":
			return p.continueStmt()
		case "try":
			return p.tryCatchStmt()
		}
	case TokenOpenCurly:
		return p.blockStmt()
	case TokenIdentifier:
		switch p.peekAt(p.pos + 1).Typ {
		case TokenAssign:
			return p.assignment()
		case TokenOpenParentheses:
			return p.funcCallStmt()
		}
	}

	return nil, p.errorf("Unexpected statement.")
}

// body parses '{' statement* '}'. The result is never nil.
func (p *Parser) body(open string) ([]Stmt, error) {
	if _, err := p.consume(TokenOpenCurly, open); err != nil {
		return nil, err
	}

	stmts := []Stmt{}
	for !p.match(TokenCloseCurly) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func (p *Parser) variableDecl() (Stmt, error) {
	if err := p.consumeKeyword("var", "Expected 'var' keyword for variable declaration."); err != nil {
		return nil, err
	}

	name, err := p.consume(TokenIdentifier, "Expected variable identifier.")
	if err != nil {
		return nil, err
	}

	decl := &VariableDecl{Identifier: name.Value}
	if p.match(TokenAssign) {
		if decl.Value, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}

	return decl, nil
}

func (p *Parser) assignment() (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expected a variable name.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenAssign, "Expected '='."); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';'."); err != nil {
		return nil, err
	}

	return &Assignment{Name: name.Value, Value: value}, nil
}

// condition parses '(' expression ')' following a keyword.
func (p *Parser) condition(keyword string) (Expr, error) {
	if _, err := p.consume(TokenOpenParentheses, fmt.Sprintf("Expected '(' after '%s' keyword.", keyword)); err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenCloseParentheses, "Expected ')' after condition."); err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	if err := p.consumeKeyword("if", "Expected 'if' keyword."); err != nil {
		return nil, err
	}

	cond, err := p.condition("if")
	if err != nil {
		return nil, err
	}

	trueBranch, err := p.body("Expected '{' after condition.")
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Condition: cond, TrueBranch: trueBranch}
	if !p.matchKeyword("else") {
		return stmt, nil
	}

	if p.checkKeyword("if") {
		nested, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmt.FalseBranch = []Stmt{nested}
		return stmt, nil
	}

	if stmt.FalseBranch, err = p.body("Expected '{' after 'else' keyword."); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	if err := p.consumeKeyword("while", "Expected 'while' keyword."); err != nil {
		return nil, err
	}

	cond, err := p.condition("while")
	if err != nil {
		return nil, err
	}

	body, err := p.body("Expected '{' after condition.")
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) forStmt() (Stmt, error) {
	if err := p.consumeKeyword("for", "Expected 'for' keyword."); err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenOpenParentheses, "Expected '(' after 'for' keyword."); err != nil {
		return nil, err
	}

	initializer, err := p.statement()
	if err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after condition."); err != nil {
		return nil, err
	}

	incr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenCloseParentheses, "Expected ')' after increment."); err != nil {
		return nil, err
	}

	body, err := p.body("Expected '{' after increment.")
	if err != nil {
		return nil, err
	}

	return &ForStmt{
		Initializer: initializer,
		Condition:   cond,
		Increment:   incr,
		Body:        body,
	}, nil
}

func (p *Parser) funcDecl() (Stmt, error) {
	if err := p.consumeKeyword("function", "Expected 'function' keyword."); err != nil {
		return nil, err
	}

	name, err := p.consume(TokenIdentifier, "Expected function identifier.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenOpenParentheses, "Expected '(' after function identifier."); err != nil {
		return nil, err
	}

	params := []string{}
	for !p.match(TokenCloseParentheses) {
		param, err := p.consume(TokenIdentifier, "Expected parameter identifier.")
		if err != nil {
			return nil, err
		}

		params = append(params, param.Value)
		p.match(TokenComma)
	}

	body, err := p.body("Expected '{' after parameters.")
	if err != nil {
		return nil, err
	}

	return &FuncDecl{Name: name.Value, Parameters: params, Body: body}, nil
}

func (p *Parser) funcCallStmt() (Stmt, error) {
	call, err := p.funcCall()
	if err != nil {
		return nil, err
	}

	p.match(TokenSemicolon) // optional terminator

	return call, nil
}

func (p *Parser) funcCall() (*FuncCall, error) {
	name, err := p.consume(TokenIdentifier, "Expected function identifier.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenOpenParentheses, "Expected '(' after function identifier."); err != nil {
		return nil, err
	}

	args := []Expr{}
	for !p.match(TokenCloseParentheses) {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
		p.match(TokenComma)
	}

	return &FuncCall{Name: name.Value, Arguments: args}, nil
}

func (p *Parser) tryCatchStmt() (Stmt, error) {
	if err := p.consumeKeyword("try", "Expected 'try' keyword."); err != nil {
		return nil, err
	}

	tryBlock, err := p.body("Expected '{' after 'try' keyword.")
	if err != nil {
		return nil, err
	}

	if err := p.consumeKeyword("catch", "Expected 'catch' keyword."); err != nil {
		return nil, err
	}

	catchBlock, err := p.body("Expected '{' after 'catch' keyword.")
	if err != nil {
		return nil, err
	}

	return &TryCatchStmt{TryBlock: tryBlock, CatchBlock: catchBlock}, nil
}

func (p *Parser) blockStmt() (Stmt, error) {
	stmts, err := p.body("Expected '{'.")
	if err != nil {
		return nil, err
	}

	return &BlockStmt{Statements: stmts}, nil
}

func (p *Parser) printStmt() (Stmt, error) {
	if err := p.consumeKeyword("print", "Expected 'print' keyword."); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after print statement."); err != nil {
		return nil, err
	}

	return &PrintStmt{Value: value}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	if err := p.consumeKeyword("return", "Expected 'return' keyword."); err != nil {
		return nil, err
	}

	stmt := &ReturnStmt{}
	if !p.check(TokenSemicolon) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}

		stmt.Value = value
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after return statement."); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) breakStmt() (Stmt, error) {
	if err := p.consumeKeyword("break", "Expected 'break' keyword."); err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after break statement."); err != nil {
		return nil, err
	}

	return &BreakStmt{}, nil
}

func (p *Parser) continueStmt() (Stmt, error) {
	if err := p.consumeKeyword("continue", "Expected 'continue' keyword."); err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after continue statement."); err != nil {
		return nil, err
	}

	return &ContinueStmt{}, nil
}

var comparisonOperators = []TokenType{
	TokenEquals,
	TokenNotEquals,
	TokenGreaterThan,
	TokenLessThan,
	TokenGreaterEqual,
	TokenLessEqual,
}

func (p *Parser) expression() (Expr, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	left, err := p.arithmetic()
	if err != nil {
		return nil, err
	}

	for _, typ := range comparisonOperators {
		if p.check(typ) {
			return p.comparison(left)
		}
	}

	return left, nil
}

// comparison takes the already parsed left operand. The right operand is a
// full expression, so a == b == c nests to the right.
func (p *Parser) comparison(left Expr) (Expr, error) {
	if !p.match(comparisonOperators...) {
		return nil, p.errorf("Expected a comparison operator.")
	}

	op := p.previous().Value
	right, err := p.expression()
	if err != nil {
		return nil, err
	}

	return &Comparison{Left: left, Operator: op, Right: right}, nil
}

// arithmetic folds '*' and '/' between additive operands. term already
// consumes those operators, so the loop only runs when a caller hands it a
// cursor sitting on one.
func (p *Parser) arithmetic() (Expr, error) {
	lhs, err := p.additive()
	if err != nil {
		return nil, err
	}

	for p.match(TokenMultiply, TokenDivide) {
		op := p.previous().Value
		rhs, err := p.additive()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{Left: lhs, Operator: op, Right: rhs}
	}

	return lhs, nil
}

func (p *Parser) additive() (Expr, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(TokenPlus, TokenMinus) {
		op := p.previous().Value
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{Left: lhs, Operator: op, Right: rhs}
	}

	return lhs, nil
}

// term overwrites its operation on every '*' or '/', so a chain keeps only
// its first factor and its last step. A lone factor is returned as is.
func (p *Parser) term() (Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}

	term := &Term{Left: left}
	for p.match(TokenMultiply, TokenDivide) {
		term.Operator = p.previous().Value
		if term.Right, err = p.factor(); err != nil {
			return nil, err
		}
	}

	if term.Operator == "" {
		return left, nil
	}

	return term, nil
}

var factorValues = []TokenType{
	TokenNaturalLiteral,
	TokenRealLiteral,
	TokenCharLiteral,
	TokenStringLiteral,
	TokenBoolLiteral,
	TokenIdentifier,
}

func (p *Parser) factor() (Expr, error) {
	switch {
	case p.match(factorValues...):
		tok := p.previous()
		return &Factor{Value: tok.Value, ValueType: tok.Typ}, nil
	case p.match(TokenOpenParentheses):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(TokenCloseParentheses, "Expected a closing parenthesis."); err != nil {
			return nil, err
		}

		return &Factor{Expression: expr}, nil
	case p.match(TokenOpenBracket):
		arr, err := p.arrayLiteral()
		if err != nil {
			return nil, err
		}

		return &Factor{Array: arr}, nil
	}

	return nil, p.errorf("Expected a value, identifier, or expression in parentheses.")
}

// arrayLiteral parses the elements after an already consumed '['.
func (p *Parser) arrayLiteral() (*ArrayLiteral, error) {
	elements := []Expr{}
	if !p.check(TokenCloseBracket) {
		for {
			el, err := p.expression()
			if err != nil {
				return nil, err
			}

			elements = append(elements, el)
			if !p.match(TokenComma) {
				break
			}
		}
	}

	if _, err := p.consume(TokenCloseBracket, "Expected a closing bracket."); err != nil {
		return nil, err
	}

	return &ArrayLiteral{Elements: elements}, nil
}
