package simplelang

// Node is any element of the syntax tree. NodeType names the production
// that built it.
type Node interface {
	NodeType() string
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Program struct {
	Statements []Stmt
}

type VariableDecl struct {
	Identifier string
	Value      Expr // nil without an initializer
}

type Assignment struct {
	Name  string
	Value Expr
}

type IfStmt struct {
	Condition   Expr
	TrueBranch  []Stmt
	FalseBranch []Stmt // nil without an else
}

type WhileStmt struct {
	Condition Expr
	Body      []Stmt
}

type ForStmt struct {
	Initializer Stmt
	Condition   Expr
	Increment   Expr
	Body        []Stmt
}

type FuncDecl struct {
	Name       string
	Parameters []string
	Body       []Stmt
}

type FuncCall struct {
	Name      string
	Arguments []Expr
}

type TryCatchStmt struct {
	TryBlock   []Stmt
	CatchBlock []Stmt
}

type BlockStmt struct {
	Statements []Stmt
}

type PrintStmt struct {
	Value Expr
}

type ReturnStmt struct {
	Value Expr // nil for a bare return
}

type BreakStmt struct{}

type ContinueStmt struct{}

type BinaryExpr struct {
	Left     Expr
	Operator string
	Right    Expr
}

type Comparison struct {
	Left     Expr
	Operator string
	Right    Expr
}

// Term is a multiplicative chain of factors. Only the last operation of the
// chain is recorded: a * b * c keeps Left a, Operator *, Right c.
type Term struct {
	Left     Expr
	Operator string
	Right    Expr
}

// Factor holds exactly one of Value, Expression or Array.
type Factor struct {
	Value      string
	ValueType  TokenType
	Expression Expr
	Array      *ArrayLiteral
}

type ArrayLiteral struct {
	Elements []Expr
}

func (*Program) NodeType() string      { return "program" }
func (*VariableDecl) NodeType() string { return "variableDeclaration" }
func (*Assignment) NodeType() string   { return "assignment" }
func (*IfStmt) NodeType() string       { return "ifStatement" }
func (*WhileStmt) NodeType() string    { return "whileStatement" }
func (*ForStmt) NodeType() string      { return "forStatement" }
func (*FuncDecl) NodeType() string     { return "functionDeclaration" }
func (*FuncCall) NodeType() string     { return "functionCall" }
func (*TryCatchStmt) NodeType() string { return "tryCatchStatement" }
func (*BlockStmt) NodeType() string    { return "block" }
func (*PrintStmt) NodeType() string    { return "printStatement" }
func (*ReturnStmt) NodeType() string   { return "returnStatement" }
func (*BreakStmt) NodeType() string    { return "breakStatement" }
func (*ContinueStmt) NodeType() string { return "continueStatement" }
func (*BinaryExpr) NodeType() string   { return "binaryOperation" }
func (*Comparison) NodeType() string   { return "comparison" }
func (*Term) NodeType() string         { return "term" }
func (*Factor) NodeType() string       { return "factor" }
func (*ArrayLiteral) NodeType() string { return "arrayLiteral" }

func (*VariableDecl) stmtNode() {}
func (*Assignment) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*FuncDecl) stmtNode()     {}
func (*FuncCall) stmtNode()     {}
func (*TryCatchStmt) stmtNode() {}
func (*BlockStmt) stmtNode()    {}
func (*PrintStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}

func (*BinaryExpr) exprNode()   {}
func (*Comparison) exprNode()   {}
func (*Term) exprNode()         {}
func (*Factor) exprNode()       {}
func (*ArrayLiteral) exprNode() {}
