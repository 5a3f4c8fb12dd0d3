package ast

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeFloatLiteral        NodeType = "FloatLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeArrayLiteral        NodeType = "ArrayLiteral"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeIndexExpression     NodeType = "IndexExpression"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBlock               NodeType = "Block"
	NodeDefinition          NodeType = "Definition"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileLoop           NodeType = "WhileLoop"
)

type Node interface {
	NodeType() NodeType
	Pos() Position
	isNode()
}

// Position is the 1-based line/column of the token a node starts at.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	pos  Position
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType   { return n.Type }
func (n nodeImpl) Pos() Position        { return n.pos }
func (nodeImpl) isNode()                {}
func (n *nodeImpl) setPos(pos Position) { n.pos = pos }

// SetPos annotates the node with the provided position.
func SetPos(node Node, pos Position) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setPos(Position) }); ok {
		setter.setPos(pos)
	}
}

// Marker interfaces. Both sets are closed: only this package can add variants.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Operator names a unary or binary operator.
type Operator string

const (
	OpAdd          Operator = "+"
	OpSubtract     Operator = "-"
	OpMultiply     Operator = "*"
	OpDivide       Operator = "/"
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpAnd          Operator = "&&"
	OpOr           Operator = "||"
	OpAssign       Operator = "="
	OpNegate       Operator = "-"
	OpNot          Operator = "!"
)

// Program is the root of a parsed source file.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals keep their source text; numeric conversion happens at evaluation.

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Text string `json:"text"`
}

func NewIntegerLiteral(text string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Text: text}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Text string `json:"text"`
}

func NewFloatLiteral(text string) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Text: text}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

// Operators

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator   `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator Operator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

// BinaryExpression covers arithmetic, comparison, logical operators and
// assignment. For OpAssign the left side must name an assignable location.
type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator   `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator Operator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// Postfix forms

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Array Expression `json:"array"`
	Index Expression `json:"index"`
}

func NewIndexExpression(array, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Array: array, Index: index}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

type Definition struct {
	nodeImpl
	statementMarker

	Name        *Identifier `json:"name"`
	Initializer Expression  `json:"initializer"`
	IsConst     bool        `json:"isConst,omitempty"`
}

func NewDefinition(name *Identifier, initializer Expression, isConst bool) *Definition {
	return &Definition{nodeImpl: newNodeImpl(NodeDefinition), Name: name, Initializer: initializer, IsConst: isConst}
}

// IfStatement's Else is nil, a *Block, or a nested *IfStatement.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      *Block     `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then *Block, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: elseBranch}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileLoop(condition Expression, body *Block) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}
