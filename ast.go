package cypherparse

import "github.com/alecthomas/participle/v2/lexer"

// Span is the source range covered by a node. End is exclusive.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Span() Span
	fields() []field
}

// node is embedded in every AST node. The kind is fixed at construction.
type node struct {
	kind Kind
	span Span
}

func (n node) Kind() Kind { return n.kind }
func (n node) Span() Span { return n.span }

// Directive is a top-level unit of input: a Statement or a Command.
type Directive interface {
	Node
	directiveNode()
}

// StatementBody is either a Query or a schema command.
type StatementBody interface {
	Node
	statementBody()
}

// StatementOption is a CYPHER, EXPLAIN or PROFILE prefix.
type StatementOption interface {
	Node
	statementOption()
}

// SchemaCommand is an index or constraint command.
type SchemaCommand interface {
	StatementBody
	schemaCommand()
}

// QueryOption modifies a whole query.
type QueryOption interface {
	Node
	queryOption()
}

// Clause is one clause of a query.
type Clause interface {
	Node
	clauseNode()
}

// StartPoint is one lookup in a START clause.
type StartPoint interface {
	Node
	startPoint()
}

// MatchHint is a USING hint attached to MATCH.
type MatchHint interface {
	Node
	matchHint()
}

// MergeAction is an ON MATCH or ON CREATE action.
type MergeAction interface {
	Node
	mergeAction()
}

// SetItem is one item of a SET clause.
type SetItem interface {
	Node
	setItem()
}

// RemoveItem is one item of a REMOVE clause.
type RemoveItem interface {
	Node
	removeItem()
}

// Expression is any node valid in expression position.
type Expression interface {
	Node
	expressionNode()
}

// Path is a path within a pattern: a PatternPath, NamedPath or ShortestPath.
type Path interface {
	Expression
	pathNode()
}

// PatternElement is a NodePattern or RelPattern.
type PatternElement interface {
	Node
	patternElement()
}

// MapProjectionSelector is one selector inside a map projection.
type MapProjectionSelector interface {
	Node
	mapProjectionSelector()
}

// -----------------------------------------------------------------------------
// Statements and commands
// -----------------------------------------------------------------------------

// Statement is a query or schema command with optional statement options.
type Statement struct {
	node
	Options []StatementOption
	Body    StatementBody
}

// CypherOption is the CYPHER statement option.
type CypherOption struct {
	node
	Version *String
	Params  []*CypherOptionParam
}

// CypherOptionParam is a name=value pair in a CYPHER option.
type CypherOptionParam struct {
	node
	Name  *String
	Value *String
}

// ExplainOption is the EXPLAIN statement option.
type ExplainOption struct{ node }

// ProfileOption is the PROFILE statement option.
type ProfileOption struct{ node }

// Command is a client command such as ":help".
type Command struct {
	node
	Name *String
	Args []*String
}

// -----------------------------------------------------------------------------
// Schema commands
// -----------------------------------------------------------------------------

// CreateNodePropIndex is CREATE INDEX ON :Label(prop).
type CreateNodePropIndex struct {
	node
	Label    *Label
	PropName *PropName
}

// DropNodePropIndex is DROP INDEX ON :Label(prop).
type DropNodePropIndex struct {
	node
	Label    *Label
	PropName *PropName
}

// CreateNodePropConstraint is CREATE CONSTRAINT ON (n:Label) ASSERT ...
type CreateNodePropConstraint struct {
	node
	Identifier *Identifier
	Label      *Label
	Expression Expression
	Unique     bool
}

// DropNodePropConstraint is DROP CONSTRAINT ON (n:Label) ASSERT ...
type DropNodePropConstraint struct {
	node
	Identifier *Identifier
	Label      *Label
	Expression Expression
	Unique     bool
}

// CreateRelPropConstraint is CREATE CONSTRAINT ON ()-[r:TYPE]-() ASSERT ...
type CreateRelPropConstraint struct {
	node
	Identifier *Identifier
	RelType    *RelType
	Expression Expression
	Unique     bool
}

// DropRelPropConstraint is DROP CONSTRAINT ON ()-[r:TYPE]-() ASSERT ...
type DropRelPropConstraint struct {
	node
	Identifier *Identifier
	RelType    *RelType
	Expression Expression
	Unique     bool
}

// -----------------------------------------------------------------------------
// Query and clauses
// -----------------------------------------------------------------------------

// Query is a sequence of clauses.
type Query struct {
	node
	Options []QueryOption
	Clauses []Clause
}

// UsingPeriodicCommit is USING PERIODIC COMMIT [limit].
type UsingPeriodicCommit struct {
	node
	Limit *Integer
}

// LoadCsv is LOAD CSV [WITH HEADERS] FROM url AS id [FIELDTERMINATOR s].
type LoadCsv struct {
	node
	WithHeaders     bool
	URL             Expression
	Identifier      *Identifier
	FieldTerminator *String
}

// Start is the legacy START clause.
type Start struct {
	node
	Points    []StartPoint
	Predicate Expression
}

// NodeIndexLookup is n = node:index(key = value).
type NodeIndexLookup struct {
	node
	Identifier *Identifier
	IndexName  *IndexName
	PropName   *PropName
	Lookup     Expression
}

// NodeIndexQuery is n = node:index("query").
type NodeIndexQuery struct {
	node
	Identifier *Identifier
	IndexName  *IndexName
	Query      Expression
}

// NodeIDLookup is n = node(1, 2, 3).
type NodeIDLookup struct {
	node
	Identifier *Identifier
	IDs        []*Integer
}

// AllNodesScan is n = node(*).
type AllNodesScan struct {
	node
	Identifier *Identifier
}

// RelIndexLookup is r = relationship:index(key = value).
type RelIndexLookup struct {
	node
	Identifier *Identifier
	IndexName  *IndexName
	PropName   *PropName
	Lookup     Expression
}

// RelIndexQuery is r = relationship:index("query").
type RelIndexQuery struct {
	node
	Identifier *Identifier
	IndexName  *IndexName
	Query      Expression
}

// RelIDLookup is r = relationship(1, 2, 3).
type RelIDLookup struct {
	node
	Identifier *Identifier
	IDs        []*Integer
}

// AllRelsScan is r = relationship(*).
type AllRelsScan struct {
	node
	Identifier *Identifier
}

// Match is [OPTIONAL] MATCH pattern [hints] [WHERE predicate].
type Match struct {
	node
	Optional  bool
	Pattern   *Pattern
	Hints     []MatchHint
	Predicate Expression
}

// UsingIndex is USING INDEX n:Label(prop).
type UsingIndex struct {
	node
	Identifier *Identifier
	Label      *Label
	PropName   *PropName
}

// UsingJoin is USING JOIN ON a, b.
type UsingJoin struct {
	node
	Identifiers []*Identifier
}

// UsingScan is USING SCAN n:Label.
type UsingScan struct {
	node
	Identifier *Identifier
	Label      *Label
}

// Merge is MERGE path [actions].
type Merge struct {
	node
	Path    Path
	Actions []MergeAction
}

// OnMatch is ON MATCH SET items.
type OnMatch struct {
	node
	Items []SetItem
}

// OnCreate is ON CREATE SET items.
type OnCreate struct {
	node
	Items []SetItem
}

// Create is CREATE [UNIQUE] pattern.
type Create struct {
	node
	Unique  bool
	Pattern *Pattern
}

// Set is SET items.
type Set struct {
	node
	Items []SetItem
}

// SetProperty is n.prop = expr.
type SetProperty struct {
	node
	Property   *PropertyOperator
	Expression Expression
}

// SetAllProperties is n = expr.
type SetAllProperties struct {
	node
	Identifier *Identifier
	Expression Expression
}

// MergeProperties is n += expr.
type MergeProperties struct {
	node
	Identifier *Identifier
	Expression Expression
}

// SetLabels is n:Label1:Label2.
type SetLabels struct {
	node
	Identifier *Identifier
	Labels     []*Label
}

// Delete is [DETACH] DELETE expressions.
type Delete struct {
	node
	Detach      bool
	Expressions []Expression
}

// Remove is REMOVE items.
type Remove struct {
	node
	Items []RemoveItem
}

// RemoveLabels is n:Label1:Label2 in a REMOVE clause.
type RemoveLabels struct {
	node
	Identifier *Identifier
	Labels     []*Label
}

// RemoveProperty is n.prop in a REMOVE clause.
type RemoveProperty struct {
	node
	Property *PropertyOperator
}

// ForEach is FOREACH (id IN expr | clauses).
type ForEach struct {
	node
	Identifier *Identifier
	Expression Expression
	Clauses    []Clause
}

// With is the WITH clause.
type With struct {
	node
	Distinct        bool
	IncludeExisting bool
	Projections     []*Projection
	OrderBy         *OrderBy
	Skip            Expression
	Limit           Expression
	Predicate       Expression
}

// Unwind is UNWIND expr AS alias.
type Unwind struct {
	node
	Expression Expression
	Alias      *Identifier
}

// Call is CALL proc(args) [YIELD projections [WHERE predicate]].
type Call struct {
	node
	ProcName    *ProcName
	Args        []Expression
	Projections []*Projection
	Predicate   Expression
}

// Return is the RETURN clause.
type Return struct {
	node
	Distinct        bool
	IncludeExisting bool
	Projections     []*Projection
	OrderBy         *OrderBy
	Skip            Expression
	Limit           Expression
}

// Projection is expr [AS alias].
type Projection struct {
	node
	Expression Expression
	Alias      *Identifier
}

// OrderBy is ORDER BY items.
type OrderBy struct {
	node
	Items []*SortItem
}

// SortItem is expr [ASC|DESC].
type SortItem struct {
	node
	Expression Expression
	Ascending  bool
}

// Union is UNION [ALL].
type Union struct {
	node
	All bool
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// UnaryOperator applies a prefix or postfix operator.
type UnaryOperator struct {
	node
	Op  *Operator
	Arg Expression
}

// BinaryOperator applies an infix operator.
type BinaryOperator struct {
	node
	Op   *Operator
	Arg1 Expression
	Arg2 Expression
}

// Comparison is a chain of comparisons, a < b <= c. It holds one fewer
// operator than arguments.
type Comparison struct {
	node
	Ops  []*Operator
	Args []Expression
}

// Length returns the number of comparison operators in the chain.
func (c *Comparison) Length() int {
	return len(c.Ops)
}

// ApplyOperator is a function application.
type ApplyOperator struct {
	node
	FuncName *FunctionName
	Distinct bool
	Args     []Expression
}

// ApplyAllOperator is a function applied to *, as in count(*).
type ApplyAllOperator struct {
	node
	FuncName *FunctionName
	Distinct bool
}

// PropertyOperator is expr.prop.
type PropertyOperator struct {
	node
	Expression Expression
	PropName   *PropName
}

// SubscriptOperator is expr[subscript].
type SubscriptOperator struct {
	node
	Expression Expression
	Subscript  Expression
}

// SliceOperator is expr[start..end]. Either bound may be nil.
type SliceOperator struct {
	node
	Expression Expression
	Start      Expression
	End        Expression
}

// LabelsOperator is expr:Label1:Label2.
type LabelsOperator struct {
	node
	Expression Expression
	Labels     []*Label
}

// MapProjection is id{selectors}.
type MapProjection struct {
	node
	Expression Expression
	Selectors  []MapProjectionSelector
}

// MapProjectionLiteral is key: expr inside a map projection.
type MapProjectionLiteral struct {
	node
	PropName   *PropName
	Expression Expression
}

// MapProjectionProperty is .prop inside a map projection.
type MapProjectionProperty struct {
	node
	PropName *PropName
}

// MapProjectionIdentifier is a bare identifier inside a map projection.
type MapProjectionIdentifier struct {
	node
	Identifier *Identifier
}

// MapProjectionAllProperties is .* inside a map projection.
type MapProjectionAllProperties struct{ node }

// ListComprehension is [id IN expr [WHERE predicate] [| eval]].
type ListComprehension struct {
	node
	Identifier *Identifier
	Expression Expression
	Predicate  Expression
	Eval       Expression
}

// PatternComprehension is [[id =] path [WHERE predicate] | eval].
type PatternComprehension struct {
	node
	Identifier *Identifier
	Pattern    Path
	Predicate  Expression
	Eval       Expression
}

// Case is CASE [expr] WHEN ... THEN ... [ELSE default] END.
// Predicates and Values are parallel.
type Case struct {
	node
	Expression Expression
	Predicates []Expression
	Values     []Expression
	Default    Expression
}

// Filter is filter(id IN expr WHERE predicate).
type Filter struct {
	node
	Identifier *Identifier
	Expression Expression
	Predicate  Expression
}

// Extract is extract(id IN expr | eval).
type Extract struct {
	node
	Identifier *Identifier
	Expression Expression
	Eval       Expression
}

// Reduce is reduce(acc = init, id IN expr | eval).
type Reduce struct {
	node
	Accumulator *Identifier
	Init        Expression
	Identifier  *Identifier
	Expression  Expression
	Eval        Expression
}

// AllQuantifier is all(id IN expr WHERE predicate).
type AllQuantifier struct {
	node
	Identifier *Identifier
	Expression Expression
	Predicate  Expression
}

// AnyQuantifier is any(id IN expr WHERE predicate).
type AnyQuantifier struct {
	node
	Identifier *Identifier
	Expression Expression
	Predicate  Expression
}

// SingleQuantifier is single(id IN expr WHERE predicate).
type SingleQuantifier struct {
	node
	Identifier *Identifier
	Expression Expression
	Predicate  Expression
}

// NoneQuantifier is none(id IN expr WHERE predicate).
type NoneQuantifier struct {
	node
	Identifier *Identifier
	Expression Expression
	Predicate  Expression
}

// Collection is a list literal.
type Collection struct {
	node
	Elements []Expression
}

// Map is a map literal. Keys and Values are parallel.
type Map struct {
	node
	Keys   []*PropName
	Values []Expression
}

// Identifier is a variable name.
type Identifier struct {
	node
	Name string
}

// Parameter is $name or {name}.
type Parameter struct {
	node
	Name string
}

// String is a string literal, unescaped.
type String struct {
	node
	Value string
}

// Integer is an integer literal.
type Integer struct {
	node
	Value int64
}

// Float is a floating point literal.
type Float struct {
	node
	Value float64
}

// True is the literal true.
type True struct{ node }

// False is the literal false.
type False struct{ node }

// Null is the literal null.
type Null struct{ node }

// -----------------------------------------------------------------------------
// Names
// -----------------------------------------------------------------------------

// Label is a node label.
type Label struct {
	node
	Name string
}

// RelType is a relationship type.
type RelType struct {
	node
	Name string
}

// PropName is a property key.
type PropName struct {
	node
	Value string
}

// FunctionName is a possibly namespaced function name.
type FunctionName struct {
	node
	Value string
}

// IndexName is a legacy index name.
type IndexName struct {
	node
	Value string
}

// ProcName is a possibly namespaced procedure name.
type ProcName struct {
	node
	Value string
}

// -----------------------------------------------------------------------------
// Patterns
// -----------------------------------------------------------------------------

// Pattern is a comma separated list of paths.
type Pattern struct {
	node
	Paths []Path
}

// NamedPath is id = path.
type NamedPath struct {
	node
	Identifier *Identifier
	Path       Path
}

// ShortestPath is shortestPath(path) or allShortestPaths(path).
type ShortestPath struct {
	node
	Single bool
	Path   *PatternPath
}

// PatternPath alternates node and relationship patterns, starting and
// ending with a node.
type PatternPath struct {
	node
	Elements []PatternElement
}

// NodePattern is (id:Label {props}).
type NodePattern struct {
	node
	Identifier *Identifier
	Labels     []*Label
	Properties Expression
}

// Direction of a relationship pattern.
type Direction int

// Directions.
const (
	RightToLeft Direction = iota
	LeftToRight
	Undirected
)

func (d Direction) String() string {
	switch d {
	case RightToLeft:
		return "<-"
	case LeftToRight:
		return "->"
	default:
		return "-"
	}
}

// RelPattern is -[id:TYPE*1..2 {props}]->. A nil VarLength means a fixed
// length of one.
type RelPattern struct {
	node
	Direction  Direction
	Identifier *Identifier
	RelTypes   []*RelType
	Properties Expression
	VarLength  *Range
}

// Range is the *start..end bound of a variable length relationship.
// Nil ends are unbounded.
type Range struct {
	node
	Start *int
	End   *int
}

// -----------------------------------------------------------------------------
// Trivia and recovery
// -----------------------------------------------------------------------------

// LineComment is a // comment.
type LineComment struct {
	node
	Value string
}

// BlockComment is a /* */ comment.
type BlockComment struct {
	node
	Value string
}

// ErrorNode holds input skipped while recovering from a syntax error.
type ErrorNode struct {
	node
	Value string
}

// -----------------------------------------------------------------------------
// Variant markers
// -----------------------------------------------------------------------------

func (*Statement) directiveNode() {}
func (*Command) directiveNode()   {}

func (*Query) statementBody()                    {}
func (*CreateNodePropIndex) statementBody()      {}
func (*DropNodePropIndex) statementBody()        {}
func (*CreateNodePropConstraint) statementBody() {}
func (*DropNodePropConstraint) statementBody()   {}
func (*CreateRelPropConstraint) statementBody()  {}
func (*DropRelPropConstraint) statementBody()    {}

func (*CreateNodePropIndex) schemaCommand()      {}
func (*DropNodePropIndex) schemaCommand()        {}
func (*CreateNodePropConstraint) schemaCommand() {}
func (*DropNodePropConstraint) schemaCommand()   {}
func (*CreateRelPropConstraint) schemaCommand()  {}
func (*DropRelPropConstraint) schemaCommand()    {}

func (*CypherOption) statementOption()  {}
func (*ExplainOption) statementOption() {}
func (*ProfileOption) statementOption() {}

func (*UsingPeriodicCommit) queryOption() {}

func (*LoadCsv) clauseNode() {}
func (*Start) clauseNode()   {}
func (*Match) clauseNode()   {}
func (*Merge) clauseNode()   {}
func (*Create) clauseNode()  {}
func (*Set) clauseNode()     {}
func (*Delete) clauseNode()  {}
func (*Remove) clauseNode()  {}
func (*ForEach) clauseNode() {}
func (*With) clauseNode()    {}
func (*Unwind) clauseNode()  {}
func (*Call) clauseNode()    {}
func (*Return) clauseNode()  {}
func (*Union) clauseNode()   {}

func (*NodeIndexLookup) startPoint() {}
func (*NodeIndexQuery) startPoint()  {}
func (*NodeIDLookup) startPoint()    {}
func (*AllNodesScan) startPoint()    {}
func (*RelIndexLookup) startPoint()  {}
func (*RelIndexQuery) startPoint()   {}
func (*RelIDLookup) startPoint()     {}
func (*AllRelsScan) startPoint()     {}

func (*UsingIndex) matchHint() {}
func (*UsingJoin) matchHint()  {}
func (*UsingScan) matchHint()  {}

func (*OnMatch) mergeAction()  {}
func (*OnCreate) mergeAction() {}

func (*SetProperty) setItem()      {}
func (*SetAllProperties) setItem() {}
func (*MergeProperties) setItem()  {}
func (*SetLabels) setItem()        {}

func (*RemoveLabels) removeItem()   {}
func (*RemoveProperty) removeItem() {}

func (*UnaryOperator) expressionNode()        {}
func (*BinaryOperator) expressionNode()       {}
func (*Comparison) expressionNode()           {}
func (*ApplyOperator) expressionNode()        {}
func (*ApplyAllOperator) expressionNode()     {}
func (*PropertyOperator) expressionNode()     {}
func (*SubscriptOperator) expressionNode()    {}
func (*SliceOperator) expressionNode()        {}
func (*LabelsOperator) expressionNode()       {}
func (*MapProjection) expressionNode()        {}
func (*ListComprehension) expressionNode()    {}
func (*PatternComprehension) expressionNode() {}
func (*Case) expressionNode()                 {}
func (*Filter) expressionNode()               {}
func (*Extract) expressionNode()              {}
func (*Reduce) expressionNode()               {}
func (*AllQuantifier) expressionNode()        {}
func (*AnyQuantifier) expressionNode()        {}
func (*SingleQuantifier) expressionNode()     {}
func (*NoneQuantifier) expressionNode()       {}
func (*Collection) expressionNode()           {}
func (*Map) expressionNode()                  {}
func (*Identifier) expressionNode()           {}
func (*Parameter) expressionNode()            {}
func (*String) expressionNode()               {}
func (*Integer) expressionNode()              {}
func (*Float) expressionNode()                {}
func (*True) expressionNode()                 {}
func (*False) expressionNode()                {}
func (*Null) expressionNode()                 {}
func (*PatternPath) expressionNode()          {}
func (*NamedPath) expressionNode()            {}
func (*ShortestPath) expressionNode()         {}

func (*PatternPath) pathNode()  {}
func (*NamedPath) pathNode()    {}
func (*ShortestPath) pathNode() {}

func (*NodePattern) patternElement() {}
func (*RelPattern) patternElement()  {}

func (*MapProjectionLiteral) mapProjectionSelector()       {}
func (*MapProjectionProperty) mapProjectionSelector()      {}
func (*MapProjectionIdentifier) mapProjectionSelector()    {}
func (*MapProjectionAllProperties) mapProjectionSelector() {}
