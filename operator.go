package cypherparse

// Assoc is the associativity of a binary operator.
type Assoc uint8

// Associativity values.
const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

// Precedence levels, loosest first. Postfix operators bind tighter than
// everything listed here and are handled outside the climbing loop.
const (
	precLowest = iota
	precOr
	precXor
	precAnd
	precNot
	precComparison
	precPredicate
	precAdditive
	precMultiplicative
	precPower
	precUnary
	precPostfix
)

// Operator describes one Cypher operator.
type Operator struct {
	// Name is the stable identifier, e.g. "less-than".
	Name string
	// Symbol is the operator as written in queries, e.g. "<".
	Symbol     string
	Precedence int
	Assoc      Assoc
	// Unary marks prefix and postfix operators.
	Unary bool
}

func (o *Operator) String() string {
	return o.Symbol
}

// MarshalText implements encoding.TextMarshaler, rendering the symbol.
func (o *Operator) MarshalText() ([]byte, error) {
	return []byte(o.Symbol), nil
}

// Operators.
var (
	OpOr               = &Operator{Name: "or", Symbol: "OR", Precedence: precOr}
	OpXor              = &Operator{Name: "xor", Symbol: "XOR", Precedence: precXor}
	OpAnd              = &Operator{Name: "and", Symbol: "AND", Precedence: precAnd}
	OpNot              = &Operator{Name: "not", Symbol: "NOT", Precedence: precNot, Unary: true}
	OpEqual            = &Operator{Name: "equal", Symbol: "=", Precedence: precComparison, Assoc: AssocNone}
	OpNotEqual         = &Operator{Name: "not-equal", Symbol: "<>", Precedence: precComparison, Assoc: AssocNone}
	OpLessThan         = &Operator{Name: "less-than", Symbol: "<", Precedence: precComparison, Assoc: AssocNone}
	OpGreaterThan      = &Operator{Name: "greater-than", Symbol: ">", Precedence: precComparison, Assoc: AssocNone}
	OpLessThanEqual    = &Operator{Name: "less-than-equal", Symbol: "<=", Precedence: precComparison, Assoc: AssocNone}
	OpGreaterThanEqual = &Operator{Name: "greater-than-equal", Symbol: ">=", Precedence: precComparison, Assoc: AssocNone}
	OpRegex            = &Operator{Name: "regex", Symbol: "=~", Precedence: precPredicate}
	OpIn               = &Operator{Name: "in", Symbol: "IN", Precedence: precPredicate}
	OpStartsWith       = &Operator{Name: "starts-with", Symbol: "STARTS WITH", Precedence: precPredicate}
	OpEndsWith         = &Operator{Name: "ends-with", Symbol: "ENDS WITH", Precedence: precPredicate}
	OpContains         = &Operator{Name: "contains", Symbol: "CONTAINS", Precedence: precPredicate}
	OpIsNull           = &Operator{Name: "is-null", Symbol: "IS NULL", Precedence: precPredicate, Unary: true}
	OpIsNotNull        = &Operator{Name: "is-not-null", Symbol: "IS NOT NULL", Precedence: precPredicate, Unary: true}
	OpPlus             = &Operator{Name: "plus", Symbol: "+", Precedence: precAdditive}
	OpMinus            = &Operator{Name: "minus", Symbol: "-", Precedence: precAdditive}
	OpMult             = &Operator{Name: "mult", Symbol: "*", Precedence: precMultiplicative}
	OpDiv              = &Operator{Name: "div", Symbol: "/", Precedence: precMultiplicative}
	OpMod              = &Operator{Name: "mod", Symbol: "%", Precedence: precMultiplicative}
	OpPow              = &Operator{Name: "pow", Symbol: "^", Precedence: precPower}
	OpUnaryPlus        = &Operator{Name: "unary-plus", Symbol: "+", Precedence: precUnary, Unary: true}
	OpUnaryMinus       = &Operator{Name: "unary-minus", Symbol: "-", Precedence: precUnary, Unary: true}
)

// binaryOperators maps an infix token to its operator. Multi-word operators
// (STARTS WITH, ENDS WITH, IS [NOT] NULL) are recognized by the parser
// before consulting this table.
var binaryOperators = map[string]*Operator{
	"OR":       OpOr,
	"XOR":      OpXor,
	"AND":      OpAnd,
	"=":        OpEqual,
	"<>":       OpNotEqual,
	"!=":       OpNotEqual,
	"<":        OpLessThan,
	">":        OpGreaterThan,
	"<=":       OpLessThanEqual,
	">=":       OpGreaterThanEqual,
	"=~":       OpRegex,
	"IN":       OpIn,
	"CONTAINS": OpContains,
	"+":        OpPlus,
	"-":        OpMinus,
	"*":        OpMult,
	"/":        OpDiv,
	"%":        OpMod,
	"^":        OpPow,
}

// Operators returns every operator in precedence order, loosest first.
func Operators() []*Operator {
	return []*Operator{
		OpOr, OpXor, OpAnd, OpNot,
		OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessThanEqual, OpGreaterThanEqual,
		OpRegex, OpIn, OpStartsWith, OpEndsWith, OpContains, OpIsNull, OpIsNotNull,
		OpPlus, OpMinus,
		OpMult, OpDiv, OpMod,
		OpPow,
		OpUnaryPlus, OpUnaryMinus,
	}
}

// isComparison reports whether op participates in comparison chains.
func isComparison(op *Operator) bool {
	return op.Precedence == precComparison
}
