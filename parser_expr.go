package cypherparse

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// parseExpression parses a full expression.
func (p *parser) parseExpression() Expression {
	return p.parseExpr(precOr)
}

func (p *parser) parseExpressionList() []Expression {
	exprs := []Expression{p.parseExpression()}
	for p.acceptOp(",") {
		exprs = append(exprs, p.parseExpression())
	}

	return exprs
}

// parseExpr is the precedence climbing loop. It parses operators whose
// precedence is at least minPrec.
func (p *parser) parseExpr(minPrec int) Expression {
	start := p.start()

	var left Expression

	if minPrec <= precNot && p.isWord("NOT") {
		p.s.next()

		arg := p.parseExpr(precNot)
		left = &UnaryOperator{node: p.mk(KindUnaryOperator, start), Op: OpNot, Arg: arg}
	} else {
		left = p.parseUnary()
	}

	for {
		op, width := p.peekInfix()
		if op == nil || op.Precedence < minPrec {
			return left
		}

		switch {
		case isComparison(op):
			left = p.parseComparison(start, left)

		case op.Unary:
			for range width {
				p.s.next()
			}

			left = &UnaryOperator{node: p.mk(KindUnaryOperator, start), Op: op, Arg: left}

		default:
			for range width {
				p.s.next()
			}

			next := op.Precedence + 1
			if op.Assoc == AssocRight {
				next = op.Precedence
			}

			right := p.parseExpr(next)
			left = &BinaryOperator{node: p.mk(KindBinaryOperator, start), Op: op, Arg1: left, Arg2: right}
		}
	}
}

// parseComparison collects a chain of comparison operators into a single
// Comparison node.
func (p *parser) parseComparison(start lexer.Position, first Expression) Expression {
	cmp := &Comparison{Args: []Expression{first}}

	for {
		op, width := p.peekInfix()
		if op == nil || !isComparison(op) {
			break
		}

		for range width {
			p.s.next()
		}

		cmp.Ops = append(cmp.Ops, op)
		cmp.Args = append(cmp.Args, p.parseExpr(precComparison+1))
	}

	if len(cmp.Ops) != len(cmp.Args)-1 {
		panic(internalError(start, "comparison with %d operators and %d arguments", len(cmp.Ops), len(cmp.Args)))
	}

	cmp.node = p.mk(KindComparison, start)

	return cmp
}

// peekInfix returns the infix or postfix operator at the current token and
// the number of tokens it spans.
func (p *parser) peekInfix() (*Operator, int) {
	tok := p.s.peek()

	switch tok.Type {
	case tOp:
		if op, ok := binaryOperators[tok.Value]; ok {
			return op, 1
		}
	case tKeyword:
		switch strings.ToUpper(tok.Value) {
		case "STARTS":
			if p.isWordAt(1, "WITH") {
				return OpStartsWith, 2 //nolint:mnd // STARTS WITH
			}
		case "ENDS":
			if p.isWordAt(1, "WITH") {
				return OpEndsWith, 2 //nolint:mnd // ENDS WITH
			}
		case "IS":
			if p.isWordAt(1, "NULL") {
				return OpIsNull, 2 //nolint:mnd // IS NULL
			}

			if p.isWordAt(1, "NOT") && p.isWordAt(2, "NULL") {
				return OpIsNotNull, 3 //nolint:mnd // IS NOT NULL
			}
		default:
			if op, ok := binaryOperators[strings.ToUpper(tok.Value)]; ok {
				return op, 1
			}
		}
	}

	return nil, 0
}

// parseUnary parses prefix sign operators followed by a postfix expression.
func (p *parser) parseUnary() Expression {
	start := p.start()

	var op *Operator

	switch {
	case p.isOp("-"):
		op = OpUnaryMinus
	case p.isOp("+"):
		op = OpUnaryPlus
	default:
		return p.parsePostfix(p.parsePrimary())
	}

	p.s.next()

	arg := p.parseUnary()

	return &UnaryOperator{node: p.mk(KindUnaryOperator, start), Op: op, Arg: arg}
}

// parsePostfix applies property lookups, subscripts, slices and label
// tests to expr.
func (p *parser) parsePostfix(expr Expression) Expression {
	start := expr.Span().Start

	for {
		switch {
		case p.isOp(".") && p.isName(p.s.peekAt(1)):
			p.s.next()

			prop := p.parsePropName()
			expr = &PropertyOperator{node: p.mk(KindPropertyOperator, start), Expression: expr, PropName: prop}

		case p.isOp("["):
			expr = p.parseSubscript(start, expr)

		case p.isOp(":") && p.isName(p.s.peekAt(1)):
			labels := p.parseLabels()
			expr = &LabelsOperator{node: p.mk(KindLabelsOperator, start), Expression: expr, Labels: labels}

		default:
			return expr
		}
	}
}

func (p *parser) parseSubscript(start lexer.Position, expr Expression) Expression {
	p.s.next() // [

	var from Expression
	if !p.isOp("..") {
		from = p.parseExpression()
	}

	if p.acceptOp("..") {
		var to Expression
		if !p.isOp("]") {
			to = p.parseExpression()
		}

		p.expectOp("]")

		return &SliceOperator{node: p.mk(KindSliceOperator, start), Expression: expr, Start: from, End: to}
	}

	p.expectOp("]")

	return &SubscriptOperator{node: p.mk(KindSubscriptOperator, start), Expression: expr, Subscript: from}
}

// -----------------------------------------------------------------------------
// Primary expressions
// -----------------------------------------------------------------------------

func (p *parser) parsePrimary() Expression {
	tok := p.s.peek()

	switch tok.Type {
	case tInteger:
		p.s.next()

		return &Integer{node: p.mk(KindInteger, tok.Pos), Value: p.integerValue(tok)}

	case tFloat:
		p.s.next()

		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.fail(tok, "invalid float literal '%s'", tok.Value)
		}

		return &Float{node: p.mk(KindFloat, tok.Pos), Value: v}

	case tString:
		return p.parseStringLiteral()

	case tParam:
		p.s.next()

		return &Parameter{node: p.mk(KindParameter, tok.Pos), Name: paramName(tok.Value)}

	case tOp:
		switch tok.Value {
		case "(":
			return p.parseParenthesized()
		case "[":
			return p.parseBracketed()
		case "{":
			return p.parseMapLiteral()
		}

	case tKeyword:
		switch strings.ToUpper(tok.Value) {
		case "TRUE":
			p.s.next()

			return &True{node: p.mk(KindTrue, tok.Pos)}
		case "FALSE":
			p.s.next()

			return &False{node: p.mk(KindFalse, tok.Pos)}
		case "NULL":
			p.s.next()

			return &Null{node: p.mk(KindNull, tok.Pos)}
		case "CASE":
			return p.parseCase()
		case "ALL":
			if p.isIterationStart() {
				return p.parseQuantifier(KindAll)
			}
		}

	case tIdent, tQuotedIdent:
		return p.parseIdentOrCall()
	}

	p.unexpected("an expression")

	return nil
}

func (p *parser) integerValue(tok lexer.Token) int64 {
	text := tok.Value
	if len(text) > 1 && text[0] == '0' && isDigit(rune(text[1])) {
		text = "0o" + text[1:]
	}

	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		p.fail(tok, "invalid integer literal '%s'", tok.Value)
	}

	return v
}

// isIterationStart reports whether the tokens look like name(id IN ...).
func (p *parser) isIterationStart() bool {
	return p.isOpAt(1, "(") && p.isIdentifier(p.s.peekAt(2)) && p.isWordAt(3, "IN")
}

func (p *parser) parseIdentOrCall() Expression {
	tok := p.s.peek()

	if tok.Type == tIdent {
		switch strings.ToLower(tok.Value) {
		case "any":
			if p.isIterationStart() {
				return p.parseQuantifier(KindAny)
			}
		case "none":
			if p.isIterationStart() {
				return p.parseQuantifier(KindNone)
			}
		case "single":
			if p.isIterationStart() {
				return p.parseQuantifier(KindSingle)
			}
		case "filter":
			if p.isIterationStart() {
				return p.parseQuantifier(KindFilter)
			}
		case "extract":
			if p.isIterationStart() {
				return p.parseExtract()
			}
		case "reduce":
			if p.isOpAt(1, "(") && p.isIdentifier(p.s.peekAt(2)) && p.isOpAt(3, "=") {
				return p.parseReduce()
			}
		case "shortestpath", "allshortestpaths":
			if p.isOpAt(1, "(") {
				return p.parseShortestPath()
			}
		}
	}

	if p.isFunctionCall() {
		return p.parseFunctionCall()
	}

	id := p.parseIdentifier()

	if p.isOp("{") {
		return p.parseMapProjection(id)
	}

	if next := p.s.peek(); next.Type == tParam && strings.HasPrefix(next.Value, "{") {
		// n{a} lexes as a legacy parameter; it is a projection of a.
		return p.parseBraceProjection(id)
	}

	return id
}

// isFunctionCall looks ahead for name(.name)* followed by '('.
func (p *parser) isFunctionCall() bool {
	i := 1
	for p.isOpAt(i, ".") && p.isName(p.s.peekAt(i+1)) {
		i += 2
	}

	return p.isOpAt(i, "(")
}

func (p *parser) parseFunctionCall() Expression {
	start := p.start()
	name, pos := p.parseQualifiedName("a function name")
	fn := &FunctionName{node: p.mk(KindFunctionName, pos), Value: name}

	p.expectOp("(")

	distinct := p.acceptWord("DISTINCT")

	if p.acceptOp("*") {
		p.expectOp(")")

		return &ApplyAllOperator{node: p.mk(KindApplyAllOperator, start), FuncName: fn, Distinct: distinct}
	}

	var args []Expression
	if !p.isOp(")") {
		args = p.parseExpressionList()
	}

	p.expectOp(")")

	return &ApplyOperator{node: p.mk(KindApplyOperator, start), FuncName: fn, Distinct: distinct, Args: args}
}

// parseIteration parses "id IN expr" as used by comprehensions and
// quantifiers.
func (p *parser) parseIteration() (*Identifier, Expression) {
	id := p.parseIdentifier()

	p.expectWord("IN")

	return id, p.parseExpression()
}

func (p *parser) parseQuantifier(kind Kind) Expression {
	start := p.start()
	p.s.next() // name
	p.s.next() // (

	id, expr := p.parseIteration()

	var pred Expression
	if p.acceptWord("WHERE") {
		pred = p.parseExpression()
	}

	p.expectOp(")")

	n := p.mk(kind, start)

	switch kind {
	case KindAll:
		return &AllQuantifier{node: n, Identifier: id, Expression: expr, Predicate: pred}
	case KindAny:
		return &AnyQuantifier{node: n, Identifier: id, Expression: expr, Predicate: pred}
	case KindNone:
		return &NoneQuantifier{node: n, Identifier: id, Expression: expr, Predicate: pred}
	case KindSingle:
		return &SingleQuantifier{node: n, Identifier: id, Expression: expr, Predicate: pred}
	case KindFilter:
		return &Filter{node: n, Identifier: id, Expression: expr, Predicate: pred}
	}

	panic(internalError(start, "unknown quantifier kind %s", kind))
}

func (p *parser) parseExtract() Expression {
	start := p.start()
	p.s.next() // extract
	p.s.next() // (

	id, expr := p.parseIteration()

	var eval Expression
	if p.acceptOp("|") {
		eval = p.parseExpression()
	}

	p.expectOp(")")

	return &Extract{node: p.mk(KindExtract, start), Identifier: id, Expression: expr, Eval: eval}
}

func (p *parser) parseReduce() Expression {
	start := p.start()
	p.s.next() // reduce
	p.s.next() // (

	r := &Reduce{Accumulator: p.parseIdentifier()}

	p.expectOp("=")

	r.Init = p.parseExpression()

	p.expectOp(",")

	r.Identifier, r.Expression = p.parseIteration()

	p.expectOp("|")

	r.Eval = p.parseExpression()

	p.expectOp(")")

	r.node = p.mk(KindReduce, start)

	return r
}

func (p *parser) parseCase() Expression {
	start := p.start()
	p.s.next() // CASE

	c := &Case{}

	if !p.isWord("WHEN") {
		c.Expression = p.parseExpression()
	}

	if !p.isWord("WHEN") {
		p.unexpected("WHEN")
	}

	for p.acceptWord("WHEN") {
		c.Predicates = append(c.Predicates, p.parseExpression())

		p.expectWord("THEN")

		c.Values = append(c.Values, p.parseExpression())
	}

	if p.acceptWord("ELSE") {
		c.Default = p.parseExpression()
	}

	p.expectWord("END")

	c.node = p.mk(KindCase, start)

	return c
}

// parseParenthesized parses a pattern path used as an expression, or a
// parenthesized expression.
func (p *parser) parseParenthesized() Expression {
	if p.patternPathAhead(0) > 0 {
		return p.parsePatternPath(true)
	}

	p.s.next() // (

	expr := p.parseExpression()

	p.expectOp(")")

	return expr
}

// parseBracketed parses a list comprehension, pattern comprehension or
// collection literal.
func (p *parser) parseBracketed() Expression {
	start := p.start()

	if p.isIdentifier(p.s.peekAt(1)) && p.isWordAt(2, "IN") {
		return p.parseListComprehension()
	}

	if p.isPatternComprehension() {
		return p.parsePatternComprehension()
	}

	p.s.next() // [

	var elems []Expression
	if !p.isOp("]") {
		elems = p.parseExpressionList()
	}

	p.expectOp("]")

	return &Collection{node: p.mk(KindCollection, start), Elements: elems}
}

func (p *parser) parseListComprehension() Expression {
	start := p.start()
	p.s.next() // [

	lc := &ListComprehension{}
	lc.Identifier, lc.Expression = p.parseIteration()

	if p.acceptWord("WHERE") {
		lc.Predicate = p.parseExpression()
	}

	if p.acceptOp("|") {
		lc.Eval = p.parseExpression()
	}

	p.expectOp("]")

	lc.node = p.mk(KindListComprehension, start)

	return lc
}

// isPatternComprehension reports whether the '[' at the cursor opens
// "[name = path WHERE ... | ...]" rather than a list holding a path.
func (p *parser) isPatternComprehension() bool {
	i := 1
	if p.isIdentifier(p.s.peekAt(i)) && p.isOpAt(i+1, "=") {
		i += 2
	}

	n := p.patternPathAhead(i)
	if n == 0 {
		return false
	}

	return p.isOpAt(i+n, "|") || p.isWordAt(i+n, "WHERE")
}

func (p *parser) parsePatternComprehension() Expression {
	start := p.start()
	p.s.next() // [

	pc := &PatternComprehension{}

	if p.isIdentifier(p.s.peek()) && p.isOpAt(1, "=") {
		pc.Identifier = p.parseIdentifier()
		p.s.next() // =
	}

	pc.Pattern = p.parsePatternPath(true)

	if p.acceptWord("WHERE") {
		pc.Predicate = p.parseExpression()
	}

	p.expectOp("|")

	pc.Eval = p.parseExpression()

	p.expectOp("]")

	pc.node = p.mk(KindPatternComprehension, start)

	return pc
}

func (p *parser) parseMapLiteral() *Map {
	start := p.start()
	p.s.next() // {

	m := &Map{}

	if !p.isOp("}") {
		for {
			m.Keys = append(m.Keys, p.parsePropName())

			p.expectOp(":")

			m.Values = append(m.Values, p.parseExpression())

			if !p.acceptOp(",") {
				break
			}
		}
	}

	p.expectOp("}")

	m.node = p.mk(KindMap, start)

	return m
}

func (p *parser) parseMapProjection(id *Identifier) Expression {
	start := id.Span().Start
	p.s.next() // {

	mp := &MapProjection{Expression: id}

	if !p.isOp("}") {
		for {
			mp.Selectors = append(mp.Selectors, p.parseMapProjectionSelector())

			if !p.acceptOp(",") {
				break
			}
		}
	}

	p.expectOp("}")

	mp.node = p.mk(KindMapProjection, start)

	return mp
}

func (p *parser) parseBraceProjection(id *Identifier) Expression {
	tok := p.s.next()

	// The name starts one byte after the opening brace.
	pos := tok.Pos
	pos.Offset++
	pos.Column++

	name := paramName(tok.Value)
	ident := &Identifier{
		node: node{kind: KindIdentifier, span: Span{Start: pos, End: lexer.Position{
			Filename: pos.Filename, Offset: pos.Offset + len(name), Line: pos.Line, Column: pos.Column + len([]rune(name)),
		}}},
		Name: name,
	}

	sel := &MapProjectionIdentifier{node: ident.node, Identifier: ident}
	sel.kind = KindMapProjectionIdentifier

	return &MapProjection{
		node:       p.mk(KindMapProjection, id.Span().Start),
		Expression: id,
		Selectors:  []MapProjectionSelector{sel},
	}
}

func (p *parser) parseMapProjectionSelector() MapProjectionSelector {
	start := p.start()

	switch {
	case p.isOp(".") && p.isOpAt(1, "*"):
		p.s.next()
		p.s.next()

		return &MapProjectionAllProperties{node: p.mk(KindMapProjectionAllProperties, start)}

	case p.isOp("."):
		p.s.next()

		prop := p.parsePropName()

		return &MapProjectionProperty{node: p.mk(KindMapProjectionProperty, start), PropName: prop}

	case p.isName(p.s.peek()) && p.isOpAt(1, ":"):
		prop := p.parsePropName()
		p.s.next() // :
		expr := p.parseExpression()

		return &MapProjectionLiteral{node: p.mk(KindMapProjectionLiteral, start), PropName: prop, Expression: expr}

	case p.isIdentifier(p.s.peek()):
		id := p.parseIdentifier()

		return &MapProjectionIdentifier{node: p.mk(KindMapProjectionIdentifier, start), Identifier: id}
	}

	p.unexpected("a map projection selector")

	return nil
}
