package cypherparse

import "github.com/alecthomas/participle/v2/lexer"

// -----------------------------------------------------------------------------
// Query
// -----------------------------------------------------------------------------

func (p *parser) parseQuery() *Query {
	start := p.start()

	var options []QueryOption

	if p.isWord("USING") && p.isWordAt(1, "PERIODIC") {
		options = append(options, p.parsePeriodicCommit())
	}

	clauses := p.parseClauses(func() bool { return p.atDirectiveEnd() })
	if !p.atDirectiveEnd() {
		p.unexpected("a clause keyword")
	}

	return &Query{node: p.mk(KindQuery, start), Options: options, Clauses: clauses}
}

func (p *parser) parsePeriodicCommit() *UsingPeriodicCommit {
	start := p.start()
	p.s.next() // USING
	p.s.next() // PERIODIC
	p.expectWord("COMMIT")

	opt := &UsingPeriodicCommit{}
	if p.s.peek().Type == tInteger {
		opt.Limit = p.parseInteger()
	}

	opt.node = p.mk(KindUsingPeriodicCommit, start)

	return opt
}

// parseClauses parses at least one clause, stopping at the first token
// that does not begin a clause.
func (p *parser) parseClauses(done func() bool) []Clause {
	var clauses []Clause

	for !done() {
		c := p.parseClause()
		if c == nil {
			break
		}

		clauses = append(clauses, c)
	}

	if len(clauses) == 0 {
		p.unexpected("a clause keyword")
	}

	return clauses
}

// parseClause dispatches on the leading keyword. It returns nil when the
// current token does not begin a clause.
func (p *parser) parseClause() Clause {
	switch {
	case p.isWord("MATCH"), p.isWord("OPTIONAL"):
		return p.parseMatch()
	case p.isWord("MERGE"):
		return p.parseMerge()
	case p.isWord("CREATE"):
		return p.parseCreate()
	case p.isWord("SET"):
		return p.parseSet()
	case p.isWord("DELETE"), p.isWord("DETACH"):
		return p.parseDelete()
	case p.isWord("REMOVE"):
		return p.parseRemove()
	case p.isWord("FOREACH"):
		return p.parseForEach()
	case p.isWord("WITH"):
		return p.parseWith()
	case p.isWord("UNWIND"):
		return p.parseUnwind()
	case p.isWord("CALL"):
		return p.parseCall()
	case p.isWord("RETURN"):
		return p.parseReturn()
	case p.isWord("UNION"):
		return p.parseUnion()
	case p.isWord("START"):
		return p.parseStart()
	case p.isWord("LOAD"):
		return p.parseLoadCsv()
	default:
		return nil
	}
}

// -----------------------------------------------------------------------------
// Reading clauses
// -----------------------------------------------------------------------------

func (p *parser) parseMatch() *Match {
	start := p.start()
	m := &Match{Optional: p.acceptWord("OPTIONAL")}

	p.expectWord("MATCH")

	m.Pattern = p.parsePattern()

	for p.isWord("USING") {
		m.Hints = append(m.Hints, p.parseMatchHint())
	}

	if p.acceptWord("WHERE") {
		m.Predicate = p.parseExpression()
	}

	m.node = p.mk(KindMatch, start)

	return m
}

func (p *parser) parseMatchHint() MatchHint {
	start := p.start()
	p.s.next() // USING

	switch {
	case p.acceptWord("INDEX"):
		id := p.parseIdentifier()
		p.expectOp(":")
		label := p.parseLabel()
		p.expectOp("(")
		prop := p.parsePropName()
		p.expectOp(")")

		return &UsingIndex{node: p.mk(KindUsingIndex, start), Identifier: id, Label: label, PropName: prop}

	case p.acceptWord("JOIN"):
		p.expectWord("ON")

		ids := []*Identifier{p.parseIdentifier()}
		for p.acceptOp(",") {
			ids = append(ids, p.parseIdentifier())
		}

		return &UsingJoin{node: p.mk(KindUsingJoin, start), Identifiers: ids}

	case p.acceptWord("SCAN"):
		id := p.parseIdentifier()
		p.expectOp(":")
		label := p.parseLabel()

		return &UsingScan{node: p.mk(KindUsingScan, start), Identifier: id, Label: label}
	}

	p.unexpected("INDEX, JOIN or SCAN")

	return nil
}

func (p *parser) parseUnwind() *Unwind {
	start := p.start()
	p.s.next() // UNWIND

	expr := p.parseExpression()

	p.expectWord("AS")

	alias := p.parseIdentifier()

	return &Unwind{node: p.mk(KindUnwind, start), Expression: expr, Alias: alias}
}

func (p *parser) parseLoadCsv() *LoadCsv {
	start := p.start()
	p.s.next() // LOAD
	p.expectWord("CSV")

	l := &LoadCsv{}

	if p.acceptWord("WITH") {
		p.expectWord("HEADERS")

		l.WithHeaders = true
	}

	p.expectWord("FROM")

	l.URL = p.parseExpression()

	p.expectWord("AS")

	l.Identifier = p.parseIdentifier()

	if p.acceptWord("FIELDTERMINATOR") {
		l.FieldTerminator = p.parseStringLiteral()
	}

	l.node = p.mk(KindLoadCsv, start)

	return l
}

func (p *parser) parseStart() *Start {
	start := p.start()
	p.s.next() // START

	s := &Start{Points: []StartPoint{p.parseStartPoint()}}
	for p.acceptOp(",") {
		s.Points = append(s.Points, p.parseStartPoint())
	}

	if p.acceptWord("WHERE") {
		s.Predicate = p.parseExpression()
	}

	s.node = p.mk(KindStart, start)

	return s
}

func (p *parser) parseStartPoint() StartPoint {
	start := p.start()
	id := p.parseIdentifier()

	p.expectOp("=")

	var rel bool

	switch {
	case p.acceptWord("NODE"):
	case p.acceptWord("RELATIONSHIP"), p.acceptWord("REL"):
		rel = true
	default:
		p.unexpected("node or relationship")
	}

	if p.acceptOp(":") {
		return p.parseIndexStartPoint(start, id, rel)
	}

	p.expectOp("(")

	if p.acceptOp("*") {
		p.expectOp(")")

		if rel {
			return &AllRelsScan{node: p.mk(KindAllRelsScan, start), Identifier: id}
		}

		return &AllNodesScan{node: p.mk(KindAllNodesScan, start), Identifier: id}
	}

	ids := []*Integer{p.parseInteger()}
	for p.acceptOp(",") {
		ids = append(ids, p.parseInteger())
	}

	p.expectOp(")")

	if rel {
		return &RelIDLookup{node: p.mk(KindRelIDLookup, start), Identifier: id, IDs: ids}
	}

	return &NodeIDLookup{node: p.mk(KindNodeIDLookup, start), Identifier: id, IDs: ids}
}

func (p *parser) parseIndexStartPoint(start lexer.Position, id *Identifier, rel bool) StartPoint {
	name, tok := p.parseSymbolicName("an index name")
	index := &IndexName{node: p.mk(KindIndexName, tok.Pos), Value: name}

	p.expectOp("(")

	var (
		prop  *PropName
		value Expression
	)

	if p.isName(p.s.peek()) && p.isOpAt(1, "=") {
		prop = p.parsePropName()
		p.s.next() // =
	}

	value = p.parseLookupValue()

	p.expectOp(")")

	switch {
	case prop != nil && rel:
		return &RelIndexLookup{
			node: p.mk(KindRelIndexLookup, start), Identifier: id, IndexName: index, PropName: prop, Lookup: value,
		}
	case prop != nil:
		return &NodeIndexLookup{
			node: p.mk(KindNodeIndexLookup, start), Identifier: id, IndexName: index, PropName: prop, Lookup: value,
		}
	case rel:
		return &RelIndexQuery{node: p.mk(KindRelIndexQuery, start), Identifier: id, IndexName: index, Query: value}
	default:
		return &NodeIndexQuery{node: p.mk(KindNodeIndexQuery, start), Identifier: id, IndexName: index, Query: value}
	}
}

func (p *parser) parseLookupValue() Expression {
	tok := p.s.peek()

	switch tok.Type {
	case tString:
		return p.parseStringLiteral()
	case tParam:
		p.s.next()

		return &Parameter{node: p.mk(KindParameter, tok.Pos), Name: paramName(tok.Value)}
	}

	p.unexpected("a string or parameter")

	return nil
}

// -----------------------------------------------------------------------------
// Updating clauses
// -----------------------------------------------------------------------------

func (p *parser) parseCreate() *Create {
	start := p.start()
	p.s.next() // CREATE

	c := &Create{Unique: p.acceptWord("UNIQUE")}
	c.Pattern = p.parsePattern()
	c.node = p.mk(KindCreate, start)

	return c
}

func (p *parser) parseMerge() *Merge {
	start := p.start()
	p.s.next() // MERGE

	m := &Merge{Path: p.parsePatternPart()}

	for p.isWord("ON") {
		as := p.start()
		p.s.next() // ON

		switch {
		case p.acceptWord("MATCH"):
			p.expectWord("SET")
			m.Actions = append(m.Actions, &OnMatch{Items: p.parseSetItems(), node: p.mk(KindOnMatch, as)})
		case p.acceptWord("CREATE"):
			p.expectWord("SET")
			m.Actions = append(m.Actions, &OnCreate{Items: p.parseSetItems(), node: p.mk(KindOnCreate, as)})
		default:
			p.unexpected("MATCH or CREATE")
		}
	}

	m.node = p.mk(KindMerge, start)

	return m
}

func (p *parser) parseSet() *Set {
	start := p.start()
	p.s.next() // SET

	items := p.parseSetItems()

	return &Set{node: p.mk(KindSet, start), Items: items}
}

func (p *parser) parseSetItems() []SetItem {
	items := []SetItem{p.parseSetItem()}
	for p.acceptOp(",") {
		items = append(items, p.parseSetItem())
	}

	return items
}

func (p *parser) parseSetItem() SetItem {
	start := p.start()
	target := p.parsePropertyChain()

	switch t := target.(type) {
	case *PropertyOperator:
		p.expectOp("=")

		return &SetProperty{Property: t, Expression: p.parseExpression(), node: p.mk(KindSetProperty, start)}

	case *Identifier:
		switch {
		case p.acceptOp("="):
			return &SetAllProperties{Identifier: t, Expression: p.parseExpression(), node: p.mk(KindSetAllProperties, start)}
		case p.acceptOp("+="):
			return &MergeProperties{Identifier: t, Expression: p.parseExpression(), node: p.mk(KindMergeProperties, start)}
		case p.isOp(":"):
			labels := p.parseLabels()

			return &SetLabels{node: p.mk(KindSetLabels, start), Identifier: t, Labels: labels}
		}
	}

	p.unexpected("'=', '+=' or a label")

	return nil
}

// parsePropertyChain parses an identifier or parenthesized expression
// followed by property lookups, as used by SET and REMOVE.
func (p *parser) parsePropertyChain() Expression {
	start := p.start()

	var expr Expression

	if p.isOp("(") {
		p.s.next()
		expr = p.parseExpression()
		p.expectOp(")")
	} else {
		expr = p.parseIdentifier()
	}

	for p.isOp(".") {
		p.s.next()

		prop := p.parsePropName()
		expr = &PropertyOperator{node: p.mk(KindPropertyOperator, start), Expression: expr, PropName: prop}
	}

	return expr
}

func (p *parser) parseDelete() *Delete {
	start := p.start()
	d := &Delete{Detach: p.acceptWord("DETACH")}

	p.expectWord("DELETE")

	d.Expressions = p.parseExpressionList()
	d.node = p.mk(KindDelete, start)

	return d
}

func (p *parser) parseRemove() *Remove {
	start := p.start()
	p.s.next() // REMOVE

	items := []RemoveItem{p.parseRemoveItem()}
	for p.acceptOp(",") {
		items = append(items, p.parseRemoveItem())
	}

	return &Remove{node: p.mk(KindRemove, start), Items: items}
}

func (p *parser) parseRemoveItem() RemoveItem {
	start := p.start()
	target := p.parsePropertyChain()

	switch t := target.(type) {
	case *PropertyOperator:
		return &RemoveProperty{node: p.mk(KindRemoveProperty, start), Property: t}
	case *Identifier:
		if p.isOp(":") {
			labels := p.parseLabels()

			return &RemoveLabels{node: p.mk(KindRemoveLabels, start), Identifier: t, Labels: labels}
		}
	}

	p.unexpected("a label or property")

	return nil
}

func (p *parser) parseForEach() *ForEach {
	start := p.start()
	p.s.next() // FOREACH
	p.expectOp("(")

	f := &ForEach{Identifier: p.parseIdentifier()}

	p.expectWord("IN")

	f.Expression = p.parseExpression()

	p.expectOp("|")

	f.Clauses = p.parseClauses(func() bool { return p.isOp(")") })

	p.expectOp(")")

	f.node = p.mk(KindForEach, start)

	return f
}

// -----------------------------------------------------------------------------
// Projection clauses
// -----------------------------------------------------------------------------

// projectionBody holds the parts shared by WITH and RETURN.
type projectionBody struct {
	distinct        bool
	includeExisting bool
	projections     []*Projection
	orderBy         *OrderBy
	skip            Expression
	limit           Expression
}

func (p *parser) parseProjectionBody() projectionBody {
	var b projectionBody

	b.distinct = p.acceptWord("DISTINCT")

	if p.acceptOp("*") {
		b.includeExisting = true

		if p.acceptOp(",") {
			b.projections = p.parseProjections()
		}
	} else {
		b.projections = p.parseProjections()
	}

	if p.isWord("ORDER") {
		b.orderBy = p.parseOrderBy()
	}

	if p.acceptWord("SKIP") {
		b.skip = p.parseExpression()
	}

	if p.acceptWord("LIMIT") {
		b.limit = p.parseExpression()
	}

	return b
}

func (p *parser) parseProjections() []*Projection {
	projections := []*Projection{p.parseProjection()}
	for p.acceptOp(",") {
		projections = append(projections, p.parseProjection())
	}

	return projections
}

func (p *parser) parseProjection() *Projection {
	start := p.start()
	proj := &Projection{Expression: p.parseExpression()}

	if p.acceptWord("AS") {
		proj.Alias = p.parseIdentifier()
	}

	proj.node = p.mk(KindProjection, start)

	return proj
}

func (p *parser) parseOrderBy() *OrderBy {
	start := p.start()
	p.s.next() // ORDER
	p.expectWord("BY")

	items := []*SortItem{p.parseSortItem()}
	for p.acceptOp(",") {
		items = append(items, p.parseSortItem())
	}

	return &OrderBy{node: p.mk(KindOrderBy, start), Items: items}
}

func (p *parser) parseSortItem() *SortItem {
	start := p.start()
	item := &SortItem{Expression: p.parseExpression(), Ascending: true}

	switch {
	case p.acceptWord("ASC"), p.acceptWord("ASCENDING"):
	case p.acceptWord("DESC"), p.acceptWord("DESCENDING"):
		item.Ascending = false
	}

	item.node = p.mk(KindSortItem, start)

	return item
}

func (p *parser) parseWith() *With {
	start := p.start()
	p.s.next() // WITH

	b := p.parseProjectionBody()
	w := &With{
		Distinct:        b.distinct,
		IncludeExisting: b.includeExisting,
		Projections:     b.projections,
		OrderBy:         b.orderBy,
		Skip:            b.skip,
		Limit:           b.limit,
	}

	if p.acceptWord("WHERE") {
		w.Predicate = p.parseExpression()
	}

	w.node = p.mk(KindWith, start)

	return w
}

func (p *parser) parseReturn() *Return {
	start := p.start()
	p.s.next() // RETURN

	b := p.parseProjectionBody()

	return &Return{
		node:            p.mk(KindReturn, start),
		Distinct:        b.distinct,
		IncludeExisting: b.includeExisting,
		Projections:     b.projections,
		OrderBy:         b.orderBy,
		Skip:            b.skip,
		Limit:           b.limit,
	}
}

func (p *parser) parseCall() *Call {
	start := p.start()
	p.s.next() // CALL

	name, pos := p.parseQualifiedName("a procedure name")
	c := &Call{ProcName: &ProcName{node: p.mk(KindProcName, pos), Value: name}}

	if p.acceptOp("(") {
		if !p.isOp(")") {
			c.Args = p.parseExpressionList()
		}

		p.expectOp(")")
	}

	if p.acceptWord("YIELD") {
		c.Projections = p.parseProjections()

		if p.acceptWord("WHERE") {
			c.Predicate = p.parseExpression()
		}
	}

	c.node = p.mk(KindCall, start)

	return c
}

func (p *parser) parseUnion() *Union {
	start := p.start()
	p.s.next() // UNION

	all := p.acceptWord("ALL")

	return &Union{node: p.mk(KindUnion, start), All: all}
}
