package cypherparse

import "github.com/alecthomas/participle/v2/lexer"

// parseSchemaCommand parses CREATE/DROP INDEX and CONSTRAINT commands.
func (p *parser) parseSchemaCommand() StatementBody {
	start := p.start()
	create := p.isWord("CREATE")

	p.s.next() // CREATE or DROP

	if p.acceptWord("INDEX") {
		return p.parseIndexCommand(start, create)
	}

	p.expectWord("CONSTRAINT")
	p.expectWord("ON")
	p.expectOp("(")

	if p.acceptOp(")") {
		return p.parseRelConstraint(start, create)
	}

	return p.parseNodeConstraint(start, create)
}

func (p *parser) parseIndexCommand(start lexer.Position, create bool) StatementBody {
	p.expectWord("ON")
	p.expectOp(":")

	label := p.parseLabel()

	p.expectOp("(")

	prop := p.parsePropName()

	p.expectOp(")")

	if create {
		return &CreateNodePropIndex{node: p.mk(KindCreateNodePropIndex, start), Label: label, PropName: prop}
	}

	return &DropNodePropIndex{node: p.mk(KindDropNodePropIndex, start), Label: label, PropName: prop}
}

func (p *parser) parseNodeConstraint(start lexer.Position, create bool) StatementBody {
	id := p.parseIdentifier()

	p.expectOp(":")

	label := p.parseLabel()

	p.expectOp(")")

	expr, unique := p.parseConstraintAssertion()

	if create {
		return &CreateNodePropConstraint{
			node:       p.mk(KindCreateNodePropConstraint, start),
			Identifier: id,
			Label:      label,
			Expression: expr,
			Unique:     unique,
		}
	}

	return &DropNodePropConstraint{
		node:       p.mk(KindDropNodePropConstraint, start),
		Identifier: id,
		Label:      label,
		Expression: expr,
		Unique:     unique,
	}
}

// parseRelConstraint parses the remainder of ()-[r:TYPE]-() ASSERT ...
// after the leading empty node.
func (p *parser) parseRelConstraint(start lexer.Position, create bool) StatementBody {
	p.acceptOp("<")
	p.expectOp("-")
	p.expectOp("[")

	id := p.parseIdentifier()

	p.expectOp(":")

	relType := p.parseRelType()

	p.expectOp("]")
	p.expectOp("-")
	p.acceptOp(">")
	p.expectOp("(")
	p.expectOp(")")

	expr, unique := p.parseConstraintAssertion()

	if create {
		return &CreateRelPropConstraint{
			node:       p.mk(KindCreateRelPropConstraint, start),
			Identifier: id,
			RelType:    relType,
			Expression: expr,
			Unique:     unique,
		}
	}

	return &DropRelPropConstraint{
		node:       p.mk(KindDropRelPropConstraint, start),
		Identifier: id,
		RelType:    relType,
		Expression: expr,
		Unique:     unique,
	}
}

// parseConstraintAssertion parses ASSERT exists(expr) or ASSERT expr IS UNIQUE.
func (p *parser) parseConstraintAssertion() (Expression, bool) {
	p.expectWord("ASSERT")

	if p.isWord("EXISTS") && p.isOpAt(1, "(") {
		p.s.next()
		p.s.next()

		expr := p.parseExpression()

		p.expectOp(")")

		return expr, false
	}

	expr := p.parseExpr(precAdditive)

	p.expectWord("IS")
	p.expectWord("UNIQUE")

	return expr, true
}
