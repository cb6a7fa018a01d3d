package cypherparse

import "strings"

func (p *parser) parsePattern() *Pattern {
	start := p.start()

	paths := []Path{p.parsePatternPart()}
	for p.acceptOp(",") {
		paths = append(paths, p.parsePatternPart())
	}

	return &Pattern{node: p.mk(KindPattern, start), Paths: paths}
}

// parsePatternPart parses an optionally named path.
func (p *parser) parsePatternPart() Path {
	start := p.start()

	if p.isIdentifier(p.s.peek()) && p.isOpAt(1, "=") {
		id := p.parseIdentifier()
		p.s.next() // =

		path := p.parseAnonymousPatternPart()

		return &NamedPath{node: p.mk(KindNamedPath, start), Identifier: id, Path: path}
	}

	return p.parseAnonymousPatternPart()
}

func (p *parser) parseAnonymousPatternPart() Path {
	if p.isShortestPath() {
		return p.parseShortestPath()
	}

	return p.parsePatternPath(false)
}

func (p *parser) isShortestPath() bool {
	tok := p.s.peek()
	if tok.Type != tIdent || !p.isOpAt(1, "(") {
		return false
	}

	return strings.EqualFold(tok.Value, "shortestPath") || strings.EqualFold(tok.Value, "allShortestPaths")
}

func (p *parser) parseShortestPath() *ShortestPath {
	start := p.start()
	name := p.s.next()

	p.expectOp("(")

	path := p.parsePatternPath(false)

	p.expectOp(")")

	return &ShortestPath{
		node:   p.mk(KindShortestPath, start),
		Single: strings.EqualFold(name.Value, "shortestPath"),
		Path:   path,
	}
}

// parsePatternPath parses alternating node and relationship patterns.
// In expression position (requireRel) the caller has already checked the
// path with patternPathAhead, and the path only extends over steps of that
// shape, so a trailing '-' is left for the arithmetic operators.
func (p *parser) parsePatternPath(requireRel bool) *PatternPath {
	start := p.start()
	elems := []PatternElement{p.parseNodePattern()}

	more := p.isRelStart
	if requireRel {
		more = func() bool { return p.stepAhead(0) > 0 }
	}

	for more() {
		elems = append(elems, p.parseRelPattern())
		elems = append(elems, p.parseNodePattern())
	}

	if requireRel && len(elems) == 1 {
		p.unexpected("a relationship pattern")
	}

	return &PatternPath{node: p.mk(KindPatternPath, start), Elements: elems}
}

func (p *parser) isRelStart() bool {
	return p.isOp("-") || (p.isOp("<") && p.isOpAt(1, "-"))
}

// patternPathAhead returns the number of tokens, starting i tokens ahead,
// shaped like a node pattern followed by at least one relationship and node
// pattern, or 0. Only the token shape is checked; map values are skipped.
func (p *parser) patternPathAhead(i int) int {
	n := p.nodePatternAhead(i)
	if n == 0 {
		return 0
	}

	step := p.stepAhead(i + n)
	if step == 0 {
		return 0
	}

	for step > 0 {
		n += step
		step = p.stepAhead(i + n)
	}

	return n
}

// stepAhead returns the length of a relationship pattern and the node
// pattern after it, starting i tokens ahead, or 0.
func (p *parser) stepAhead(i int) int {
	rel := p.relPatternAhead(i)
	if rel == 0 {
		return 0
	}

	node := p.nodePatternAhead(i + rel)
	if node == 0 {
		return 0
	}

	return rel + node
}

func (p *parser) nodePatternAhead(i int) int {
	start := i

	if !p.isOpAt(i, "(") {
		return 0
	}

	i++

	if p.isIdentifier(p.s.peekAt(i)) {
		i++
	}

	for p.isOpAt(i, ":") {
		if !p.isName(p.s.peekAt(i + 1)) {
			return 0
		}

		i += 2
	}

	i, ok := p.propertiesAhead(i)
	if !ok || !p.isOpAt(i, ")") {
		return 0
	}

	return i + 1 - start
}

func (p *parser) relPatternAhead(i int) int {
	start := i

	if p.isOpAt(i, "<") {
		i++
	}

	if !p.isOpAt(i, "-") {
		return 0
	}

	i++

	if p.isOpAt(i, "[") {
		i++

		if p.isIdentifier(p.s.peekAt(i)) {
			i++
		}

		if p.isOpAt(i, ":") {
			if !p.isName(p.s.peekAt(i + 1)) {
				return 0
			}

			i += 2

			for p.isOpAt(i, "|") {
				i++

				if p.isOpAt(i, ":") {
					i++
				}

				if !p.isName(p.s.peekAt(i)) {
					return 0
				}

				i++
			}
		}

		if p.isOpAt(i, "*") {
			i++

			if p.s.peekAt(i).Type == tInteger {
				i++
			}

			if p.isOpAt(i, "..") {
				i++

				if p.s.peekAt(i).Type == tInteger {
					i++
				}
			}
		}

		var ok bool
		if i, ok = p.propertiesAhead(i); !ok || !p.isOpAt(i, "]") {
			return 0
		}

		i++
	}

	if !p.isOpAt(i, "-") {
		return 0
	}

	i++

	if p.isOpAt(i, ">") {
		i++
	}

	return i - start
}

// propertiesAhead skips an optional parameter or map literal i tokens ahead.
// Each top-level map entry must start with "key:"; anything else, such as a
// map projection selector, is not a pattern.
func (p *parser) propertiesAhead(i int) (int, bool) {
	if p.s.peekAt(i).Type == tParam {
		return i + 1, true
	}

	if !p.isOpAt(i, "{") {
		return i, true
	}

	i++
	depth := 1
	entry := true

	for {
		tok := p.s.peekAt(i)
		if tok.EOF() {
			return i, false
		}

		if depth == 1 && entry && !p.isOpAt(i, "}") && (!p.isName(tok) || !p.isOpAt(i+1, ":")) {
			return i, false
		}

		entry = false

		if tok.Type == tOp {
			switch tok.Value {
			case "{", "[", "(":
				depth++
			case "}", "]", ")":
				depth--
				if depth == 0 {
					return i + 1, tok.Value == "}"
				}
			case ",":
				entry = depth == 1
			}
		}

		i++
	}
}

func (p *parser) parseNodePattern() *NodePattern {
	start := p.start()

	p.expectOp("(")

	n := &NodePattern{}

	if p.isIdentifier(p.s.peek()) {
		n.Identifier = p.parseIdentifier()
	}

	n.Labels = p.parseLabels()
	n.Properties = p.parseProperties()

	p.expectOp(")")

	n.node = p.mk(KindNodePattern, start)

	return n
}

// parseProperties parses an optional map literal or parameter.
func (p *parser) parseProperties() Expression {
	tok := p.s.peek()

	switch {
	case p.isOp("{"):
		return p.parseMapLiteral()
	case tok.Type == tParam:
		p.s.next()

		return &Parameter{node: p.mk(KindParameter, tok.Pos), Name: paramName(tok.Value)}
	}

	return nil
}

func (p *parser) parseRelPattern() *RelPattern {
	start := p.start()
	left := p.acceptOp("<")

	p.expectOp("-")

	r := &RelPattern{}

	if p.acceptOp("[") {
		if p.isIdentifier(p.s.peek()) {
			r.Identifier = p.parseIdentifier()
		}

		if p.acceptOp(":") {
			r.RelTypes = append(r.RelTypes, p.parseRelType())

			for p.acceptOp("|") {
				p.acceptOp(":")
				r.RelTypes = append(r.RelTypes, p.parseRelType())
			}
		}

		if p.isOp("*") {
			r.VarLength = p.parseRange()
		}

		r.Properties = p.parseProperties()

		p.expectOp("]")
	}

	p.expectOp("-")

	right := p.acceptOp(">")

	switch {
	case left && !right:
		r.Direction = RightToLeft
	case right && !left:
		r.Direction = LeftToRight
	default:
		r.Direction = Undirected
	}

	r.node = p.mk(KindRelPattern, start)

	return r
}

// parseRange parses *, *n, *n.., *..m and *n..m.
func (p *parser) parseRange() *Range {
	start := p.start()
	p.s.next() // *

	rng := &Range{}

	if p.s.peek().Type == tInteger {
		v := int(p.parseInteger().Value)
		rng.Start = &v
	}

	if p.acceptOp("..") {
		if p.s.peek().Type == tInteger {
			v := int(p.parseInteger().Value)
			rng.End = &v
		}
	} else if rng.Start != nil {
		v := *rng.Start
		rng.End = &v
	}

	rng.node = p.mk(KindRange, start)

	return rng
}
