package cypherparse

import "reflect"

// field is one named attribute of a node, in serialization order.
//
// value holds one of: nil, Node, []Node, string, bool, int, int64, float64,
// *Operator, []*Operator, Direction, []entry or []alternative.
type field struct {
	name  string
	value any
}

// entry is one key/value pair of a map literal.
type entry struct {
	key   *PropName
	value Expression
}

// alternative is one WHEN/THEN pair of a CASE expression.
type alternative struct {
	predicate Expression
	value     Expression
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}

	v := reflect.ValueOf(n)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

func child(name string, n Node) field {
	if isNil(n) {
		return field{name: name}
	}

	return field{name: name, value: n}
}

func list[N Node](name string, xs []N) field {
	nodes := make([]Node, 0, len(xs))
	for _, x := range xs {
		if !isNil(x) {
			nodes = append(nodes, x)
		}
	}

	return field{name: name, value: nodes}
}

func attr(name string, v any) field {
	return field{name: name, value: v}
}

func optInt(name string, v *int) field {
	if v == nil {
		return field{name: name}
	}

	return field{name: name, value: *v}
}

// Children returns the direct children of n in field order.
func Children(n Node) []Node {
	if isNil(n) {
		return nil
	}

	var out []Node

	for _, f := range n.fields() {
		switch v := f.value.(type) {
		case Node:
			out = append(out, v)
		case []Node:
			out = append(out, v...)
		case []entry:
			for _, e := range v {
				out = append(out, e.key, e.value)
			}
		case []alternative:
			for _, a := range v {
				out = append(out, a.predicate, a.value)
			}
		}
	}

	return out
}

// Walk traverses the tree rooted at n depth-first, calling fn before
// visiting children. Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}

	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// CountNodes returns the number of nodes in the trees rooted at roots.
func CountNodes(roots ...Node) int {
	count := 0

	for _, r := range roots {
		Walk(r, func(Node) bool {
			count++

			return true
		})
	}

	return count
}

// -----------------------------------------------------------------------------
// Field tables
// -----------------------------------------------------------------------------

func (n *Statement) fields() []field {
	return []field{list("options", n.Options), child("body", n.Body)}
}

func (n *CypherOption) fields() []field {
	return []field{child("version", n.Version), list("params", n.Params)}
}

func (n *CypherOptionParam) fields() []field {
	return []field{child("name", n.Name), child("value", n.Value)}
}

func (n *ExplainOption) fields() []field { return nil }
func (n *ProfileOption) fields() []field { return nil }

func (n *Command) fields() []field {
	return []field{child("name", n.Name), list("args", n.Args)}
}

func (n *CreateNodePropIndex) fields() []field {
	return []field{child("label", n.Label), child("propName", n.PropName)}
}

func (n *DropNodePropIndex) fields() []field {
	return []field{child("label", n.Label), child("propName", n.PropName)}
}

func (n *CreateNodePropConstraint) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("label", n.Label),
		child("expression", n.Expression), attr("unique", n.Unique),
	}
}

func (n *DropNodePropConstraint) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("label", n.Label),
		child("expression", n.Expression), attr("unique", n.Unique),
	}
}

func (n *CreateRelPropConstraint) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("relType", n.RelType),
		child("expression", n.Expression), attr("unique", n.Unique),
	}
}

func (n *DropRelPropConstraint) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("relType", n.RelType),
		child("expression", n.Expression), attr("unique", n.Unique),
	}
}

func (n *Query) fields() []field {
	return []field{list("options", n.Options), list("clauses", n.Clauses)}
}

func (n *UsingPeriodicCommit) fields() []field {
	return []field{child("limit", n.Limit)}
}

func (n *LoadCsv) fields() []field {
	return []field{
		attr("withHeaders", n.WithHeaders), child("url", n.URL),
		child("identifier", n.Identifier), child("fieldTerminator", n.FieldTerminator),
	}
}

func (n *Start) fields() []field {
	return []field{list("points", n.Points), child("predicate", n.Predicate)}
}

func (n *NodeIndexLookup) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("indexName", n.IndexName),
		child("propName", n.PropName), child("lookup", n.Lookup),
	}
}

func (n *NodeIndexQuery) fields() []field {
	return []field{child("identifier", n.Identifier), child("indexName", n.IndexName), child("query", n.Query)}
}

func (n *NodeIDLookup) fields() []field {
	return []field{child("identifier", n.Identifier), list("ids", n.IDs)}
}

func (n *AllNodesScan) fields() []field {
	return []field{child("identifier", n.Identifier)}
}

func (n *RelIndexLookup) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("indexName", n.IndexName),
		child("propName", n.PropName), child("lookup", n.Lookup),
	}
}

func (n *RelIndexQuery) fields() []field {
	return []field{child("identifier", n.Identifier), child("indexName", n.IndexName), child("query", n.Query)}
}

func (n *RelIDLookup) fields() []field {
	return []field{child("identifier", n.Identifier), list("ids", n.IDs)}
}

func (n *AllRelsScan) fields() []field {
	return []field{child("identifier", n.Identifier)}
}

func (n *Match) fields() []field {
	return []field{
		attr("optional", n.Optional), child("pattern", n.Pattern),
		list("hints", n.Hints), child("predicate", n.Predicate),
	}
}

func (n *UsingIndex) fields() []field {
	return []field{child("identifier", n.Identifier), child("label", n.Label), child("propName", n.PropName)}
}

func (n *UsingJoin) fields() []field {
	return []field{list("identifiers", n.Identifiers)}
}

func (n *UsingScan) fields() []field {
	return []field{child("identifier", n.Identifier), child("label", n.Label)}
}

func (n *Merge) fields() []field {
	return []field{child("path", n.Path), list("actions", n.Actions)}
}

func (n *OnMatch) fields() []field  { return []field{list("items", n.Items)} }
func (n *OnCreate) fields() []field { return []field{list("items", n.Items)} }

func (n *Create) fields() []field {
	return []field{attr("unique", n.Unique), child("pattern", n.Pattern)}
}

func (n *Set) fields() []field { return []field{list("items", n.Items)} }

func (n *SetProperty) fields() []field {
	return []field{child("property", n.Property), child("expression", n.Expression)}
}

func (n *SetAllProperties) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression)}
}

func (n *MergeProperties) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression)}
}

func (n *SetLabels) fields() []field {
	return []field{child("identifier", n.Identifier), list("labels", n.Labels)}
}

func (n *Delete) fields() []field {
	return []field{attr("detach", n.Detach), list("expressions", n.Expressions)}
}

func (n *Remove) fields() []field { return []field{list("items", n.Items)} }

func (n *RemoveLabels) fields() []field {
	return []field{child("identifier", n.Identifier), list("labels", n.Labels)}
}

func (n *RemoveProperty) fields() []field {
	return []field{child("property", n.Property)}
}

func (n *ForEach) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("expression", n.Expression), list("clauses", n.Clauses),
	}
}

func (n *With) fields() []field {
	return []field{
		attr("distinct", n.Distinct), attr("includeExisting", n.IncludeExisting),
		list("projections", n.Projections), child("orderBy", n.OrderBy),
		child("skip", n.Skip), child("limit", n.Limit), child("predicate", n.Predicate),
	}
}

func (n *Unwind) fields() []field {
	return []field{child("expression", n.Expression), child("alias", n.Alias)}
}

func (n *Call) fields() []field {
	return []field{
		child("procName", n.ProcName), list("args", n.Args),
		list("projections", n.Projections), child("predicate", n.Predicate),
	}
}

func (n *Return) fields() []field {
	return []field{
		attr("distinct", n.Distinct), attr("includeExisting", n.IncludeExisting),
		list("projections", n.Projections), child("orderBy", n.OrderBy),
		child("skip", n.Skip), child("limit", n.Limit),
	}
}

func (n *Projection) fields() []field {
	return []field{child("expression", n.Expression), child("alias", n.Alias)}
}

func (n *OrderBy) fields() []field { return []field{list("items", n.Items)} }

func (n *SortItem) fields() []field {
	return []field{child("expression", n.Expression), attr("ascending", n.Ascending)}
}

func (n *Union) fields() []field { return []field{attr("all", n.All)} }

func (n *UnaryOperator) fields() []field {
	return []field{attr("op", n.Op), child("arg", n.Arg)}
}

func (n *BinaryOperator) fields() []field {
	return []field{child("arg1", n.Arg1), child("arg2", n.Arg2), attr("op", n.Op)}
}

func (n *Comparison) fields() []field {
	return []field{attr("length", n.Length()), attr("ops", n.Ops), list("args", n.Args)}
}

func (n *ApplyOperator) fields() []field {
	return []field{child("funcName", n.FuncName), attr("distinct", n.Distinct), list("args", n.Args)}
}

func (n *ApplyAllOperator) fields() []field {
	return []field{child("funcName", n.FuncName), attr("distinct", n.Distinct)}
}

func (n *PropertyOperator) fields() []field {
	return []field{child("expression", n.Expression), child("propName", n.PropName)}
}

func (n *SubscriptOperator) fields() []field {
	return []field{child("expression", n.Expression), child("subscript", n.Subscript)}
}

func (n *SliceOperator) fields() []field {
	return []field{child("expression", n.Expression), child("start", n.Start), child("end", n.End)}
}

func (n *LabelsOperator) fields() []field {
	return []field{child("expression", n.Expression), list("labels", n.Labels)}
}

func (n *MapProjection) fields() []field {
	return []field{child("expression", n.Expression), list("selectors", n.Selectors)}
}

func (n *MapProjectionLiteral) fields() []field {
	return []field{child("propName", n.PropName), child("expression", n.Expression)}
}

func (n *MapProjectionProperty) fields() []field {
	return []field{child("propName", n.PropName)}
}

func (n *MapProjectionIdentifier) fields() []field {
	return []field{child("identifier", n.Identifier)}
}

func (n *MapProjectionAllProperties) fields() []field { return nil }

func (n *ListComprehension) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("expression", n.Expression),
		child("predicate", n.Predicate), child("eval", n.Eval),
	}
}

func (n *PatternComprehension) fields() []field {
	return []field{
		child("identifier", n.Identifier), child("pattern", n.Pattern),
		child("predicate", n.Predicate), child("eval", n.Eval),
	}
}

func (n *Case) fields() []field {
	alts := make([]alternative, len(n.Predicates))
	for i := range n.Predicates {
		alts[i] = alternative{predicate: n.Predicates[i], value: n.Values[i]}
	}

	return []field{child("expression", n.Expression), attr("alternatives", alts), child("default", n.Default)}
}

func (n *Filter) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression), child("predicate", n.Predicate)}
}

func (n *Extract) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression), child("eval", n.Eval)}
}

func (n *Reduce) fields() []field {
	return []field{
		child("accumulator", n.Accumulator), child("init", n.Init),
		child("identifier", n.Identifier), child("expression", n.Expression), child("eval", n.Eval),
	}
}

func (n *AllQuantifier) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression), child("predicate", n.Predicate)}
}

func (n *AnyQuantifier) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression), child("predicate", n.Predicate)}
}

func (n *SingleQuantifier) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression), child("predicate", n.Predicate)}
}

func (n *NoneQuantifier) fields() []field {
	return []field{child("identifier", n.Identifier), child("expression", n.Expression), child("predicate", n.Predicate)}
}

func (n *Collection) fields() []field { return []field{list("elements", n.Elements)} }

func (n *Map) fields() []field {
	entries := make([]entry, len(n.Keys))
	for i := range n.Keys {
		entries[i] = entry{key: n.Keys[i], value: n.Values[i]}
	}

	return []field{attr("entries", entries)}
}

func (n *Identifier) fields() []field { return []field{attr("name", n.Name)} }
func (n *Parameter) fields() []field  { return []field{attr("name", n.Name)} }
func (n *String) fields() []field     { return []field{attr("value", n.Value)} }
func (n *Integer) fields() []field    { return []field{attr("value", n.Value)} }
func (n *Float) fields() []field      { return []field{attr("value", n.Value)} }
func (n *True) fields() []field       { return nil }
func (n *False) fields() []field      { return nil }
func (n *Null) fields() []field       { return nil }

func (n *Label) fields() []field        { return []field{attr("name", n.Name)} }
func (n *RelType) fields() []field      { return []field{attr("name", n.Name)} }
func (n *PropName) fields() []field     { return []field{attr("value", n.Value)} }
func (n *FunctionName) fields() []field { return []field{attr("value", n.Value)} }
func (n *IndexName) fields() []field    { return []field{attr("value", n.Value)} }
func (n *ProcName) fields() []field     { return []field{attr("value", n.Value)} }

func (n *Pattern) fields() []field { return []field{list("paths", n.Paths)} }

func (n *NamedPath) fields() []field {
	return []field{child("identifier", n.Identifier), child("path", n.Path)}
}

func (n *ShortestPath) fields() []field {
	return []field{attr("single", n.Single), child("path", n.Path)}
}

func (n *PatternPath) fields() []field { return []field{list("elements", n.Elements)} }

func (n *NodePattern) fields() []field {
	return []field{child("identifier", n.Identifier), list("labels", n.Labels), child("properties", n.Properties)}
}

func (n *RelPattern) fields() []field {
	return []field{
		attr("direction", n.Direction), child("identifier", n.Identifier),
		list("reltypes", n.RelTypes), child("properties", n.Properties), child("varLength", n.VarLength),
	}
}

func (n *Range) fields() []field {
	return []field{optInt("start", n.Start), optInt("end", n.End)}
}

func (n *LineComment) fields() []field  { return []field{attr("value", n.Value)} }
func (n *BlockComment) fields() []field { return []field{attr("value", n.Value)} }
func (n *ErrorNode) fields() []field    { return []field{attr("value", n.Value)} }
