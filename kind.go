package cypherparse

import "fmt"

// Kind identifies the variant of an AST node.
type Kind uint8

// Node kinds.
const (
	KindInvalid Kind = iota

	// Directives and statement structure.
	KindStatement
	KindCypherOption
	KindCypherOptionParam
	KindExplainOption
	KindProfileOption
	KindCommand

	// Schema commands.
	KindCreateNodePropIndex
	KindDropNodePropIndex
	KindCreateNodePropConstraint
	KindDropNodePropConstraint
	KindCreateRelPropConstraint
	KindDropRelPropConstraint

	// Queries and clauses.
	KindQuery
	KindUsingPeriodicCommit
	KindLoadCsv
	KindStart
	KindNodeIndexLookup
	KindNodeIndexQuery
	KindNodeIDLookup
	KindAllNodesScan
	KindRelIndexLookup
	KindRelIndexQuery
	KindRelIDLookup
	KindAllRelsScan
	KindMatch
	KindUsingIndex
	KindUsingJoin
	KindUsingScan
	KindMerge
	KindOnMatch
	KindOnCreate
	KindCreate
	KindSet
	KindSetProperty
	KindSetAllProperties
	KindMergeProperties
	KindSetLabels
	KindDelete
	KindRemove
	KindRemoveLabels
	KindRemoveProperty
	KindForEach
	KindWith
	KindUnwind
	KindCall
	KindReturn
	KindProjection
	KindOrderBy
	KindSortItem
	KindUnion

	// Expressions.
	KindUnaryOperator
	KindBinaryOperator
	KindComparison
	KindApplyOperator
	KindApplyAllOperator
	KindPropertyOperator
	KindSubscriptOperator
	KindSliceOperator
	KindLabelsOperator
	KindMapProjection
	KindMapProjectionLiteral
	KindMapProjectionProperty
	KindMapProjectionIdentifier
	KindMapProjectionAllProperties
	KindListComprehension
	KindPatternComprehension
	KindCase
	KindFilter
	KindExtract
	KindReduce
	KindAll
	KindAny
	KindSingle
	KindNone
	KindCollection
	KindMap
	KindIdentifier
	KindParameter
	KindString
	KindInteger
	KindFloat
	KindTrue
	KindFalse
	KindNull

	// Names.
	KindLabel
	KindRelType
	KindPropName
	KindFunctionName
	KindIndexName
	KindProcName

	// Patterns.
	KindPattern
	KindNamedPath
	KindShortestPath
	KindPatternPath
	KindNodePattern
	KindRelPattern
	KindRange

	// Trivia and recovery.
	KindLineComment
	KindBlockComment
	KindError

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:                    "invalid",
	KindStatement:                  "statement",
	KindCypherOption:               "cypher-option",
	KindCypherOptionParam:          "cypher-option-param",
	KindExplainOption:              "explain-option",
	KindProfileOption:              "profile-option",
	KindCommand:                    "command",
	KindCreateNodePropIndex:        "create-node-prop-index",
	KindDropNodePropIndex:          "drop-node-prop-index",
	KindCreateNodePropConstraint:   "create-node-prop-constraint",
	KindDropNodePropConstraint:     "drop-node-prop-constraint",
	KindCreateRelPropConstraint:    "create-rel-prop-constraint",
	KindDropRelPropConstraint:      "drop-rel-prop-constraint",
	KindQuery:                      "query",
	KindUsingPeriodicCommit:        "using-periodic-commit",
	KindLoadCsv:                    "load-csv",
	KindStart:                      "start",
	KindNodeIndexLookup:            "node-index-lookup",
	KindNodeIndexQuery:             "node-index-query",
	KindNodeIDLookup:               "node-id-lookup",
	KindAllNodesScan:               "all-nodes-scan",
	KindRelIndexLookup:             "rel-index-lookup",
	KindRelIndexQuery:              "rel-index-query",
	KindRelIDLookup:                "rel-id-lookup",
	KindAllRelsScan:                "all-rels-scan",
	KindMatch:                      "match",
	KindUsingIndex:                 "using-index",
	KindUsingJoin:                  "using-join",
	KindUsingScan:                  "using-scan",
	KindMerge:                      "merge",
	KindOnMatch:                    "on-match",
	KindOnCreate:                   "on-create",
	KindCreate:                     "create",
	KindSet:                        "set",
	KindSetProperty:                "set-property",
	KindSetAllProperties:           "set-all-properties",
	KindMergeProperties:            "merge-properties",
	KindSetLabels:                  "set-labels",
	KindDelete:                     "delete",
	KindRemove:                     "remove",
	KindRemoveLabels:               "remove-labels",
	KindRemoveProperty:             "remove-property",
	KindForEach:                    "for-each",
	KindWith:                       "with",
	KindUnwind:                     "unwind",
	KindCall:                       "call",
	KindReturn:                     "return",
	KindProjection:                 "projection",
	KindOrderBy:                    "order-by",
	KindSortItem:                   "sort-item",
	KindUnion:                      "union",
	KindUnaryOperator:              "unary-operator",
	KindBinaryOperator:             "binary-operator",
	KindComparison:                 "comparison",
	KindApplyOperator:              "apply-operator",
	KindApplyAllOperator:           "apply-all-operator",
	KindPropertyOperator:           "property-operator",
	KindSubscriptOperator:          "subscript-operator",
	KindSliceOperator:              "slice-operator",
	KindLabelsOperator:             "labels-operator",
	KindMapProjection:              "map-projection",
	KindMapProjectionLiteral:       "map-projection-literal",
	KindMapProjectionProperty:      "map-projection-property",
	KindMapProjectionIdentifier:    "map-projection-identifier",
	KindMapProjectionAllProperties: "map-projection-all-properties",
	KindListComprehension:          "list-comprehension",
	KindPatternComprehension:       "pattern-comprehension",
	KindCase:                       "case",
	KindFilter:                     "filter",
	KindExtract:                    "extract",
	KindReduce:                     "reduce",
	KindAll:                        "all",
	KindAny:                        "any",
	KindSingle:                     "single",
	KindNone:                       "none",
	KindCollection:                 "collection",
	KindMap:                        "map",
	KindIdentifier:                 "identifier",
	KindParameter:                  "parameter",
	KindString:                     "string",
	KindInteger:                    "integer",
	KindFloat:                      "float",
	KindTrue:                       "true",
	KindFalse:                      "false",
	KindNull:                       "null",
	KindLabel:                      "label",
	KindRelType:                    "reltype",
	KindPropName:                   "prop-name",
	KindFunctionName:               "function-name",
	KindIndexName:                  "index-name",
	KindProcName:                   "proc-name",
	KindPattern:                    "pattern",
	KindNamedPath:                  "named-path",
	KindShortestPath:               "shortest-path",
	KindPatternPath:                "pattern-path",
	KindNodePattern:                "node-pattern",
	KindRelPattern:                 "rel-pattern",
	KindRange:                      "range",
	KindLineComment:                "line-comment",
	KindBlockComment:               "block-comment",
	KindError:                      "error",
}

// String returns the serialized name of the kind, e.g. "node-pattern".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsExpression reports whether nodes of this kind can appear in expression position.
func (k Kind) IsExpression() bool {
	if k >= KindMapProjectionLiteral && k <= KindMapProjectionAllProperties {
		return false
	}

	return (k >= KindUnaryOperator && k <= KindNull) ||
		k == KindPatternPath || k == KindNamedPath || k == KindShortestPath
}

// IsClause reports whether nodes of this kind are query clauses.
func (k Kind) IsClause() bool {
	switch k {
	case KindLoadCsv, KindStart, KindMatch, KindMerge, KindCreate, KindSet, KindDelete,
		KindRemove, KindForEach, KindWith, KindUnwind, KindCall, KindReturn, KindUnion:
		return true
	default:
		return false
	}
}

// IsSchemaCommand reports whether nodes of this kind are index or constraint commands.
func (k Kind) IsSchemaCommand() bool {
	return k >= KindCreateNodePropIndex && k <= KindDropRelPropConstraint
}
