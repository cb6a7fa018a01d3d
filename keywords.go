package cypherparse

import "strings"

// reservedWords cannot be used as unquoted identifiers. Other Cypher words
// (CSV, INDEX, SCAN, ...) are recognized by position and remain usable as
// names.
var reservedWords = map[string]struct{}{
	"ALL": {}, "AND": {}, "AS": {}, "ASC": {}, "ASCENDING": {}, "BY": {},
	"CALL": {}, "CASE": {}, "CONTAINS": {}, "CREATE": {}, "DELETE": {},
	"DESC": {}, "DESCENDING": {}, "DETACH": {}, "DISTINCT": {}, "DROP": {},
	"ELSE": {}, "END": {}, "ENDS": {}, "FALSE": {}, "FOREACH": {}, "IN": {},
	"IS": {}, "LIMIT": {}, "LOAD": {}, "MATCH": {}, "MERGE": {}, "NOT": {},
	"NULL": {}, "ON": {}, "OPTIONAL": {}, "OR": {}, "ORDER": {}, "REMOVE": {},
	"RETURN": {}, "SET": {}, "SKIP": {}, "START": {}, "STARTS": {}, "THEN": {},
	"TRUE": {}, "UNION": {}, "UNWIND": {}, "USING": {}, "WHEN": {}, "WHERE": {},
	"WITH": {}, "XOR": {}, "YIELD": {},
}

// clauseKeywords lists the words that can begin a clause, used for error
// messages and suggestions.
var clauseKeywords = []string{
	"MATCH", "OPTIONAL", "MERGE", "CREATE", "SET", "DELETE", "DETACH", "REMOVE",
	"FOREACH", "WITH", "UNWIND", "CALL", "RETURN", "UNION", "START", "LOAD",
}

// suggestionKeywords are offered as "did you mean" hints.
var suggestionKeywords = append(clauseKeywords[:len(clauseKeywords):len(clauseKeywords)],
	"WHERE", "ORDER", "SKIP", "LIMIT", "DISTINCT", "YIELD", "USING",
)

func isReserved(word string) bool {
	_, ok := reservedWords[strings.ToUpper(word)]

	return ok
}
