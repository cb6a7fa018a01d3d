// Package cypherparse parses Cypher query text into a typed syntax tree.
//
// Parse accepts any number of statements and client commands separated by
// semicolons. Errors are collected per directive, each with its position and
// a window of the offending source line, and parsing resumes at the next
// directive:
//
//	out, err := cypherparse.Parse("MATCH (n) RETURN n", cypherparse.WithDumpAST(true))
//	if err != nil {
//		var perr *cypherparse.ParseError
//		if errors.As(err, &perr) {
//			for _, e := range perr.Outcome.Errors {
//				fmt.Println(e)
//			}
//		}
//	}
//	fmt.Print(out.AST)
package cypherparse
