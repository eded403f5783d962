package sqlfrag

import "strings"

/*
UNSAFE. Marks trusted text for verbatim insertion: when used as a value for
`SQL` or `New`, the text is inlined into the query by `(*Builder).Build`
without parametrization or escaping, and never appears in the arguments.

This is a distinct type: a plain `string` value is always a parameter and can
never be mistaken for `Unsafe`. Intended for identifiers, keywords and other
constants that can't be parametrized. Never convert untrusted input to
`Unsafe`; for identifiers, prefer `Ident`.
*/
type Unsafe string

/*
Quotes an SQL identifier, doubling any inner double quotes:

	Ident(`one`)      -> "one"
	Ident(`one"two`)  -> "one""two"
*/
func Ident(name string) Unsafe {
	var buf []byte
	appendIdent(&buf, name)
	return Unsafe(bytesToMutableString(buf))
}

/*
Quotes a path of identifiers, parenthesizing the first one so that nested
composite fields can be accessed:

	IdentPath(`one`)               -> "one"
	IdentPath(`one`, `two`)        -> ("one")."two"
	IdentPath(`one`, `two`, `tri`) -> ("one")."two"."tri"
*/
func IdentPath(path ...string) Unsafe {
	var buf []byte
	appendIdentPath(&buf, path)
	return Unsafe(bytesToMutableString(buf))
}

func appendIdent(buf *[]byte, name string) {
	appendEnclosed(buf, `"`, strings.ReplaceAll(name, `"`, `""`), `"`)
}

func appendIdentPath(buf *[]byte, path []string) {
	if len(path) == 1 {
		appendIdent(buf, path[0])
		return
	}

	for ind, name := range path {
		if ind == 0 {
			appendStr(buf, `(`)
			appendIdent(buf, name)
			appendStr(buf, `)`)
		} else {
			appendStr(buf, `.`)
			appendIdent(buf, name)
		}
	}
}
