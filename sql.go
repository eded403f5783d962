package sqlfrag

import "strconv"

/*
Primary entry point. Go has no tagged template literals; the literal fragments
and the interpolated values are passed separately, in the same shape a
template-literal call site would produce:

	query := SQL(
		[]string{`select * from `, ` where id = `, ` and owner = `, ``},
		Ident(`users`), 10, 20,
	)

	text, args := query.Build()

Is equivalent to:

	text := `select * from "users" where id = $1 and owner = $2`
	args := []any{10, 20}

Nested builders used as values are spliced in. Values of type `Unsafe` are
inlined. Everything else becomes a parameter with a `Dollar` placeholder.
*/
func SQL(frags []string, vals ...any) *Builder {
	return New(Dollar, frags, vals...)
}

// Shortcut for a builder consisting of a single value, such as `$1`.
func Val(val any) *Builder { return SQL([]string{``, ``}, val) }

// Postgres-style placeholder: 0 -> "$1", 1 -> "$2", and so on.
func Dollar(index int) string { return `$` + strconv.Itoa(index+1) }

// Oracle-style placeholder: 0 -> ":1", 1 -> ":2", and so on.
func Colon(index int) string { return `:` + strconv.Itoa(index+1) }

// SQL Server-style placeholder: 0 -> "@p1", 1 -> "@p2", and so on.
func AtP(index int) string { return `@p` + strconv.Itoa(index+1) }
