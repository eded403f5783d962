/*
SQL Fragments: tiny tool for assembling parametrized SQL from literal text and
values. Oriented towards writing PLAIN SQL while making injection hard to
introduce by accident.

Key Features

• You write plain SQL. There's no DSL in Go.

• Every interpolated value is a parameter by default. Trusted text such as
identifiers must be explicitly marked with `Unsafe` or produced by `Ident`.

• Composable: builders used as values are spliced in, combining the arguments.
Placeholders such as $1, $2 are numbered automatically.

• Repeated values are bound once and reuse the same placeholder.

• Finalization is idempotent. A built builder is frozen; use `Clone` to keep
going.

• Supports converting SQL text with `$1` or `:ident` parameters into builders,
and converting structs into column lists, values and assignments.

Examples

See `SQL`, `Builder.Build`, `Join`, `Parse`, `ParseNamed`.
*/
package sqlfrag
