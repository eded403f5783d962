package sqlfrag

import (
	"fmt"

	"github.com/mitranim/sqlp"
)

/*
If true (default), unused arguments cause panics in `Parse` and `ParseNamed`.
If false, unused arguments are ok. Turning this off can be convenient in
development, when changing queries rapidly.
*/
var CheckUnused = true

/*
Converts SQL text with ordinal parameters such as `$1` into a builder, using
`Dollar` placeholders. Each parameter becomes a value slot referencing the
corresponding argument. The count in the text always starts at `$1`; the
resulting placeholders are renumerated when the builder is combined with
others. Repeated parameters refer to the same argument and are bound once,
including arguments such as slices which can't be compared with `==`.

Composable: builders among the arguments are spliced in, like in `SQL`.

For example, this:

	sub := Parse(`two = $1`, 20)
	query := Parse(`one = $1 and $2 and three = $1`, 10, sub)

	text, args := query.Build()

Is equivalent to this:

	text := `one = $1 and two = $2 and three = $1`
	args := []any{10, 20}

Panics when: a parameter doesn't have a corresponding argument; the text has
named parameters; an argument doesn't have a corresponding parameter (see
`CheckUnused`).
*/
func Parse(src string, args ...any) *Builder {
	return ParseWith(Dollar, src, args...)
}

// Same as `Parse` but with the given placeholder function for the output.
func ParseWith(placeholder Placeholder, src string, args ...any) *Builder {
	tokenizer := sqlp.Tokenizer{Source: src}
	used := make([]bool, len(args))
	bound := make([]any, len(args))

	var frags []string
	var vals []any
	var buf []byte

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			index := node.Index()
			if index < 0 || index >= len(args) {
				panic(ErrOrdinalOutOfBounds.while(`parsing query`).because(fmt.Errorf(
					`ordinal parameter %v exceeds argument count %v`, node, len(args),
				)))
			}

			if !used[index] {
				used[index] = true
				bound[index] = bindArg(args[index])
			}
			frags = append(frags, string(buf))
			vals = append(vals, bound[index])
			buf = buf[:0]

		case sqlp.NodeNamedParam:
			panic(ErrUnexpectedParameter.while(`parsing query`).because(fmt.Errorf(
				`expected only ordinal params, got named param %q`, node,
			)))

		default:
			node.Append(&buf)
		}
	}

	frags = append(frags, string(buf))

	if CheckUnused {
		for ind, ok := range used {
			if !ok {
				panic(ErrUnusedArgument.while(`parsing query`).because(fmt.Errorf(
					`unused argument %#v at index %v`, args[ind], ind,
				)))
			}
		}
	}

	return New(placeholder, frags, vals...)
}

/*
Converts SQL text with named parameters such as `:ident` into a builder, using
`Dollar` placeholders. The keys in the arguments map must have the form
"ident", without a leading ":". Casts such as `::text` are left alone. Like in
`Parse`, repeated parameters are bound once.

For example, this:

	query := ParseNamed(
		`select col where col = :value and other = :value::text`,
		map[string]any{"value": 10},
	)

	text, args := query.Build()

Is equivalent to this:

	text := `select col where col = $1 and other = $1::text`
	args := []any{10}

Panics when: a parameter doesn't have a corresponding argument; the text has
ordinal parameters; an argument doesn't have a corresponding parameter (see
`CheckUnused`).
*/
func ParseNamed(src string, args map[string]any) *Builder {
	return ParseNamedWith(Dollar, src, args)
}

// Same as `ParseNamed` but with the given placeholder function for the output.
func ParseNamedWith(placeholder Placeholder, src string, args map[string]any) *Builder {
	tokenizer := sqlp.Tokenizer{Source: src}
	used := make(map[string]any, len(args))

	var frags []string
	var vals []any
	var buf []byte

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			panic(ErrUnexpectedParameter.while(`parsing query`).because(fmt.Errorf(
				`expected only named params, got ordinal param %v`, node,
			)))

		case sqlp.NodeNamedParam:
			key := string(node)
			arg, found := args[key]
			if !found {
				panic(ErrMissingArgument.while(`parsing query`).because(fmt.Errorf(
					`missing named argument %q`, key,
				)))
			}

			val, ok := used[key]
			if !ok {
				val = bindArg(arg)
				used[key] = val
			}
			frags = append(frags, string(buf))
			vals = append(vals, val)
			buf = buf[:0]

		default:
			node.Append(&buf)
		}
	}

	frags = append(frags, string(buf))

	if CheckUnused {
		for key := range args {
			_, ok := used[key]
			if !ok {
				panic(ErrUnusedArgument.while(`parsing query`).because(fmt.Errorf(
					`unused named argument %q`, key,
				)))
			}
		}
	}

	return New(placeholder, frags, vals...)
}

// Nested builders are spliced and `Unsafe` is inlined, so only parameters need
// a shared identity.
func bindArg(arg any) any {
	switch arg.(type) {
	case *Builder, Unsafe:
		return arg
	default:
		return &boundArg{val: arg}
	}
}
