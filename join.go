package sqlfrag

/*
Joins the builders, separating them with the given text. The separator is
inlined as `Unsafe` and must be a trusted constant. The result uses the
placeholder function of the first non-nil item. Nil items splice nothing but
still get separators. Panics with `ErrEmptyJoin` when there are no items.

Each step constructs a new builder; the inputs are never mutated.
*/
func Join(items []*Builder, sep string) *Builder {
	if len(items) == 0 {
		panic(ErrEmptyJoin.while(`joining builders`))
	}

	frags := []string{``, ``, ``, ``}
	placeholder := firstPlaceholder(items)
	out := New(placeholder, []string{``, ``}, items[0])

	for _, item := range items[1:] {
		out = New(placeholder, frags, out, Unsafe(sep), item)
	}
	return out
}

/*
Shortcut for joining with ", ":

	CommaJoin([]*Builder{SQL([]string{`a`}), SQL([]string{`b`})})

Is equivalent to:

	text := `a, b`
*/
func CommaJoin(items []*Builder) *Builder { return Join(items, `, `) }

/*
Comma-joins the strings as parameters, suitable for lists such as `in (...)`.
Panics with `ErrEmptyJoin` when empty.

	text, args := CommaJoinStrings([]string{`x`, `y`}).Build()

Is equivalent to:

	text := `$1, $2`
	args := []any{`x`, `y`}
*/
func CommaJoinStrings(vals []string) *Builder { return CommaJoinValues(vals) }

// Generic version of `CommaJoinStrings`.
func CommaJoinValues[A any](vals []A) *Builder {
	items := make([]*Builder, len(vals))
	for ind, val := range vals {
		items[ind] = Val(val)
	}
	return CommaJoin(items)
}

func firstPlaceholder(items []*Builder) Placeholder {
	for _, item := range items {
		if item != nil {
			return item.placeholder
		}
	}
	return nil
}
