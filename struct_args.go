package sqlfrag

import (
	"database/sql/driver"

	"github.com/mitranim/refut"
)

/*
Scans a struct, accumulating fields tagged with `db` into a map suitable for
`ParseNamed`. The input must be a struct or a struct pointer. A nil pointer is
fine and produces an empty non-nil map. Panics on other inputs. Treats embedded
structs as part of enclosing structs.
*/
func StructMap(input any) map[string]any {
	dict := map[string]any{}
	traverseStructDbFields(input, func(name string, value any) {
		dict[name] = value
	})
	return dict
}

/*
Scans a struct, converting fields tagged with `db` into a sequence of
`NamedArgs`. The input must be a struct or a struct pointer. A nil pointer is
fine and produces a nil result. Panics on other inputs. Treats embedded structs
as part of enclosing structs.
*/
func StructArgs(input any) NamedArgs {
	var args NamedArgs
	traverseStructDbFields(input, func(name string, value any) {
		args = append(args, Named(name, value))
	})
	return args
}

/*
Sequence of named SQL arguments with utility methods for query building. Usually
obtained by calling `StructArgs`. Every method returns a new builder which can
be spliced into other builders.
*/
type NamedArgs []NamedArg

/*
Returns a builder suitable for an SQL `select` clause or a column list.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{
		One: 10,
		Two: 20,
	}

	text := StructArgs(val).Names().String()

Is equivalent to:

	text := `"one", "two"`
*/
func (self NamedArgs) Names() *Builder {
	if len(self) == 0 {
		return emptyBuilder()
	}
	items := make([]*Builder, len(self))
	for ind, arg := range self {
		items[ind] = arg.name()
	}
	return CommaJoin(items)
}

/*
Returns a builder suitable for an SQL `values()` clause, with arguments.

For example, this:

	text, args := StructArgs(val).Values().Build()

Is equivalent to:

	text := `$1, $2`
	args := []any{10, 20}
*/
func (self NamedArgs) Values() *Builder {
	if len(self) == 0 {
		return emptyBuilder()
	}
	items := make([]*Builder, len(self))
	for ind, arg := range self {
		items[ind] = Val(arg.Value)
	}
	return CommaJoin(items)
}

/*
Returns a builder suitable for an SQL `insert` clause, with arguments.

For example, this:

	text, args := StructArgs(val).NamesAndValues().Build()

Is equivalent to:

	text := `("one", "two") values ($1, $2)`
	args := []any{10, 20}

When empty, the text is `default values`.
*/
func (self NamedArgs) NamesAndValues() *Builder {
	if len(self) == 0 {
		return SQL([]string{`default values`})
	}
	return SQL(
		[]string{`(`, `) values (`, `)`},
		self.Names(), self.Values(),
	)
}

/*
Returns a builder suitable for an SQL `update set` clause, with arguments.

For example, this:

	text, args := StructArgs(val).Assignments().Build()

Is equivalent to:

	text := `"one" = $1, "two" = $2`
	args := []any{10, 20}

Known issue: when empty, this generates an empty query which is invalid SQL.
Don't use this when `NamedArgs` is empty.
*/
func (self NamedArgs) Assignments() *Builder {
	if len(self) == 0 {
		return emptyBuilder()
	}
	items := make([]*Builder, len(self))
	for ind, arg := range self {
		items[ind] = SQL([]string{``, ` = `, ``}, arg.name(), arg.Value)
	}
	return CommaJoin(items)
}

/*
Returns a builder suitable for an SQL `where` or `on` clause, with arguments.

For example, this:

	val := struct {
		One   int64  `db:"one"`
		Two   int64  `db:"two"`
		Three *int64 `db:"three"`
	}{
		One: 10,
		Two: 20,
	}

	text, args := StructArgs(val).Conditions().Build()

Is equivalent to:

	text := `"one" = $1 and "two" = $2 and "three" is null`
	args := []any{10, 20}
*/
func (self NamedArgs) Conditions() *Builder {
	if len(self) == 0 {
		return SQL([]string{`true`})
	}
	items := make([]*Builder, len(self))
	for ind, arg := range self {
		items[ind] = arg.condition()
	}
	return Join(items, ` and `)
}

/*
Returns true if at least one argument satisfies the predicate function. Example:

	ok := args.Some(NamedArg.IsNil)
*/
func (self NamedArgs) Some(fun func(NamedArg) bool) bool {
	for _, arg := range self {
		if fun != nil && fun(arg) {
			return true
		}
	}
	return false
}

/*
Returns true if every argument satisfies the predicate function. Example:

	ok := args.Every(NamedArg.IsNil)
*/
func (self NamedArgs) Every(fun func(NamedArg) bool) bool {
	for _, arg := range self {
		if fun == nil || !fun(arg) {
			return false
		}
	}
	return true
}

// Convenience function for creating a named arg without struct field labels.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Same as `sql.NamedArg`, with additional methods. See `NamedArgs`.
type NamedArg struct {
	Name  string
	Value any
}

// Normalizes the inner value by attempting SQL encoding. Used internally for
// detecting nils, which influences `NamedArgs.Conditions`.
func (self NamedArg) Norm() (any, error) {
	val := self.Value
	if val == nil {
		return nil, nil
	}

	valuer, ok := val.(driver.Valuer)
	if ok {
		if refut.IsNil(valuer) {
			return nil, nil
		}

		var err error
		val, err = valuer.Value()
		if err != nil {
			return nil, err
		}
	}

	if refut.IsNil(val) {
		return nil, nil
	}
	return val, nil
}

/*
Returns true if the value would be equivalent to `null` in SQL. Caution: this is
NOT the same as comparing the value to `nil`:

	NamedArg{}.Value == nil                      // true
	NamedArg{}.IsNil()                           // true

	NamedArg{Value: (*string)(nil)}.Value == nil // false
	NamedArg{Value: (*string)(nil)}.IsNil()      // true
*/
func (self NamedArg) IsNil() bool {
	val, _ := self.Norm()
	return val == nil
}

func (self NamedArg) name() *Builder {
	return SQL([]string{``, ``}, Ident(self.Name))
}

func (self NamedArg) condition() *Builder {
	val, err := self.Norm()
	try(err)

	if val == nil {
		return SQL([]string{``, ` is null`}, self.name())
	}
	return SQL([]string{``, ` = `, ``}, self.name(), val)
}

func emptyBuilder() *Builder { return SQL([]string{``}) }
