package sqlfrag

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/mitranim/refut"
)

/*
Short for "orderings". Structured representation of an SQL ordering such as:

	`order by "some_col" asc`

	`order by "some_col" asc, ("nested")."other_col" desc`

When encoding, identifiers are quoted for safety. An ordering with empty
`.Items` represents no ordering: "".

`.Type` is used for parsing external input. It must be a struct type. Every
field path must be found in the struct type, possibly in nested structs. The
decoding process converts every JSON field name into the corresponding DB
column name. Identifiers without the corresponding pair of `json` and `db` tags
cause a parse error.

Usage for parsing:

	input := []byte(`["one asc", "two.three desc"]`)

	ords := OrdsFor(SomeStructType{})

	err := ords.UnmarshalJSON(input)
	panic(err)

The result is equivalent to:

	OrdsFrom(OrdAsc(`one`), OrdDesc(`two`, `three`))

Usage for SQL:

	query := SQL([]string{`select * from some_table `, ``}, ords.Builder())
*/
type Ords struct {
	Items []Ord
	Type  reflect.Type
}

// Shortcut for creating `Ords` without a type.
func OrdsFrom(items ...Ord) Ords { return Ords{Items: items} }

/*
Shortcut for empty `Ords` intended for parsing. The input is used only as a type
carrier. The parsing process will consult the provided type; see
`Ords.UnmarshalJSON`.
*/
func OrdsFor(val any) Ords { return Ords{Type: reflect.TypeOf(val)} }

/*
Implement decoding from JSON. Consults `.Type` to determine known field paths,
and converts them to DB column paths, rejecting unknown identifiers.
*/
func (self *Ords) UnmarshalJSON(input []byte) error {
	var vals []string
	err := json.Unmarshal(input, &vals)
	if err != nil {
		return err
	}
	return self.ParseSlice(vals)
}

/*
Convenience method for parsing string slices, which may come from URL queries,
form-encoded data, and so on.
*/
func (self *Ords) ParseSlice(vals []string) error {
	self.Items = make([]Ord, 0, len(vals))

	for _, val := range vals {
		var ord Ord
		err := self.parseOrd(val, &ord)
		if err != nil {
			return err
		}
		self.Items = append(self.Items, ord)
	}

	return nil
}

func (self Ords) parseOrd(str string, ord *Ord) error {
	match := ordReg.FindStringSubmatch(str)
	if match == nil {
		return ErrInvalidInput.while(`parsing ordering`).because(fmt.Errorf(
			`%q is not a valid ordering string; expected format: "<ident> [asc|desc] [nulls last]"`, str,
		))
	}

	path, err := structDbPathByJsonPath(self.Type, match[1])
	if err != nil {
		return err
	}

	ord.Path = path
	ord.IsDesc = strings.EqualFold(match[2], `desc`)
	ord.NullsLast = match[3] != ``
	return nil
}

// Returns true if there are no items.
func (self Ords) IsEmpty() bool { return self.Len() == 0 }

// Returns the amount of items.
func (self Ords) Len() int { return len(self.Items) }

// Convenience method for appending.
func (self *Ords) Append(items ...Ord) {
	self.Items = append(self.Items, items...)
}

// If empty, replaces items with the provided fallback. Otherwise does nothing.
func (self *Ords) Or(items ...Ord) {
	if self.IsEmpty() {
		self.Items = items
	}
}

/*
Returns a builder with an `order by` clause, or an empty builder when there
are no items. Never has arguments.
*/
func (self Ords) Builder() *Builder {
	if self.IsEmpty() {
		return emptyBuilder()
	}

	items := make([]*Builder, len(self.Items))
	for ind, ord := range self.Items {
		items[ind] = ord.Builder()
	}
	return SQL([]string{`order by `, ``}, CommaJoin(items))
}

// Implement `fmt.Stringer`.
func (self Ords) String() string { return self.Builder().String() }

/*
Shortcut:

	OrdAsc(`one`, `two`) ≡ Ord{Path: []string{`one`, `two`}, IsDesc: false}
*/
func OrdAsc(path ...string) Ord { return Ord{Path: path, IsDesc: false} }

/*
Shortcut:

	OrdDesc(`one`, `two`) ≡ Ord{Path: []string{`one`, `two`}, IsDesc: true}
*/
func OrdDesc(path ...string) Ord { return Ord{Path: path, IsDesc: true} }

/*
Short for "ordering". Describes an SQL ordering like:

	`"some_col" asc`

	`("nested")."other_col" desc nulls last`

but in a structured format. When encoding for SQL, identifiers are quoted for
safety. Identifier case is preserved. Parsing of "asc", "desc" and "nulls last"
is case-insensitive and doesn't preserve case.

Note on `IsDesc`: the default value `false` corresponds to "ascending", which is
the default in SQL.
*/
type Ord struct {
	Path      []string
	IsDesc    bool
	NullsLast bool
}

// Returns a copy with `.NullsLast = true`.
func (self Ord) Nl() Ord {
	self.NullsLast = true
	return self
}

// Returns an SQL string like `("some_col")."other_col" asc`.
func (self Ord) String() string { return self.Builder().String() }

// Returns a builder with this ordering as raw text. Never has arguments.
func (self Ord) Builder() *Builder {
	if len(self.Path) == 0 {
		panic(ErrInvalidInput.while(`encoding ordering`).because(
			fmt.Errorf(`expected non-empty path`),
		))
	}

	suffix := ` asc`
	if self.IsDesc {
		suffix = ` desc`
	}
	if self.NullsLast {
		suffix += ` nulls last`
	}
	return SQL([]string{``, suffix}, IdentPath(self.Path...))
}

var ordReg = regexp.MustCompile(
	`^\s*((?:\w+\.)*\w+)(?i)(?:\s+(asc|desc))?(?:\s+(nulls\s+last))?\s*$`,
)

/*
Converts a dot-separated path of JSON field names into the path of DB column
names. Every field along the path must have both tags.
*/
func structDbPathByJsonPath(rtype reflect.Type, jsonPath string) ([]string, error) {
	if rtype == nil {
		return nil, ErrInvalidInput.while(`resolving field path`).because(
			fmt.Errorf(`missing struct type for path %q`, jsonPath),
		)
	}

	var out []string

	for _, name := range strings.Split(jsonPath, `.`) {
		rtype = refut.RtypeDeref(rtype)
		if rtype.Kind() != reflect.Struct {
			return nil, ErrInvalidInput.while(`resolving field path`).because(
				fmt.Errorf(`expected struct type for path %q, got %v`, jsonPath, rtype),
			)
		}

		sfield, ok := structFieldByJsonName(rtype, name)
		if !ok {
			return nil, ErrUnknownField.while(`resolving field path`).because(
				fmt.Errorf(`no field with json name %q and a db name in type %v`, name, rtype),
			)
		}

		out = append(out, sfieldColumnName(sfield))
		rtype = sfield.Type
	}

	return out, nil
}

func structFieldByJsonName(rtype reflect.Type, name string) (out reflect.StructField, found bool) {
	err := refut.TraverseStructRtype(rtype, func(sfield reflect.StructField, _ []int) error {
		if !found && sfieldJsonName(sfield) == name && sfieldColumnName(sfield) != "" {
			out = sfield
			found = true
		}
		return nil
	})
	try(err)
	return
}
