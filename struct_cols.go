package sqlfrag

import (
	"fmt"
	"reflect"

	"github.com/mitranim/refut"
)

/*
Takes a struct and returns a builder with a list of column names suitable for
inclusion into `select`. Also accepts the following inputs and automatically
dereferences them into a struct type:

	* Struct pointer.
	* Struct slice.
	* Struct slice pointer.

Nil slices and pointers are fine, as long as they carry a struct type. Any other
input causes a panic.

Fields of nested struct types are selected by path and aliased with a dotted
name:

	("nested")."col" as "nested.col"

The column names come from struct tags, not from user input, and are quoted.
*/
func Cols(dest any) *Builder {
	rtype := reflect.TypeOf(dest)
	if rtype != nil {
		rtype = refut.RtypeDeref(rtype)
		if rtype.Kind() == reflect.Slice {
			rtype = refut.RtypeDeref(rtype.Elem())
		}
	}

	if rtype == nil || rtype.Kind() != reflect.Struct {
		panic(ErrInvalidInput.while(`generating struct columns for select clause`).because(
			fmt.Errorf(`expected struct, got %v`, rtype),
		))
	}

	idents := structRtypeSqlIdents(rtype)
	return SQL([]string{sqlIdent{idents: idents}.selectString()})
}

func structRtypeSqlIdents(rtype reflect.Type) []sqlIdent {
	var idents []sqlIdent

	err := refut.TraverseStructRtype(rtype, func(sfield reflect.StructField, _ []int) error {
		colName := sfieldColumnName(sfield)
		if colName == "" {
			return nil
		}

		fieldRtype := refut.RtypeDeref(sfield.Type)
		if fieldRtype.Kind() == reflect.Struct && !isScannableRtype(fieldRtype) {
			idents = append(idents, sqlIdent{
				name:   colName,
				idents: structRtypeSqlIdents(fieldRtype),
			})
			return nil
		}

		idents = append(idents, sqlIdent{name: colName})
		return nil
	})
	try(err)

	return idents
}

type sqlIdent struct {
	name   string
	idents []sqlIdent
}

func (self sqlIdent) selectString() string {
	return bytesToMutableString(self.appendSelect(nil, nil))
}

func (self sqlIdent) appendSelect(buf []byte, path []string) []byte {
	/**
	If the ident doesn't have a name, it's just a collection of other idents,
	which are considered to be at the "top level". If the ident has a name, it's
	considered to "contain" the other idents.
	*/
	if len(self.idents) > 0 {
		if self.name != "" {
			path = append(path, self.name)
		}
		for _, ident := range self.idents {
			buf = ident.appendSelect(buf, path)
		}
		return buf
	}

	if self.name == "" {
		return buf
	}

	if len(buf) > 0 {
		appendStr(&buf, `, `)
	}

	if len(path) == 0 {
		appendIdent(&buf, self.name)
		return buf
	}

	full := append(append(make([]string, 0, len(path)+1), path...), self.name)
	appendIdentPath(&buf, full)
	appendStr(&buf, ` as `)
	appendIdent(&buf, joinPath(full))
	return buf
}

func joinPath(path []string) string {
	var buf []byte
	for ind, name := range path {
		if ind > 0 {
			appendStr(&buf, `.`)
		}
		appendStr(&buf, name)
	}
	return bytesToMutableString(buf)
}
