package sqlfrag

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
	"unsafe"

	"github.com/mitranim/refut"
)

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func appendStr(buf *[]byte, str string) {
	*buf = append(*buf, str...)
}

func appendEnclosed(buf *[]byte, prefix, infix, suffix string) {
	appendStr(buf, prefix)
	appendStr(buf, infix)
	appendStr(buf, suffix)
}

func copyStrings(val []string) []string {
	if val == nil {
		return nil
	}
	out := make([]string, len(val))
	copy(out, val)
	return out
}

func copySlots(val []slot) []slot {
	if val == nil {
		return nil
	}
	out := make([]slot, len(val))
	copy(out, val)
	return out
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

/*
Equality used for parameter de-duplication. Values of comparable dynamic types
are compared with `==`, which means value equality for scalars, arrays and
structs, and identity for pointers. Values of non-comparable types such as
slices and maps are never considered equal, not even to themselves.
*/
func sameValue(one, two any) (ok bool) {
	typ := reflect.TypeOf(one)
	if typ != reflect.TypeOf(two) {
		return false
	}
	if typ != nil && !typ.Comparable() {
		return false
	}

	// Comparable structs and arrays may still hold non-comparable values behind
	// interface fields.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return one == two
}

func indexOfValue(vals []any, val any) int {
	for ind, elem := range vals {
		if sameValue(elem, val) {
			return ind
		}
	}
	return -1
}

// Length of the JSON encoding, or of the `fmt` encoding for values which can't
// be encoded as JSON.
func jsonLen(val any) int {
	out, err := json.Marshal(val)
	if err != nil {
		return len(fmt.Sprint(val))
	}
	return len(out)
}

func sfieldColumnName(sfield reflect.StructField) string {
	return refut.TagIdent(sfield.Tag.Get("db"))
}

func sfieldJsonName(sfield reflect.StructField) string {
	return refut.TagIdent(sfield.Tag.Get("json"))
}

var timeRtype = reflect.TypeOf(time.Time{})
var sqlScannerRtype = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

func isScannableRtype(rtype reflect.Type) bool {
	return rtype != nil &&
		(rtype == timeRtype || reflect.PointerTo(rtype).Implements(sqlScannerRtype))
}

func traverseStructDbFields(input any, fun func(string, any)) {
	rval := reflect.ValueOf(input)
	if !rval.IsValid() {
		panic(ErrInvalidInput.while(`traversing struct for DB fields`).because(
			fmt.Errorf(`expected struct, got nil`),
		))
	}

	rtype := refut.RtypeDeref(rval.Type())
	if rtype.Kind() != reflect.Struct {
		panic(ErrInvalidInput.while(`traversing struct for DB fields`).because(
			fmt.Errorf(`expected struct, got %q`, rtype),
		))
	}

	if refut.IsRvalNil(rval) {
		return
	}

	err := refut.TraverseStructRval(rval, func(rval reflect.Value, sfield reflect.StructField, _ []int) error {
		colName := sfieldColumnName(sfield)
		if colName == "" {
			return nil
		}
		fun(colName, rval.Interface())
		return nil
	})
	try(err)
}
