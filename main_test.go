package sqlfrag

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

type (
	B  = testing.B
	T  = testing.T
	TB = testing.TB
)

type list = []any

type Dict = map[string]any

func eq(t TB, exp, act any) {
	t.Helper()
	if !reflect.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func panics(t TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(
			`expected %v to panic with a message containing %q, found %q`,
			funcName(fun), msg, str,
		)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(reflect.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }

// Short for "built": text and args as returned by `(*Builder).Build`.
type R struct {
	Text string
	Args list
}

func built(bui *Builder) R {
	text, args := bui.Build()
	return R{text, args}
}

func rei(text string, args ...any) R {
	if len(args) == 0 {
		args = nil
	}
	return R{text, args}
}

// Shortcut for a builder without values.
func frag(text string) *Builder { return SQL([]string{text}) }

func reqInvariant(t TB, bui *Builder) {
	t.Helper()
	if len(bui.frags) != len(bui.slots)+1 {
		t.Fatalf(
			`expected fragment count to exceed slot count by 1; fragments: %#v; slots: %#v`,
			bui.frags, bui.slots,
		)
	}
}
