package sqlfrag

import (
	"fmt"
	"strings"
)

/*
Converts a zero-based index into the resulting argument list into a
placeholder token such as "$1". Must be pure. Every token must be numbered:
de-duplicated arguments are referenced from multiple places in the text, which
doesn't work with purely positional tokens such as "?".
*/
type Placeholder func(index int) string

type state uint8

const (
	stateBuilding state = iota
	stateBuilt
)

type slotKind uint8

const (
	slotParam slotKind = iota
	slotRaw
)

/*
Value slot between two fragments. Nested builders are never stored as slots:
they're spliced into the fragments and slots of the enclosing builder.
*/
type slot struct {
	kind slotKind
	val  any
	raw  Unsafe
	ref  *boundArg
}

/*
Argument shared by several slots. Slots with the same ref always render the
same placeholder, even when the value isn't comparable. Used by `Parse` and
`ParseNamed` for repeated parameters.
*/
type boundArg struct{ val any }

func slotOf(val any) slot {
	switch val := val.(type) {
	case Unsafe:
		return slot{kind: slotRaw, raw: val}
	case *boundArg:
		return slot{kind: slotParam, val: val.val, ref: val}
	default:
		return slot{kind: slotParam, val: val}
	}
}

func (self slot) jsonValue() any {
	if self.kind == slotRaw {
		return string(self.raw)
	}
	return self.val
}

/*
Tool for assembling parametrized SQL from literal fragments and values.
Interpolated values become parameters by default; see `SQL` for the primary
entry point. Nested builders used as values are spliced in, combining their
arguments. Values of type `Unsafe` are inlined verbatim.

Between fragments, the builder holds value slots: there's always exactly one
more fragment than slots. Calling `.Build` finalizes the builder: the text and
arguments are computed once and cached, and any further mutation panics with
`ErrFrozen`. Use `.Clone` to obtain a mutable copy, before or after building.

Not safe for concurrent mutation. The output of `.Build` is safe to share.

The zero value is an empty builder using `Dollar` placeholders.
*/
type Builder struct {
	placeholder Placeholder
	state       state
	frags       []string
	slots       []slot
	text        string
	args        []any
}

/*
Raw constructor. Fragments and values are interleaved: the first fragment goes
first, then each value is followed by the next fragment, like in a template
literal. Panics with `ErrFragmentCount` unless there's at least one more
fragment than values. Fragments beyond that count are appended as-is. A nil
placeholder function means `Dollar`.

Values are classified as follows:

	*Builder -> spliced in, no slot boundary at either seam
	Unsafe   -> inlined verbatim by `.Build`
	other    -> parameter
*/
func New(placeholder Placeholder, frags []string, vals ...any) *Builder {
	if len(frags) < len(vals)+1 {
		panic(ErrFragmentCount.while(`constructing builder`).because(fmt.Errorf(
			`expected at least %v fragments for %v values, got %v`,
			len(vals)+1, len(vals), len(frags),
		)))
	}

	self := &Builder{placeholder: placeholder}

	if len(vals) == 0 {
		self.frags = []string{strings.Join(frags, ``)}
		return self
	}

	self.frags = make([]string, 1, len(vals)+1)
	self.frags[0] = frags[0]

	for ind, val := range vals {
		next := frags[ind+1]

		sub, ok := val.(*Builder)
		if ok {
			if sub != nil {
				self.appendParts(sub.frags, sub.slots)
			}
			self.frags[len(self.frags)-1] += next
			continue
		}

		self.slots = append(self.slots, slotOf(val))
		self.frags = append(self.frags, next)
	}

	for _, frag := range frags[len(vals)+1:] {
		self.frags[len(self.frags)-1] += frag
	}
	return self
}

/*
Appends another builder, combining the fragments and values. The first
fragment of the input is concatenated with the last fragment of this builder.
Accepts only builders, which prevents accidentally splicing unparametrized
text. For trusted raw text, see `.AppendRawString`. Nil input is a nop.

Mutates and returns the receiver. Panics with `ErrFrozen` after `.Build`.
*/
func (self *Builder) Append(part *Builder) *Builder {
	self.reqBuilding(`appending to builder`)
	if part == nil {
		return self
	}
	if part == self {
		part = part.Clone()
	}
	self.appendParts(part.frags, part.slots)
	return self
}

/*
UNSAFE. Appends raw text as-is, without parametrization or escaping. The
caller is responsible for ensuring that the text doesn't come from untrusted
input.

Mutates and returns the receiver. Panics with `ErrFrozen` after `.Build`.
*/
func (self *Builder) AppendRawString(part string) *Builder {
	self.reqBuilding(`appending raw string to builder`)
	self.appendParts([]string{part}, nil)
	return self
}

// Merge primitive shared by construction and appending. Never introduces a
// slot boundary at the seam.
func (self *Builder) appendParts(frags []string, slots []slot) {
	if len(self.frags) == 0 {
		self.frags = []string{``}
	}
	if len(frags) == 0 {
		return
	}

	last := len(self.frags) - 1
	self.frags[last] += frags[0]
	self.frags = append(self.frags, frags[1:]...)
	self.slots = append(self.slots, slots...)
}

/*
Returns an independent mutable copy with the same placeholder function. Works
both before and after `.Build`: the copy holds the fragments and values as they
were before finalization.
*/
func (self *Builder) Clone() *Builder {
	return &Builder{
		placeholder: self.placeholder,
		frags:       copyStrings(self.frags),
		slots:       copySlots(self.slots),
	}
}

/*
Finalizes the builder, returning the query text and its arguments. Idempotent:
the first call computes and caches the result, subsequent calls return the
cached pair.

Placeholders are numbered by argument position, in order of
first occurrence. Repeated equal values are bound once and reuse the same
placeholder. `Unsafe` values are inlined and never appear in the arguments.
When there are no arguments, they're nil.

Equality: values of comparable types are compared with `==`, which is value
equality for scalars, arrays and structs, and identity for pointers. Values of
non-comparable types such as slices and maps are never merged.
*/
func (self *Builder) Build() (string, []any) {
	if self.state == stateBuilt {
		return self.text, self.args
	}
	self.text, self.args = self.render()
	self.state = stateBuilt
	return self.text, self.args
}

// True after `.Build`.
func (self *Builder) IsBuilt() bool { return self.state == stateBuilt }

/*
Implement `fmt.Stringer`. Returns the query text without finalizing the
builder.
*/
func (self *Builder) String() string {
	if self.state == stateBuilt {
		return self.text
	}
	text, _ := self.render()
	return text
}

/*
Cheap size estimate: the length of the JSON-encoded fragments plus the length
of the JSON-encoded values. Intended for heuristics such as query size budgets.
This is not the byte length of the eventual SQL text.
*/
func (self *Builder) ApproximateLength() int {
	if self.state == stateBuilt {
		return jsonLen(self.text) + jsonListLen(self.args)
	}

	var vals []any
	for _, val := range self.slots {
		vals = append(vals, val.jsonValue())
	}
	return jsonLen(self.frags) + jsonListLen(vals)
}

func (self *Builder) render() (string, []any) {
	if len(self.slots) == 0 {
		return strings.Join(self.frags, ``), nil
	}

	placeholder := self.placeholderFunc()
	size := 0
	for _, frag := range self.frags {
		size += len(frag)
	}

	buf := make([]byte, 0, size+len(self.slots)*3)
	var args []any
	var refs map[*boundArg]int

	buf = append(buf, self.frags[0]...)

	for ind, val := range self.slots {
		switch val.kind {
		case slotRaw:
			buf = append(buf, val.raw...)

		default:
			pos, ok := refs[val.ref]
			if !ok {
				pos = indexOfValue(args, val.val)
			}
			if pos < 0 {
				pos = len(args)
				args = append(args, val.val)
			}
			if val.ref != nil && !ok {
				if refs == nil {
					refs = map[*boundArg]int{}
				}
				refs[val.ref] = pos
			}
			buf = append(buf, placeholder(pos)...)
		}
		buf = append(buf, self.frags[ind+1]...)
	}

	return bytesToMutableString(buf), args
}

func (self *Builder) placeholderFunc() Placeholder {
	if self.placeholder != nil {
		return self.placeholder
	}
	return Dollar
}

func (self *Builder) reqBuilding(while string) {
	if self.state != stateBuilding {
		panic(ErrFrozen.while(while))
	}
}

func jsonListLen(vals []any) int {
	if vals == nil {
		return 0
	}
	out := len(`[]`)
	for ind, val := range vals {
		if ind > 0 {
			out += len(`,`)
		}
		out += jsonLen(val)
	}
	return out
}
