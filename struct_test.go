package sqlfrag

import (
	"testing"
	"time"
)

type Internal struct {
	Id   string `json:"internalId"   db:"id"`
	Name string `json:"internalName" db:"name"`
}

type External struct {
	Id       string   `json:"externalId"       db:"id"`
	Name     string   `json:"externalName"     db:"name"`
	Internal Internal `json:"externalInternal" db:"internal"`
}

type Embed struct {
	Id        string `json:"embedId"   db:"embed_id"`
	Name      string `json:"embedName" db:"embed_name"`
	Untagged0 string ``
	Untagged1 string `db:"-"`
}

type Outer struct {
	Embed
	Id       string `json:"outerId"   db:"outer_id"`
	Name     string `json:"outerName" db:"outer_name"`
	OnlyJson string `json:"onlyJson"`
}

type PairStruct struct {
	One any `db:"one" json:"one"`
	Two any `db:"two" json:"two"`
}

type TrioStruct struct {
	One   int64  `db:"one"`
	Two   int64  `db:"two"`
	Three *int64 `db:"three"`
}

func TestStructArgs(t *testing.T) {
	t.Run(`nil_pointer`, func(t *testing.T) {
		eq(t, NamedArgs(nil), StructArgs((*PairStruct)(nil)))
	})

	t.Run(`non_struct`, func(t *testing.T) {
		panics(t, `InvalidInput`, func() { StructArgs(10) })
		panics(t, `InvalidInput`, func() { StructArgs(nil) })
	})

	t.Run(`embedded`, func(t *testing.T) {
		val := Outer{Id: `outer id`, Name: `outer name`}
		val.Embed.Id = `embed id`
		val.Embed.Name = `embed name`

		eq(t,
			NamedArgs{
				Named(`embed_id`, `embed id`),
				Named(`embed_name`, `embed name`),
				Named(`outer_id`, `outer id`),
				Named(`outer_name`, `outer name`),
			},
			StructArgs(&val),
		)
	})
}

func TestStructMap(t *testing.T) {
	eq(t, Dict{}, StructMap((*PairStruct)(nil)))
	eq(t, Dict{"one": 10, "two": 20}, StructMap(PairStruct{10, 20}))
}

func TestNamedArgs(t *testing.T) {
	args := StructArgs(PairStruct{10, 20})

	t.Run(`Names`, func(t *testing.T) {
		eq(t, rei(`"one", "two"`), built(args.Names()))
		eq(t, rei(``), built(NamedArgs(nil).Names()))
	})

	t.Run(`Values`, func(t *testing.T) {
		eq(t, rei(`$1, $2`, 10, 20), built(args.Values()))
		eq(t, rei(`$1, $1`, 10), built(StructArgs(PairStruct{10, 10}).Values()))
	})

	t.Run(`NamesAndValues`, func(t *testing.T) {
		eq(t, rei(`("one", "two") values ($1, $2)`, 10, 20), built(args.NamesAndValues()))
		eq(t, rei(`default values`), built(NamedArgs(nil).NamesAndValues()))

		bui := SQL([]string{`insert into `, ` `, ` returning *`}, Ident(`some_table`), args.NamesAndValues())
		eq(t,
			rei(`insert into "some_table" ("one", "two") values ($1, $2) returning *`, 10, 20),
			built(bui),
		)
	})

	t.Run(`Assignments`, func(t *testing.T) {
		eq(t, rei(`"one" = $1, "two" = $2`, 10, 20), built(args.Assignments()))

		bui := SQL(
			[]string{`update some_table set `, ` where id = `, ``},
			args.Assignments(), 30,
		)
		eq(t, rei(`update some_table set "one" = $1, "two" = $2 where id = $3`, 10, 20, 30), built(bui))
	})

	t.Run(`Conditions`, func(t *testing.T) {
		eq(t,
			rei(`"one" = $1 and "two" = $2 and "three" is null`, int64(10), int64(20)),
			built(StructArgs(TrioStruct{One: 10, Two: 20}).Conditions()),
		)
		eq(t, rei(`true`), built(NamedArgs(nil).Conditions()))
	})

	t.Run(`quoting`, func(t *testing.T) {
		eq(t, rei(`"one""two" = $1`, 10), built(NamedArgs{Named(`one"two`, 10)}.Assignments()))
	})
}

func TestNamedArg_IsNil(t *testing.T) {
	eq(t, true, NamedArg{}.IsNil())
	eq(t, true, NamedArg{Value: (*string)(nil)}.IsNil())
	eq(t, false, NamedArg{Value: ``}.IsNil())
	eq(t, false, NamedArg{Value: time.Time{}}.IsNil())

	args := NamedArgs{Named(`one`, nil), Named(`two`, 10)}
	eq(t, true, args.Some(NamedArg.IsNil))
	eq(t, false, args.Every(NamedArg.IsNil))
}

func TestCols(t *testing.T) {
	t.Run(`flat`, func(t *testing.T) {
		eq(t, rei(`"one", "two"`), built(Cols(PairStruct{})))
		eq(t, rei(`"one", "two"`), built(Cols((*PairStruct)(nil))))
		eq(t, rei(`"one", "two"`), built(Cols([]PairStruct(nil))))
		eq(t, rei(`"one", "two"`), built(Cols(&[]*PairStruct{})))
	})

	t.Run(`embedded`, func(t *testing.T) {
		eq(t, rei(`"embed_id", "embed_name", "outer_id", "outer_name"`), built(Cols(Outer{})))
	})

	t.Run(`nested`, func(t *testing.T) {
		eq(t,
			rei(`"id", "name", ("internal")."id" as "internal.id", ("internal")."name" as "internal.name"`),
			built(Cols(External{})),
		)
	})

	t.Run(`scannable_struct_is_not_nested`, func(t *testing.T) {
		type Val struct {
			CreatedAt time.Time `db:"created_at"`
		}
		eq(t, rei(`"created_at"`), built(Cols(Val{})))
	})

	t.Run(`non_struct`, func(t *testing.T) {
		panics(t, `InvalidInput`, func() { Cols(10) })
		panics(t, `InvalidInput`, func() { Cols(nil) })
	})
}
