package sqlfrag

import (
	"encoding/json"
	"errors"
)

func TestOrdAsc(t *T) {
	eq(t, Ord{Path: []string{`one`, `two`}, IsDesc: false}, OrdAsc(`one`, `two`))
}

func TestOrdDesc(t *T) {
	eq(t, Ord{Path: []string{`one`, `two`}, IsDesc: true}, OrdDesc(`one`, `two`))
}

func TestOrdString(t *T) {
	t.Run(`singular`, func(t *T) {
		eq(t, `"one" asc`, OrdAsc(`one`).String())
		eq(t, `"one" desc`, OrdDesc(`one`).String())
		eq(t, `"one" desc nulls last`, OrdDesc(`one`).Nl().String())
	})

	t.Run(`binary`, func(t *T) {
		eq(t, `("one")."two" asc`, OrdAsc(`one`, `two`).String())
		eq(t, `("one")."two" desc`, OrdDesc(`one`, `two`).String())
	})

	t.Run(`plural`, func(t *T) {
		eq(t, `("one")."two"."three" asc`, OrdAsc(`one`, `two`, `three`).String())
		eq(t, `("one")."two"."three" desc`, OrdDesc(`one`, `two`, `three`).String())
	})

	t.Run(`empty`, func(t *T) {
		panics(t, `InvalidInput`, func() { _ = Ord{}.String() })
	})
}

func TestOrdsLen(t *T) {
	eq(t, 0, Ords{}.Len())
	eq(t, true, Ords{}.IsEmpty())
	eq(t, 1, OrdsFrom(OrdAsc(`one`)).Len())
	eq(t, false, OrdsFrom(OrdAsc(`one`)).IsEmpty())
}

func TestOrdsOr(t *T) {
	var ords Ords
	ords.Or(OrdAsc(`one`))
	eq(t, OrdsFrom(OrdAsc(`one`)).Items, ords.Items)

	ords.Or(OrdAsc(`two`))
	eq(t, OrdsFrom(OrdAsc(`one`)).Items, ords.Items)

	ords.Append(OrdDesc(`two`))
	eq(t, OrdsFrom(OrdAsc(`one`), OrdDesc(`two`)).Items, ords.Items)
}

func TestOrdsBuilder(t *T) {
	t.Run(`empty`, func(t *T) {
		eq(t, rei(``), built(Ords{}.Builder()))
	})

	t.Run(`plural`, func(t *T) {
		eq(t,
			rei(`order by "one" asc, ("two")."three" desc nulls last`),
			built(OrdsFrom(OrdAsc(`one`), OrdDesc(`two`, `three`).Nl()).Builder()),
		)
	})

	t.Run(`nested`, func(t *T) {
		bui := SQL(
			[]string{`select * from some_table where id = `, ` `, ``},
			10, OrdsFrom(OrdDesc(`created_at`)).Builder(),
		)
		eq(t, rei(`select * from some_table where id = $1 order by "created_at" desc`, 10), built(bui))
	})
}

func TestOrdsDec(t *T) {
	dec := func(t *T, out *Ords, input string) {
		err := json.Unmarshal([]byte(input), out)
		if err != nil {
			t.Fatalf("failed to decode ord from JSON: %+v", err)
		}
	}

	t.Run(`decode_from_json`, func(t *T) {
		t.Run(`minimal`, func(t *T) {
			ords := OrdsFor(External{})
			dec(t, &ords, `["externalName", "externalInternal.internalName"]`)
			eq(t, OrdsFrom(OrdAsc(`name`), OrdAsc(`internal`, `name`)).Items, ords.Items)
		})

		t.Run(`asc_desc`, func(t *T) {
			ords := OrdsFor(External{})
			dec(t, &ords, `["externalName asc", "externalInternal.internalName  DESC"]`)
			eq(t, OrdsFrom(OrdAsc(`name`), OrdDesc(`internal`, `name`)).Items, ords.Items)
		})

		t.Run(`nulls_last`, func(t *T) {
			ords := OrdsFor(External{})
			dec(t, &ords, `["externalId desc NULLS  LAST"]`)
			eq(t, OrdsFrom(OrdDesc(`id`).Nl()).Items, ords.Items)
		})

		t.Run(`embedded`, func(t *T) {
			ords := OrdsFor(&Outer{})
			dec(t, &ords, `["embedName", "outerId desc"]`)
			eq(t, OrdsFrom(OrdAsc(`embed_name`), OrdDesc(`outer_id`)).Items, ords.Items)
		})
	})

	t.Run(`decode_from_strings`, func(t *T) {
		ords := OrdsFor(External{})

		err := ords.ParseSlice([]string{"externalName asc", "externalInternal.internalId desc"})
		if err != nil {
			t.Fatalf("failed to decode ord from strings: %+v", err)
		}

		eq(t, OrdsFrom(OrdAsc(`name`), OrdDesc(`internal`, `id`)).Items, ords.Items)
	})

	t.Run(`reject_malformed`, func(t *T) {
		test := func(str string) {
			ords := OrdsFor(struct {
				Asc   string `json:"asc"`
				Nulls string `json:"nulls"`
			}{})

			err := ords.ParseSlice([]string{str})
			if err == nil {
				t.Fatalf("expected decoding %q to fail; decoded into %+v", str, ords)
			}
		}

		test("")
		test(" ")
		test("asc")
		test(" asc")
		test("nulls last")
		test("asc nulls last")
		test("one; drop table users")
	})

	t.Run(`reject_unknown_fields`, func(t *T) {
		ords := OrdsFor(External{})

		err := ords.ParseSlice([]string{"external_name asc"})
		eq(t, true, errors.Is(err, ErrUnknownField))

		err = ords.ParseSlice([]string{"onlyJson asc"})
		eq(t, true, errors.Is(err, ErrUnknownField))
	})

	t.Run(`reject_path_through_scalar`, func(t *T) {
		ords := OrdsFor(External{})
		err := ords.ParseSlice([]string{"externalName.other"})
		eq(t, true, errors.Is(err, ErrInvalidInput))
	})

	t.Run(`fail_when_type_is_not_provided`, func(t *T) {
		const str = "some_ident asc"
		ords := OrdsFor(nil)

		err := ords.ParseSlice([]string{str})
		if err == nil {
			t.Fatalf("expected decoding %q to fail", str)
		}
	})
}
