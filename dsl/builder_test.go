package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formdata "github.com/lorefnon/go-formdata"
	"github.com/lorefnon/go-formdata/dsl"
)

func TestBuilder_Chaining(t *testing.T) {
	assert.Equal(t, "user.firstname", dsl.Field("user").Field("firstname").String())
	assert.Equal(t, "favouriteFrameworks[]", dsl.Field("favouriteFrameworks").Append().String())
	assert.Equal(t,
		"favouriteFrameworks[2].satisfaction:number",
		dsl.Field("favouriteFrameworks").Index(2).Field("satisfaction").Tagged("number"))
	assert.Equal(t, "grid[0][1]", dsl.Field("grid").Index(0).Index(1).String())
}

func TestBuilder_Immutable(t *testing.T) {
	base := dsl.Field("user")
	a := base.Field("first")
	b := base.Field("last")

	assert.Equal(t, "user.first", a.String())
	assert.Equal(t, "user.last", b.String())
	assert.Equal(t, "user", base.String())

	// Stringification is idempotent and side-effect free.
	assert.Equal(t, a.String(), a.String())
}

func TestBuilder_RoundTripsThroughParseKey(t *testing.T) {
	builders := []dsl.Builder{
		dsl.Field("a"),
		dsl.Field("a").Field("b").Field("c"),
		dsl.Field("items").Append(),
		dsl.Field("items").Index(4).Field("price"),
		dsl.Field("grid").Index(1).Index(2),
	}
	for _, b := range builders {
		path, tag, err := formdata.ParseKey(b.Tagged("number"))
		require.NoError(t, err, b.String())
		assert.Equal(t, b.Path(), path)
		assert.Equal(t, "number", tag)
	}
}

type address struct {
	City string `json:"city"`
}

type profile struct {
	FirstName string `formdata:"firstname"`
	LastName  string `json:"lastName,omitempty"`
	Plain     string
	Home      address `json:"home"`
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "firstname", dsl.NameOf(func(p *profile) *string { return &p.FirstName }))
	assert.Equal(t, "lastName", dsl.NameOf(func(p *profile) *string { return &p.LastName }))
	assert.Equal(t, "Plain", dsl.NameOf(func(p *profile) *string { return &p.Plain }))
}

func TestFieldOf(t *testing.T) {
	b := dsl.FieldOf(func(p *profile) *string { return &p.FirstName })
	assert.Equal(t, "firstname", b.String())
	assert.Equal(t, "firstname:string", b.Tagged("string"))
}

func TestPathOf(t *testing.T) {
	b := dsl.PathOf(func(p *profile) *string { return &p.Home.City })
	assert.Equal(t, "home.city", b.String())
}

type person struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type signup struct {
	User person `json:"user"` // first field: aliases the struct's own address
	Note string `json:"note"`
}

func TestPathOf_FieldAtOffsetZero(t *testing.T) {
	// signup.User and signup.User.First share an address; resolution must
	// descend to the string field rather than stop at the struct field.
	b := dsl.PathOf(func(s *signup) *string { return &s.User.First })
	assert.Equal(t, "user.first", b.String())

	b = dsl.PathOf(func(s *signup) *person { return &s.User })
	assert.Equal(t, "user", b.String())
}

func TestNameOf_RejectsNestedField(t *testing.T) {
	// A nested offset-0 field must not silently resolve to the top-level
	// field's name; NameOf supports top-level fields only.
	assert.Panics(t, func() {
		dsl.NameOf(func(s *signup) *string { return &s.User.First })
	})
}

func TestNameOf_PanicsOnForeignPointer(t *testing.T) {
	var escaped string
	assert.Panics(t, func() {
		dsl.NameOf(func(p *profile) *string { return &escaped })
	})
}
