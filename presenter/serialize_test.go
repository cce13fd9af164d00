package presenter

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToMap_RegistryOrder(t *testing.T) {
	c := &comment{Body: "Some comment", User: &user{Name: "John Doe"}}
	p := &post{Title: "Some post"}

	m, err := commentPresenter.New(c, p).ToMap()
	require.NoError(t, err)

	assert.Equal(t, []string{"body", "user_name", "post_title"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("user_name")
	assert.True(t, ok)
	assert.Equal(t, "John Doe", v)

	_, ok = m.Get("password_hash")
	assert.False(t, ok)
}

func TestToMap_SerializableOnly(t *testing.T) {
	in := serializablePresenter.New(nil)

	m, err := in.ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"one": 1, "two": 2}, m.Plain())

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"one":1,"two":2}`, string(data))

	assert.Equal(t, []string{"one", "two"}, in.Type().Registry().Names())
	assert.True(t, in.RespondsTo("three"))

	_, err = in.Value("three")
	assert.ErrorIs(t, err, ErrUndefinedMethod)
}

func TestToMap_SerializableWithoutMethod(t *testing.T) {
	typ := MustDefine("Partial", func(d *Decl) {
		d.Serializable("missing")
		d.Expose("name")
	})

	m, err := typ.New(&user{Name: "n"}).ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"missing": nil, "name": "n"}, m.Plain())
}

func TestToJSON_Nested(t *testing.T) {
	u := &user{Name: "Peter", Email: "peter@email.com", PasswordHash: "x"}
	c := &comment{User: &user{Name: "Steve", Email: "steve@email.com"}}

	data, err := exposeWithOtherPresenter.New(u, c).ToJSON("")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Peter","creator":{"name":"Steve","email":"steve@email.com"}}`, string(data))

	data, err = exposeWithOtherPresenter.New(u, &comment{}).ToJSON("  ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Peter","creator":null}`, string(data))
}

func TestToJSON_Sequence(t *testing.T) {
	typ := MustDefine("PostWithUsers", func(d *Decl) {
		d.Expose("title")
		d.Expose("users", Nested(simplePresenter))
	})

	in := typ.New(&post{Title: "t", Users: []*user{{Name: "a"}, {Name: "b", Email: "b@x"}}})

	data, err := in.ToJSON("")
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"t","users":[{"name":"a","email":""},{"name":"b","email":"b@x"}]}`,
		string(data))

	m, err := in.ToMap()
	require.NoError(t, err)

	want := map[string]any{
		"title": "t",
		"users": []any{
			map[string]any{"name": "a", "email": ""},
			map[string]any{"name": "b", "email": "b@x"},
		},
	}

	if diff := cmp.Diff(want, m.Plain()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(m))
	}
}

func TestToJSON_MatchesToMap(t *testing.T) {
	typ := MustDefine("PostWithCommenters", func(d *Decl) {
		d.Expose("title")
		d.Expose("users", Nested(simplePresenter))
	})

	in := typ.New(&post{Title: "t", Users: []*user{{Name: "a"}, {Name: "b", Email: "b@x"}}})

	data, err := in.ToJSON("  ")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	m, err := in.ToMap()
	require.NoError(t, err)

	if diff := cmp.Diff(m.Plain(), decoded); diff != "" {
		t.Errorf("decoded JSON differs from ToMap() (-map +json):\n%s\n%s", diff, spew.Sdump(m))
	}
}

func TestMarshalYAML(t *testing.T) {
	c := &comment{Body: "Some comment", User: &user{Name: "John Doe"}}

	data, err := yaml.Marshal(commentPresenter.New(c, &post{Title: "Some post"}))
	require.NoError(t, err)
	assert.Equal(t, "body: Some comment\nuser_name: John Doe\npost_title: Some post\n", string(data))

	nested, err := yaml.Marshal(exposeWithOtherPresenter.New(&user{Name: "P"}, &comment{User: &user{Name: "S"}}))
	require.NoError(t, err)
	assert.Equal(t, "name: P\ncreator:\n    name: S\n    email: \"\"\n", string(nested))
}

func TestToMap_Error(t *testing.T) {
	typ := MustDefine("Broken", func(d *Decl) {
		d.Expose("name")
		d.Expose("user", Nested(MustDefine("Inner", func(d *Decl) { d.Expose("title") })))
	})

	in := typ.New(struct {
		Name string
		User failing
	}{Name: "x"})

	_, err := in.ToMap()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "Inner.title")

	_, err = json.Marshal(in)
	assert.Error(t, err)
}
