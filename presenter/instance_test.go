package presenter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_DefaultSubject(t *testing.T) {
	u := &user{Name: "John Doe", Email: "john@doe.com"}
	in := userPresenter.New(u)

	name, err := in.Value("name")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)

	email, err := in.Value("email")
	require.NoError(t, err)
	assert.Equal(t, "john@doe.com", email)

	assert.Same(t, u, in.Subject())
	assert.True(t, in.RespondsTo("subject"))

	subject, err := in.Send("subject")
	require.NoError(t, err)
	assert.Same(t, u, subject)

	assert.False(t, in.RespondsTo("password_hash"))
	_, err = in.Send("password_hash")
	assert.ErrorIs(t, err, ErrUndefinedMethod)
}

func TestInstance_SeveralSubjects(t *testing.T) {
	c := &comment{Body: "Some comment", User: &user{Name: "John Doe"}}
	p := &post{Title: "Some post"}
	in := commentPresenter.New(c, p)

	tests := map[string]any{
		"body":       "Some comment",
		"post_title": "Some post",
		"user_name":  "John Doe",
	}

	for field, want := range tests {
		got, err := in.Value(field)
		require.NoError(t, err)
		assert.Equal(t, want, got, field)
	}

	v, ok := in.Slot("comment")
	assert.True(t, ok)
	assert.Same(t, c, v)

	v, ok = in.Slot("post")
	assert.True(t, ok)
	assert.Same(t, p, v)

	_, ok = in.Slot("missing")
	assert.False(t, ok)
}

func TestInstance_NilSubjects(t *testing.T) {
	c := &comment{Body: "Some comment"}

	for name, in := range map[string]*Instance{
		"explicit nil": commentPresenter.New(c, nil),
		"typed nil":    commentPresenter.New(c, (*post)(nil)),
		"missing":      commentPresenter.New(c),
		"none":         commentPresenter.New(),
	} {
		t.Run(name, func(t *testing.T) {
			title, err := in.Value("post_title")
			require.NoError(t, err)
			assert.Nil(t, title)

			userName, err := in.Value("user_name")
			require.NoError(t, err)
			assert.Nil(t, userName)
		})
	}
}

func TestInstance_ExtraSubjectsIgnored(t *testing.T) {
	in := userPresenter.New(&user{Name: "a"}, &user{Name: "b"})

	name, err := in.Value("name")
	require.NoError(t, err)
	assert.Equal(t, "a", name)
}

func TestInstance_UnknownField(t *testing.T) {
	_, err := userPresenter.New(&user{}).Value("nope")
	assert.ErrorIs(t, err, ErrUndefinedMethod)
}

func TestInstance_ForwardsCallbacks(t *testing.T) {
	in := iteratorPresenter.New(numbers{1, 2, 3})

	var got []int

	v, err := in.Value("each", func(n int) { got = append(got, n) })
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, []int{1, 2, 3}, got)

	_, err = in.Value("each")
	assert.ErrorIs(t, err, ErrArgumentMismatch)
}

func TestInstance_CustomSubjectMethod(t *testing.T) {
	typ := MustDefine("MessagePresenter", func(d *Decl) {
		d.Subjects("message", "user")
		d.Expose("id")
		d.Expose("name", With("user"))
		d.Method("user", func(in *Instance, _ ...any) (any, error) {
			msg, _ := in.Slot("message")

			recipient, err := Send(msg, "recipient")
			if err != nil {
				return nil, err
			}

			return Send(recipient, "user")
		})
	})

	in := typ.New(map[string]any{
		"id":        1,
		"recipient": map[string]any{"user": map[string]any{"name": "Tom"}},
	})

	id, err := in.Value("id")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	name, err := in.Value("user_name")
	require.NoError(t, err)
	assert.Equal(t, "Tom", name)
}

func TestInstance_ContainerMethodOnPrimary(t *testing.T) {
	e := &entity{Name: "Test", proj: &project{ID: 7}}
	in := collectPresenter.New(e)

	id, err := in.Value("id")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestInstance_WrapperSharesContainer(t *testing.T) {
	tests := []struct {
		name        string
		description string
		kind        string
	}{
		{name: "Test", description: "test_description", kind: "test_type"},
		{name: "Real", description: "real_description", kind: "real_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &entity{
				Name:  tt.name,
				Email: "foo@bar.com",
				proj:  &project{ID: 1, Description: "description", Type: "type"},
			}
			in := collectPresenter.New(e)

			desc, err := in.Value("description")
			require.NoError(t, err)
			assert.Equal(t, tt.description, desc)

			kind, err := in.Value("type")
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)

			_, err = in.Value("description")
			require.NoError(t, err)

			assert.Equal(t, 1, e.projectCalls)

			// id reads the container without the wrapper
			_, err = in.Value("id")
			require.NoError(t, err)
			assert.Equal(t, 2, e.projectCalls)
		})
	}
}

func TestInstance_WrapperPerInstance(t *testing.T) {
	e := &entity{Name: "Test", proj: &project{Description: "d"}}

	_, err := collectPresenter.New(e).Value("description")
	require.NoError(t, err)
	_, err = collectPresenter.New(e).Value("description")
	require.NoError(t, err)

	assert.Equal(t, 2, e.projectCalls)
}

func TestInstance_WrapperPerContainer(t *testing.T) {
	inner := MustDefine("TitleWrapper", func(d *Decl) { d.Expose("title") })
	wrap := Wrap(func(*Instance) *Type { return inner })

	typ := MustDefine("TwoSources", func(d *Decl) {
		d.Subjects("a", "b")
		d.Expose("title", With("a"), wrap)
		d.Expose("title", With("b"), wrap)
	})

	in := typ.New(&post{Title: "from a"}, &post{Title: "from b"})

	a, err := in.Value("a_title")
	require.NoError(t, err)
	assert.Equal(t, "from a", a)

	b, err := in.Value("b_title")
	require.NoError(t, err)
	assert.Equal(t, "from b", b)
}

func TestInstance_WrapperNilType(t *testing.T) {
	typ := MustDefine("NoWrapper", func(d *Decl) {
		d.Expose("description", With("project"), Wrap(func(*Instance) *Type { return nil }))
	})

	v, err := typ.New(&entity{proj: &project{}}).Value("project_description")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestInstance_WrapperPrefersMethod(t *testing.T) {
	typ := MustDefine("MethodContainer", func(d *Decl) {
		d.Method("project", constant(&project{Description: "from method"}))
		d.Expose("description", With("project"), Prefix(false), Wrap(func(*Instance) *Type {
			return MustDefine("ProjectWrapper", func(d *Decl) { d.Expose("description") })
		}))
	})

	e := &entity{proj: &project{Description: "from subject"}}

	v, err := typ.New(e).Value("description")
	require.NoError(t, err)
	assert.Equal(t, "from method", v)
	assert.Zero(t, e.projectCalls)
}

func TestInstance_NestedPresenter(t *testing.T) {
	t.Run("several subjects", func(t *testing.T) {
		u := &user{Name: "Peter", Email: "peter@email.com"}
		c := &comment{User: &user{Name: "Steve", Email: "steve@email.com"}}
		in := exposeWithOtherPresenter.New(u, c)

		name, err := in.Value("name")
		require.NoError(t, err)
		assert.Equal(t, "Peter", name)

		creator, err := in.Value("creator")
		require.NoError(t, err)
		require.IsType(t, &Instance{}, creator)

		nested := creator.(*Instance)
		assert.True(t, nested.Is(simplePresenter))

		v, err := nested.Value("name")
		require.NoError(t, err)
		assert.Equal(t, "Steve", v)
	})

	t.Run("nil value", func(t *testing.T) {
		p := &post{ID: 1, User: &user{Name: "Peter"}}
		in := exposeWithOneSubjectPresenter.New(p)

		v, err := in.Value("comment")
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = in.Value("user")
		require.NoError(t, err)
		assert.IsType(t, &Instance{}, v)
	})

	t.Run("sequence", func(t *testing.T) {
		typ := MustDefine("UsersPresenter", func(d *Decl) {
			d.Expose("users", Nested(simplePresenter))
		})

		p := &post{Users: []*user{{Name: "a"}, {Name: "b"}, {Name: "c"}}}

		v, err := typ.New(p).Value("users")
		require.NoError(t, err)

		list, ok := v.([]*Instance)
		require.True(t, ok)
		require.Len(t, list, 3)

		for i, want := range []string{"a", "b", "c"} {
			assert.True(t, list[i].Is(simplePresenter))

			name, err := list[i].Value("name")
			require.NoError(t, err)
			assert.Equal(t, want, name)
		}
	})

	t.Run("empty sequence stays", func(t *testing.T) {
		typ := MustDefine("UsersPresenter", func(d *Decl) {
			d.Expose("users", Nested(simplePresenter))
		})

		v, err := typ.New(&post{Users: []*user{}}).Value("users")
		require.NoError(t, err)
		assert.Equal(t, []*user{}, v)
	})
}

func TestInstance_NestedSelfReference(t *testing.T) {
	type node struct {
		Name   string
		Parent *node
	}

	var nodePresenter *Type
	nodePresenter = MustDefine("NodePresenter", func(d *Decl) {
		d.Expose("name")
		d.Expose("parent", NestedFunc(func() *Type { return nodePresenter }))
	})

	in := nodePresenter.New(&node{Name: "leaf", Parent: &node{Name: "root"}})

	m, err := in.ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "leaf",
		"parent": map[string]any{"name": "root", "parent": nil},
	}, m.Plain())
}

func TestInstance_Transparent(t *testing.T) {
	typ := MustDefine("PassThrough", func(d *Decl) {
		d.ExposeAll()
		d.Expose("email", As("contact"))
	})

	in := typ.New(&user{Name: "John", Email: "john@doe.com"})

	assert.True(t, in.RespondsTo("name"))
	assert.True(t, in.RespondsTo("Name"))
	assert.False(t, in.RespondsTo("age"))

	name, err := in.Send("name")
	require.NoError(t, err)
	assert.Equal(t, "John", name)

	_, err = in.Send("age")
	assert.ErrorIs(t, err, ErrUndefinedMethod)

	m, err := in.ToMap()
	require.NoError(t, err)
	assert.Equal(t, []string{"contact"}, m.Keys())
}

func TestInstance_StrictDoesNotForward(t *testing.T) {
	in := userPresenter.New(&user{PasswordHash: "secret"})

	assert.False(t, in.RespondsTo("password_hash"))

	_, err := in.Send("password_hash")
	assert.ErrorIs(t, err, ErrUndefinedMethod)
}

type translator struct{ locale string }

func (tr translator) T(key string, args ...any) string {
	return tr.locale + ":" + key
}

func TestInstance_Delegate(t *testing.T) {
	typ := MustDefine("Localized", func(d *Decl) {
		d.Delegate(func(*Instance) any { return translator{locale: "en"} }, "t", "translate")
		d.Method("greeting", func(in *Instance, _ ...any) (any, error) {
			return in.Send("t", "hello")
		})
	})

	in := typ.New(nil)

	assert.True(t, in.RespondsTo("t"))
	assert.Equal(t, []string{"t", "translate"}, typ.Delegations())

	v, err := in.Send("t", "title", 1)
	require.NoError(t, err)
	assert.Equal(t, "en:title", v)

	v, err = in.Send("greeting")
	require.NoError(t, err)
	assert.Equal(t, "en:hello", v)

	// translator has no Translate method
	v, err = in.Send("translate", "x")
	require.NoError(t, err)
	assert.Nil(t, v)
}

var errBoom = errors.New("boom")

type failing struct{}

func (failing) Title() (string, error) { return "", errBoom }

func TestInstance_PropagatesSubjectErrors(t *testing.T) {
	typ := MustDefine("Failing", func(d *Decl) { d.Expose("title") })

	_, err := typ.New(failing{}).Value("title")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "Failing.title")

	_, err = typ.New(failing{}).ToMap()
	assert.ErrorIs(t, err, errBoom)
}

func TestDecorateBlank(t *testing.T) {
	tests := []struct {
		value any
		blank bool
	}{
		{nil, true},
		{(*user)(nil), true},
		{"", true},
		{"   ", true},
		{false, true},
		{[]int{}, true},
		{map[string]any{}, true},
		{0, false},
		{true, false},
		{"x", false},
		{[]int{1}, false},
		{user{}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.blank, blank(tt.value), "%#v", tt.value)
	}

	assert.Equal(t, "", decorate("", simplePresenter))
	assert.Equal(t, "x", decorate("x", nil))
	assert.IsType(t, &Instance{}, decorate(&user{}, simplePresenter))
	assert.IsType(t, []*Instance{}, decorate([]user{{}}, simplePresenter))
}
