package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagged struct {
	DisplayName string `presenter:"title"`
	CreatedAt   string `json:"created_at,omitempty"`
	Hidden      string `json:"-"`
	HTMLURL     string
	secret      string
}

type base struct {
	ID int
}

type derived struct {
	*base
	Label string
}

type counter struct{ n int }

func (c *counter) Incr(by int) int {
	c.n += by
	return c.n
}

func (c counter) Current() int { return c.n }

func TestSend_Fields(t *testing.T) {
	v := tagged{DisplayName: "Title", CreatedAt: "today", Hidden: "h", HTMLURL: "http://x", secret: "s"}

	tests := []struct {
		name string
		want any
		ok   bool
	}{
		{name: "title", want: "Title", ok: true},
		{name: "created_at", want: "today", ok: true},
		{name: "CreatedAt", want: "today", ok: true},
		{name: "hidden", want: "h", ok: true},
		{name: "html_url", want: "http://x", ok: true},
		{name: "display_name", want: "Title", ok: true},
		{name: "secret", ok: false},
		{name: "missing", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, RespondsTo(v, tt.name))

			got, err := Send(v, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSend_EmbeddedPointer(t *testing.T) {
	got, err := Send(derived{base: &base{ID: 3}, Label: "l"}, "id")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	assert.False(t, RespondsTo(derived{Label: "l"}, "id"))
	assert.True(t, RespondsTo(derived{Label: "l"}, "label"))
}

func TestSend_Methods(t *testing.T) {
	c := &counter{}

	got, err := Send(c, "incr", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = Send(c, "current")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// value receivers see the pointer method set through a copy
	got, err = Send(counter{n: 5}, "incr", 1)
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	_, err = Send(c, "incr")
	assert.ErrorIs(t, err, ErrArgumentMismatch)

	_, err = Send(c, "incr", "one")
	assert.ErrorIs(t, err, ErrArgumentMismatch)

	got, err = Send(c, "incr", 1, "ignored")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestSend_Maps(t *testing.T) {
	m := map[string]any{"first_name": "Ann", "Age": 30, "nothing": nil}

	got, err := Send(m, "first_name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got)

	got, err = Send(m, "FirstName")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got)

	got, err = Send(m, "age")
	require.NoError(t, err)
	assert.Equal(t, 30, got)

	assert.True(t, RespondsTo(m, "nothing"))
	assert.False(t, RespondsTo(map[int]string{1: "a"}, "1"))
}

func TestSend_NilTargets(t *testing.T) {
	for _, target := range []any{nil, (*user)(nil), map[string]any(nil)} {
		assert.False(t, RespondsTo(target, "name"))

		got, err := Send(target, "name")
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestSend_TypedNilResult(t *testing.T) {
	got, err := Send(&post{}, "user")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSend_Messenger(t *testing.T) {
	in := userPresenter.New(&user{Name: "John"})

	got, err := Send(in, "name")
	require.NoError(t, err)
	assert.Equal(t, "John", got)

	assert.False(t, RespondsTo(in, "Name"))
}
