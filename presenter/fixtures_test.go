package presenter

import (
	"fmt"
)

type user struct {
	Name         string
	Email        string
	PasswordHash string
}

type post struct {
	ID      int
	Title   string
	User    *user
	Comment *comment
	Users   []*user
}

type comment struct {
	Body string
	User *user
}

type site struct {
	Site string
}

type project struct {
	ID          int
	Description string
	Type        string
}

// entity counts how often its project container is resolved.
type entity struct {
	Name         string
	Email        string
	proj         *project
	projectCalls int
}

func (e *entity) Project() *project {
	e.projectCalls++
	return e.proj
}

type numbers []int

func (n numbers) Each(fn func(int)) {
	for _, v := range n {
		fn(v)
	}
}

// constant returns a Method yielding v.
func constant(v any) Method {
	return func(*Instance, ...any) (any, error) { return v, nil }
}

// prefixed returns a Method reading attr from the subject and prefixing it.
func prefixed(prefix, attr string) Method {
	return func(in *Instance, _ ...any) (any, error) {
		v, err := Send(in.Subject(), attr)
		if err != nil {
			return nil, err
		}

		return fmt.Sprintf("%s_%v", prefix, v), nil
	}
}

var (
	userPresenter = MustDefine("UserPresenter", func(d *Decl) {
		d.ExposeMany([]string{"name", "email"})
	})

	simplePresenter = MustDefine("SimplePresenter", func(d *Decl) {
		d.ExposeMany([]string{"name", "email"})
	})

	commentPresenter = MustDefine("CommentPresenter", func(d *Decl) {
		d.Subjects("comment", "post")
		d.Expose("body")
		d.Expose("name", With("user"))
		d.Expose("title", With("post"))
	})

	aliasPresenter = MustDefine("AliasPresenter", func(d *Decl) {
		d.Expose("site", As("url"))
	})

	iteratorPresenter = MustDefine("IteratorPresenter", func(d *Decl) {
		d.Expose("each")
	})

	exposeWithOtherPresenter = MustDefine("ExposeWithOtherPresenter", func(d *Decl) {
		d.SuppressPrefixes()
		d.Subjects("user", "comment")
		d.Expose("name", With("user"))
		d.Expose("user", Nested(simplePresenter), With("comment"), As("creator"))
	})

	exposeWithOneSubjectPresenter = MustDefine("ExposeWithOneSubjectPresenter", func(d *Decl) {
		d.Expose("id")
		d.Expose("user", Nested(simplePresenter))
		d.Expose("comment", Nested(simplePresenter))
	})

	testProjectPresenter = MustDefine("TestProjectPresenter", func(d *Decl) {
		d.Method("description", prefixed("test", "description"))
		d.Method("type", prefixed("test", "type"))
	})

	realProjectPresenter = MustDefine("RealProjectPresenter", func(d *Decl) {
		d.Method("description", prefixed("real", "description"))
		d.Method("type", prefixed("real", "type"))
	})

	collectPresenter = MustDefine("CollectPresenter", func(d *Decl) {
		d.ExposeMany([]string{"name", "email"})
		d.Expose("id", With("project"), Prefix(false))
		d.ExposeMany([]string{"description", "type"}, With("project"), Prefix(false),
			Wrap(func(in *Instance) *Type {
				if name, _ := in.Value("name"); name == "Real" {
					return realProjectPresenter
				}

				return testProjectPresenter
			}))
	})

	serializableParentPresenter = MustDefine("SerializableParentPresenter", func(d *Decl) {
		d.Serializable("one", "two")
		d.Method("one", constant(1))
		d.Method("two", constant(2))
		d.Method("three", constant(3))
	})

	serializablePresenter = MustExtend(serializableParentPresenter, "SerializablePresenter", nil)
)
