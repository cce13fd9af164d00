// Package presenter builds declarative view objects over domain values.
//
// A presenter Type is declared once, with an explicit build step, and then
// instantiated per set of subjects. The declaration records which attributes
// of the subjects are exposed, under which output names, and how nested
// values are re-wrapped in other presenters:
//
//	var Comment = presenter.MustDefine("CommentPresenter", func(d *presenter.Decl) {
//		d.Subjects("comment", "post")
//		d.Expose("body")
//		d.Expose("name", presenter.With("user"))  // comment.user.name -> user_name
//		d.Expose("title", presenter.With("post")) // post.title        -> post_title
//	})
//
//	in := Comment.New(comment, post)
//	title, err := in.Value("post_title")
//	m, err := in.ToMap()
//
// # Registry
//
// Every Type owns an ordered Registry of Attributes keyed by output field
// name. Exposing the same output name twice replaces the entry in place, so
// extended types may override what they inherit. Serialization walks the
// registry in order.
//
// # Resolution
//
// Attribute values are resolved at call time. The container named by With is
// either another subject slot, or a member of the primary subject. Members
// of Go values are found by symbol: "user_name" matches a UserName method, a
// UserName field (or a field tagged `presenter:"user_name"` / `json:"user_name"`),
// or a "user_name"/"userName" key of a string-keyed map. Values implementing
// Messenger, Instance included, answer for themselves. A member that does not
// exist resolves to nil and is never an error.
//
// # Variants
//
// Types are strict by default: Send only answers registry fields, methods
// declared with Decl.Method and delegations. ExposeAll turns a Type
// transparent, forwarding every other call to the primary subject. The
// registry, and therefore serialization, is unaffected by the variant.
//
// # Concurrency
//
// Types are immutable once built and may be shared freely. Instances cache
// wrapper presenters lazily and must not be used from several goroutines
// without external synchronization.
package presenter
