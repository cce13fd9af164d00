package presenter

// Option configures one Expose statement.
type Option func(*exposeOptions)

type exposeOptions struct {
	with         string
	as           string
	prefix       *bool
	nested       TypeRef
	serializable bool
	wrapper      WrapperFunc
}

// With reads the attribute from a container: a subject slot, or a member of
// the primary subject. The container name prefixes the output name.
func With(container string) Option {
	return func(o *exposeOptions) { o.with = container }
}

// As renames the output field.
func As(name string) Option {
	return func(o *exposeOptions) { o.as = name }
}

// Prefix controls whether the container name prefixes the output field.
func Prefix(enabled bool) Option {
	return func(o *exposeOptions) { o.prefix = &enabled }
}

// Nested wraps non-blank values in t; sequences become one instance per element.
func Nested(t *Type) Option {
	return func(o *exposeOptions) {
		if t == nil {
			o.nested = nil
			return
		}

		o.nested = func() *Type { return t }
	}
}

// NestedFunc is Nested with a lazily resolved type.
func NestedFunc(ref TypeRef) Option {
	return func(o *exposeOptions) { o.nested = ref }
}

// Serializable registers a field backed by a hand-written method of the same
// name (see Decl.Method). No accessor is generated for it.
func Serializable() Option {
	return func(o *exposeOptions) { o.serializable = true }
}

// Wrap routes every attribute of the statement through one wrapper presenter
// built from the With container. Requires With.
func Wrap(fn WrapperFunc) Option {
	return func(o *exposeOptions) { o.wrapper = fn }
}
