package mapping

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"presenter-generator/presenter"
)

// Env is the Go side of a declaration file.
type Env struct {
	// Methods binds method and provider names used by the file.
	Methods *MethodRegistry

	// Logger receives debug output. Nil means no logging.
	Logger *zap.Logger

	// Lenient skips methods and providers missing from Methods instead of
	// failing. Fields built on them are left out of the presenter.
	Lenient bool
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}

	return e.Logger
}

// Build validates f and turns every declaration into a presenter type,
// parents first. Nested and wrapper presenters are looked up lazily so
// declarations may refer to each other, or to themselves, in any order.
func Build(f *File, env Env) (*presenter.Catalog, error) {
	diags := Validate(f)
	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid declarations: %w", err)
	}

	log := env.logger()

	for _, w := range diags.Warnings {
		log.Debug("declaration warning", zap.String("diagnostic", w.String()))
	}

	order, err := Order(f)
	if err != nil {
		return nil, err
	}

	cat := presenter.NewCatalog()

	var errs []error

	for _, i := range order {
		p := &f.Presenters[i]

		t, err := buildPresenter(cat, p, env, log)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := cat.Add(t); err != nil {
			errs = append(errs, err)
			continue
		}

		log.Debug("presenter built",
			zap.String("presenter", t.Name()),
			zap.String("extends", p.Extends),
			zap.Strings("slots", t.Slots()),
			zap.Strings("fields", t.Registry().Names()),
		)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return cat, nil
}

func buildPresenter(cat *presenter.Catalog, p *Presenter, env Env, log *zap.Logger) (*presenter.Type, error) {
	var bindErrs []error

	unbound := func(what, name string) {
		if env.Lenient {
			log.Info("skipping unbound "+what, zap.String("presenter", p.Name), zap.String("name", name))
			return
		}

		bindErrs = append(bindErrs, fmt.Errorf("%s: %s %q is not registered", p.Name, what, name))
	}

	skipped := make(map[string]bool)

	declare := func(d *presenter.Decl) {
		if !p.Subjects.IsEmpty() {
			d.Subjects(p.Subjects...)
		}

		if p.SuppressPrefixes {
			d.SuppressPrefixes()
		}

		if p.ExposeAll {
			d.ExposeAll()
		}

		for _, name := range p.Methods {
			m, ok := env.Methods.Method(p.Name, name)
			if !ok {
				unbound("method", name)
				skipped[name] = true

				continue
			}

			d.Method(name, m)
		}

		for _, del := range p.Delegate {
			provider, ok := env.Methods.Provider(del.To)
			if !ok {
				unbound("provider", del.To)
				continue
			}

			d.Delegate(provider, del.Methods...)
		}

		if serializable := without(p.Serializable, skipped); len(serializable) > 0 {
			d.Serializable(serializable...)
		}

		for i := range p.Expose {
			e := &p.Expose[i]
			if skipped[e.With] {
				log.Info("skipping attributes of unbound container",
					zap.String("presenter", p.Name), zap.String("with", e.With), zap.Strings("attrs", e.Attrs))

				continue
			}

			d.ExposeMany(e.Attrs, exposeOptions(cat, e)...)
		}
	}

	var (
		t   *presenter.Type
		err error
	)

	if p.Extends == "" {
		t, err = presenter.Define(p.Name, declare)
	} else {
		parent, ok := cat.Lookup(p.Extends)
		if !ok {
			return nil, fmt.Errorf("%s: parent %q was not built", p.Name, p.Extends)
		}

		t, err = presenter.Extend(parent, p.Name, declare)
	}

	if joined := errors.Join(append(bindErrs, err)...); joined != nil {
		return nil, joined
	}

	return t, nil
}

func without(names []string, skipped map[string]bool) []string {
	out := make([]string, 0, len(names))

	for _, n := range names {
		if !skipped[n] {
			out = append(out, n)
		}
	}

	return out
}

func exposeOptions(cat *presenter.Catalog, e *Expose) []presenter.Option {
	var opts []presenter.Option

	if e.With != "" {
		opts = append(opts, presenter.With(e.With))
	}

	if e.As != "" {
		opts = append(opts, presenter.As(e.As))
	}

	if e.Prefix != nil {
		opts = append(opts, presenter.Prefix(*e.Prefix))
	}

	if e.Presenter != "" {
		opts = append(opts, presenter.NestedFunc(lazyType(cat, e.Presenter)))
	}

	if e.Wrapper != nil {
		opts = append(opts, presenter.Wrap(wrapperFunc(cat, e.Wrapper)))
	}

	return opts
}

func lazyType(cat *presenter.Catalog, name string) presenter.TypeRef {
	return func() *presenter.Type {
		t, _ := cat.Lookup(name)
		return t
	}
}

// wrapperFunc selects the wrapper presenter. The switch attribute is read
// from the instance when it answers it, otherwise from the primary subject;
// its value is formatted with %v and looked up in the cases, falling back
// to Default.
func wrapperFunc(cat *presenter.Catalog, w *Wrapper) presenter.WrapperFunc {
	return func(in *presenter.Instance) *presenter.Type {
		name := w.Presenter
		if name == "" {
			name = w.Default
		}

		if w.Switch != "" {
			if key, ok := switchValue(in, w.Switch); ok {
				if c, found := w.Cases[key]; found {
					name = c
				}
			}
		}

		if name == "" {
			return nil
		}

		t, _ := cat.Lookup(name)

		return t
	}
}

func switchValue(in *presenter.Instance, attr string) (string, bool) {
	var (
		v   any
		err error
	)

	switch {
	case in.Type().Registry().Has(attr):
		v, err = in.Value(attr)
	case in.RespondsTo(attr):
		v, err = in.Send(attr)
	default:
		v, err = presenter.Send(in.Subject(), attr)
	}

	if err != nil || v == nil {
		return "", false
	}

	return fmt.Sprint(v), true
}
