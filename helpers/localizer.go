package helpers

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"

	"presenter-generator/presenter"
)

// Names are the helper names a presenter delegates to a Localizer.
var Names = []string{"translate", "t", "localize", "l"}

// DefaultLocale is used when no locale is requested.
var DefaultLocale = language.AmericanEnglish

// Localizer formats messages and values for one locale.
type Localizer struct {
	tag     language.Tag
	builder *catalog.Builder
	printer *message.Printer
	tags    []language.Tag
}

// NewLocalizer builds a Localizer for locale from the given catalogs. The
// locale is matched against the catalog locales; an empty locale selects
// DefaultLocale.
func NewLocalizer(locale string, files ...*CatalogFile) (*Localizer, error) {
	builder, tags, err := buildCatalog(files)
	if err != nil {
		return nil, err
	}

	want := DefaultLocale

	if locale != "" {
		want, err = language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
	}

	return newLocalizer(want, builder, tags), nil
}

// MustLocalizer is like NewLocalizer but panics on error.
func MustLocalizer(locale string, files ...*CatalogFile) *Localizer {
	l, err := NewLocalizer(locale, files...)
	if err != nil {
		panic(err)
	}

	return l
}

// Locale returns the requested locale.
func (l *Localizer) Locale() language.Tag { return l.tag }

// Locales returns the locales the catalogs define, in load order.
func (l *Localizer) Locales() []language.Tag {
	out := make([]language.Tag, len(l.tags))
	copy(out, l.tags)

	return out
}

// For returns a Localizer sharing the catalogs for another locale.
func (l *Localizer) For(locale string) (*Localizer, error) {
	want, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	return newLocalizer(want, l.builder, l.tags), nil
}

// newLocalizer prints with the closest catalog locale to want.
func newLocalizer(want language.Tag, builder *catalog.Builder, tags []language.Tag) *Localizer {
	tag := want
	if len(tags) > 0 {
		if _, idx, confidence := language.NewMatcher(tags).Match(want); confidence != language.No {
			tag = tags[idx]
		}
	}

	return &Localizer{
		tag:     want,
		builder: builder,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
		tags:    tags,
	}
}

// Translate looks key up and formats it with args. Unknown keys are
// formatted as given.
func (l *Localizer) Translate(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// T is short for Translate.
func (l *Localizer) T(key string, args ...any) string {
	return l.Translate(key, args...)
}

// Localize formats value for the locale: numbers get grouping and the
// locale's decimal mark, times use layout (time.DateOnly by default).
func (l *Localizer) Localize(value any, layout ...string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		f := time.DateOnly
		if len(layout) > 0 && layout[0] != "" {
			f = layout[0]
		}

		return v.Format(f)
	case *time.Time:
		if v == nil {
			return ""
		}

		return l.Localize(*v, layout...)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return l.printer.Sprint(number.Decimal(v))
	default:
		return l.printer.Sprint(v)
	}
}

// L is short for Localize.
func (l *Localizer) L(value any, layout ...string) string {
	return l.Localize(value, layout...)
}

// Provider exposes l to presenter delegations.
func Provider(l *Localizer) presenter.Provider {
	return func(*presenter.Instance) any { return l }
}
