// Package helpers provides the localization helpers presenters delegate to.
//
// A Localizer answers t/translate (message lookup with printf-style
// arguments) and l/localize (locale-aware formatting of numbers and dates).
// Presenters reach it through a delegation:
//
//	d.Delegate(helpers.Provider(loc), helpers.Names...)
//
// Messages come from YAML catalogs:
//
//	locale: en-US
//	messages:
//	  post.comments: "%d comments"
package helpers
