package match

import (
	"strings"
	"unicode"
)

// commonInitialisms are spelled fully upper case by ExportedName.
var commonInitialisms = map[string]bool{
	"api":  true,
	"html": true,
	"http": true,
	"id":   true,
	"ip":   true,
	"json": true,
	"sql":  true,
	"uri":  true,
	"url":  true,
	"uuid": true,
	"xml":  true,
}

// NormalizeIdent normalizes an identifier for comparison.
// The normalization pipeline:
// 1. Tokenize CamelCase and separators.
// 2. Case-fold to lower.
// 3. Join without separators.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// SameIdent reports whether a and b name the same attribute,
// e.g. "user_name", "userName" and "UserName".
func SameIdent(a, b string) bool {
	if a == b {
		return true
	}

	return NormalizeIdent(a) == NormalizeIdent(b)
}

// SnakeName returns the lower snake_case spelling of a symbol,
// e.g. "FullName" -> "full_name", "EmbedURL" -> "embed_url".
func SnakeName(s string) string {
	return strings.Join(TokenizeIdent(s), "_")
}

// ExportedName returns the exported Go spelling of a symbol.
// Examples:
//   - "name" -> "Name"
//   - "user_name" -> "UserName"
//   - "post_id" -> "PostID"
func ExportedName(s string) string {
	tokens := TokenizeIdent(s)

	var b strings.Builder

	for _, tok := range tokens {
		if commonInitialisms[tok] {
			b.WriteString(strings.ToUpper(tok))

			continue
		}

		runes := []rune(tok)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}

// TokenizeIdent splits an identifier into lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase, camelCase or snake_case string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "post_title" -> ["post", "title"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken determines if a new token should start at position i.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID" splits before 'I'
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser" splits before 'P'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
