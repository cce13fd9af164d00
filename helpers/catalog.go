package helpers

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// CatalogFile is one YAML message file for one locale.
type CatalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// ParseCatalog parses a YAML message file.
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var f CatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}

	if strings.TrimSpace(f.Locale) == "" {
		return nil, fmt.Errorf("message catalog: locale is required")
	}

	if _, err := language.Parse(f.Locale); err != nil {
		return nil, fmt.Errorf("message catalog: locale %q: %w", f.Locale, err)
	}

	for key := range f.Messages {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("message catalog %s: message key cannot be blank", f.Locale)
		}
	}

	return &f, nil
}

// LoadCatalog reads and parses a YAML message file.
func LoadCatalog(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message catalog %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// buildCatalog registers every message under its locale and, for regional
// locales, under the base language too unless that one is defined itself.
func buildCatalog(files []*CatalogFile) (*catalog.Builder, []language.Tag, error) {
	b := catalog.NewBuilder()

	explicit := make(map[string]bool)
	for _, f := range files {
		explicit[language.Make(f.Locale).String()] = true
	}

	seen := make(map[string]bool)

	var tags []language.Tag

	for _, f := range files {
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return nil, nil, fmt.Errorf("parse locale tag %q: %w", f.Locale, err)
		}

		targets := []language.Tag{tag}
		if base, _ := tag.Base(); base.String() != "und" {
			if baseTag := language.Make(base.String()); baseTag.String() != tag.String() && !explicit[baseTag.String()] {
				targets = append(targets, baseTag)
			}
		}

		keys := make([]string, 0, len(f.Messages))
		for key := range f.Messages {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, t := range targets {
			for _, key := range keys {
				if err := b.SetString(t, key, f.Messages[key]); err != nil {
					return nil, nil, fmt.Errorf("register %s/%s: %w", t, key, err)
				}
			}

			if !seen[t.String()] {
				seen[t.String()] = true
				tags = append(tags, t)
			}
		}
	}

	return b, tags, nil
}
