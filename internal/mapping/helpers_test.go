package mapping

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func yamlUnmarshal(t *testing.T, data string, v any) error {
	t.Helper()

	return yaml.Unmarshal([]byte(data), v)
}

func mustParse(t *testing.T, data string) *File {
	t.Helper()

	f, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	return f
}
