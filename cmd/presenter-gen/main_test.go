package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogDeclarations = "../../examples/blog/presenters.yaml"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestCheck(t *testing.T) {
	out, err := run(t, "", "check", blogDeclarations)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: "+blogDeclarations+" (7 presenters)")
}

func TestCheck_WithSubjectTypes(t *testing.T) {
	out, err := run(t, "", "check", "--pkg", "presenter-generator/examples/blog", blogDeclarations)
	require.NoError(t, err)
	assert.NotContains(t, out, "warning")
}

func TestCheck_Errors(t *testing.T) {
	path := writeTemp(t, "bad.yaml", "presenters:\n  - name: A\n    extends: B\n")

	out, err := run(t, "", "check", path)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "error: [A]: [unknown_parent]")
}

func TestGen(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "", "gen", "--out", dir, "--package", "views", blogDeclarations)
	require.NoError(t, err)
	assert.Contains(t, out, "generated 8 files")

	content, err := os.ReadFile(filepath.Join(dir, "post_presenter.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package views")

	assert.FileExists(t, filepath.Join(dir, "presenters.go"))
}

func TestGen_DryRun(t *testing.T) {
	out, err := run(t, "", "gen", "--dry-run", blogDeclarations)
	require.NoError(t, err)
	assert.Contains(t, out, "// presenters.go\n")
	assert.Contains(t, out, "type CommentPresenter struct")
}

const postJSON = `{
	"id": 7,
	"title": "Notes",
	"tags": ["history"],
	"author": {"id": 1, "full_name": "Ada Lovelace", "email": "ada@example.com"},
	"comments": [],
	"cover_kind": "video",
	"cover": {"kind": "video", "embed_url": "https://video.example/1", "title": "Clip"}
}`

func TestRender_JSON(t *testing.T) {
	out, err := run(t, postJSON, "render", blogDeclarations, "PostPresenter")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 7,
		"title": "Notes",
		"tags": ["history"],
		"author": {"id": 1, "full_name": "Ada Lovelace", "contact": "ada@example.com"},
		"comments": [],
		"cover_url": "https://video.example/1",
		"cover_caption": "Clip"
	}`, out)
}

func TestRender_InputFile(t *testing.T) {
	path := writeTemp(t, "post.json", postJSON)

	out, err := run(t, "", "render", "--input", path, blogDeclarations, "PostSummaryPresenter")
	require.NoError(t, err)
	assert.Contains(t, out, `"author_name": "Ada Lovelace"`)
}

func TestRender_YAML(t *testing.T) {
	user := `{"id": 1, "full_name": "Ada", "email": "ada@example.com"}`

	out, err := run(t, user, "render", "--format", "yaml", blogDeclarations, "UserPresenter")
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nfull_name: Ada\ncontact: ada@example.com\n", out)
}

func TestRender_Many(t *testing.T) {
	users := `[{"id": 1, "full_name": "Ada"}, {"id": 2, "full_name": "Bob"}]`

	out, err := run(t, users, "render", "--many", blogDeclarations, "UserPresenter")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id": 1, "full_name": "Ada", "contact": null},
		{"id": 2, "full_name": "Bob", "contact": null}
	]`, out)
}

func TestRender_Subjects(t *testing.T) {
	input := `[{"id": 3, "body": "Nice"}, {"title": "Notes"}]`

	out, err := run(t, input, "render", "--subjects", blogDeclarations, "CommentPresenter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 3, "body": "Nice", "post_title": "Notes", "author": null}`, out)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "unknown presenter",
			stdin: "{}",
			args:  []string{"render", blogDeclarations, "NopePresenter"},
			want:  `presenter "NopePresenter" is not declared`,
		},
		{
			name:  "bad json",
			stdin: "{",
			args:  []string{"render", blogDeclarations, "UserPresenter"},
			want:  "decoding input",
		},
		{
			name:  "many without array",
			stdin: "{}",
			args:  []string{"render", "--many", blogDeclarations, "UserPresenter"},
			want:  "--many needs a JSON array",
		},
		{
			name:  "exclusive flags",
			stdin: "[]",
			args:  []string{"render", "--many", "--subjects", blogDeclarations, "UserPresenter"},
			want:  "exclusive",
		},
		{
			name:  "format",
			stdin: "{}",
			args:  []string{"render", "--format", "xml", blogDeclarations, "UserPresenter"},
			want:  "unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestInspect(t *testing.T) {
	out, err := run(t, "", "inspect", blogDeclarations, "PostSummaryPresenter")
	require.NoError(t, err)

	assert.Contains(t, out, "- name: PostSummaryPresenter\n  extends: PostPresenter\n")
	assert.Contains(t, out, "suppress_prefixes: true")
	assert.Contains(t, out, "- name: author_name\n      declared_by: PostSummaryPresenter\n")
	assert.NotContains(t, out, "name: UserPresenter\n  slots")
}

func TestInspect_UnknownPresenter(t *testing.T) {
	_, err := run(t, "", "inspect", blogDeclarations, "Nope")
	assert.ErrorContains(t, err, `presenter "Nope" is not declared`)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}

func TestSuggest(t *testing.T) {
	out, err := run(t, "", "suggest", "--pkg", "presenter-generator/examples/blog", "--no-follow", "--package", "views", "blog.Media")
	require.NoError(t, err)

	assert.Contains(t, out, "package: views\n")
	assert.Contains(t, out, "name: MediaPresenter")
	assert.Contains(t, out, "embed_url")
	assert.NotContains(t, out, "PostPresenter")
}

func TestSuggest_RequiresPackages(t *testing.T) {
	_, err := run(t, "", "suggest", "blog.Post")
	assert.ErrorContains(t, err, "--pkg is required")
}
