package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presenter-generator/internal/analyze"
	"presenter-generator/internal/mapping"
)

func blogGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	graph, err := analyze.NewAnalyzer().LoadPackages("presenter-generator/examples/blog")
	require.NoError(t, err)

	return graph
}

func exposes(t *testing.T, f *mapping.File, name string) []mapping.Expose {
	t.Helper()

	p, ok := f.Lookup(name)
	require.True(t, ok, name)

	return p.Expose
}

func TestPlanner_Suggest_Follow(t *testing.T) {
	res, err := NewPlanner(blogGraph(t), DefaultConfig()).Suggest("blog.Post")
	require.NoError(t, err)

	f := res.File
	assert.Equal(t, []string{"PostPresenter", "UserPresenter", "CommentPresenter", "MediaPresenter"}, f.Names())
	assert.Equal(t, "presenters", f.Package)

	assert.Equal(t, []mapping.Expose{
		{Attrs: mapping.StringOrArray{"id", "title", "body", "tags"}},
		{Attrs: mapping.StringOrArray{"author"}, Presenter: "UserPresenter"},
		{Attrs: mapping.StringOrArray{"comments"}, Presenter: "CommentPresenter"},
		{Attrs: mapping.StringOrArray{"cover"}, Presenter: "MediaPresenter"},
		{Attrs: mapping.StringOrArray{"published_at", "draft"}},
	}, exposes(t, f, "PostPresenter"))

	assert.Equal(t, []mapping.Expose{
		{Attrs: mapping.StringOrArray{"id", "first_name", "last_name", "email", "role"}},
	}, exposes(t, f, "UserPresenter"))

	post, _ := f.Lookup("PostPresenter")
	assert.Equal(t, map[string]string{"subject": "blog.Post"}, post.SubjectTypes)

	assert.True(t, res.Diagnostics.IsValid())
}

func TestPlanner_Suggest_Methods(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Methods = true

	res, err := NewPlanner(blogGraph(t), cfg).Suggest("blog.User", "blog.Post")
	require.NoError(t, err)

	user := exposes(t, res.File, "UserPresenter")
	require.Len(t, user, 1)
	assert.Contains(t, user[0].Attrs, "full_name")

	post := exposes(t, res.File, "PostPresenter")
	last := post[len(post)-1]
	assert.Equal(t, mapping.StringOrArray{"published_at", "draft", "cover_kind"}, last.Attrs)

	var skipped []string
	for _, d := range res.Diagnostics.Infos {
		if d.Code == "method_skipped" {
			skipped = append(skipped, d.Attribute)
		}
	}

	assert.Equal(t, []string{"excerpt"}, skipped)
}

func TestPlanner_Suggest_NoFollow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Follow = false

	res, err := NewPlanner(blogGraph(t), cfg).Suggest("blog.Comment")
	require.NoError(t, err)

	assert.Equal(t, []string{"CommentPresenter"}, res.File.Names())
	assert.Equal(t, []mapping.Expose{
		{Attrs: mapping.StringOrArray{"id", "body", "author"}},
	}, exposes(t, res.File, "CommentPresenter"))
	assert.Equal(t, []string{"not_followed"}, res.Diagnostics.Codes())
}

func TestPlanner_Suggest_RootsAreReused(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Follow = false

	res, err := NewPlanner(blogGraph(t), cfg).Suggest("blog.Comment", "blog.User")
	require.NoError(t, err)

	assert.Equal(t, []mapping.Expose{
		{Attrs: mapping.StringOrArray{"id", "body"}},
		{Attrs: mapping.StringOrArray{"author"}, Presenter: "UserPresenter"},
	}, exposes(t, res.File, "CommentPresenter"))
}

func TestPlanner_Suggest_Errors(t *testing.T) {
	_, err := NewPlanner(nil, DefaultConfig()).Suggest("blog.Post")
	assert.Error(t, err)

	res, err := NewPlanner(blogGraph(t), DefaultConfig()).Suggest("blog.Nope")
	require.Error(t, err)
	assert.Equal(t, []string{"type_not_found"}, res.Diagnostics.Codes())
}

func TestPlan_ExportYAML(t *testing.T) {
	res, err := NewPlanner(blogGraph(t), DefaultConfig()).Suggest("blog.Media")
	require.NoError(t, err)

	out, err := res.ExportYAML()
	require.NoError(t, err)

	parsed, err := mapping.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, res.File, parsed)

	_, err = (&Plan{}).ExportYAML()
	assert.Error(t, err)
}
