package blog

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/blog/assets"
)

const testManifest = `
posts:
  - id: old
    title: Old Post
    date: 2023-05-01
    filename: old.md
  - id: new
    title: New Post
    date: 2024-02-10
    filename: new.md
    widget: tictactoe
  - id: ghost
    title: Missing File
    date: 2024-01-01
    filename: ghost.md
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"posts.yaml": {Data: []byte(testManifest)},
		"old.md":     {Data: []byte("First line\ncontinues here.\n\n## Later\n\nMore text.")},
		"new.md":     {Data: []byte("# Hello\n\nSome *emphasis* here.")},
	}
}

func TestLoad_SortsNewestFirst(t *testing.T) {
	b, err := Load(testFS())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())

	list := b.List()
	require.Len(t, list, 2, "posts with unreadable files are skipped")
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
	assert.Equal(t, "February 10, 2024", list[0].DateLabel)
	assert.Equal(t, "tictactoe", list[0].Widget)
}

func TestRender(t *testing.T) {
	b, err := Load(testFS())
	require.NoError(t, err)

	r, err := b.Render("new")
	require.NoError(t, err)
	assert.Contains(t, r.HTML, "<h1>Hello</h1>")
	assert.Contains(t, r.HTML, "<em>emphasis</em>")
	assert.Equal(t, "New Post", r.Title)

	_, err = b.Render("nope")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = b.Render("ghost")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "First line continues here....", preview("First line\ncontinues here.\n\nNext"))
	assert.Equal(t, "", preview("  \n"))
	assert.Equal(t, "Wrapped line and its tail...", preview("Wrapped line\r\nand its tail"), "no blank line still yields a preview")

	long := strings.Repeat("a", 250)
	got := preview(long)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	assert.Error(t, err)

	_, err = Load(fstest.MapFS{"posts.yaml": {Data: []byte("posts: [")}})
	assert.Error(t, err)

	_, err = Load(fstest.MapFS{"posts.yaml": {Data: []byte("posts:\n  - id: x\n    filename: x.md\n    date: yesterday\n")}})
	assert.ErrorContains(t, err, "bad date")

	_, err = Load(fstest.MapFS{"posts.yaml": {Data: []byte("posts:\n  - title: nameless\n")}})
	assert.ErrorContains(t, err, "needs id")

	dup := "posts:\n  - {id: a, filename: a.md, date: 2024-01-01}\n  - {id: a, filename: b.md, date: 2024-01-02}\n"
	_, err = Load(fstest.MapFS{"posts.yaml": {Data: []byte(dup)}})
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoad_EmbeddedPosts(t *testing.T) {
	b, err := Load(assets.Posts())
	require.NoError(t, err)
	list := b.List()
	require.Len(t, list, 3)
	assert.Equal(t, "spelling-bee", list[0].ID)
}
