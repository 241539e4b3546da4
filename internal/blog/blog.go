// internal/blog/blog.go
//
// Blog posts: a YAML manifest plus one markdown file per post.
//
//   posts.yaml
//     posts:
//       - id: example
//         title: Example Blog Post
//         date: 2024-01-01
//         filename: example.md
//         widget: spellingbee   # optional, names an embedded game
//
// Posts are listed newest first. Markdown is rendered with goldmark; raw HTML
// in posts is not passed through.

package blog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

const (
	manifestName = "posts.yaml"
	dateLayout   = "2006-01-02"
	labelLayout  = "January 2, 2006"
	previewRunes = 200
)

var ErrPostNotFound = errors.New("post not found")

// Post is one manifest entry.
type Post struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Date     string `yaml:"date" json:"date"`
	Filename string `yaml:"filename" json:"-"`
	Widget   string `yaml:"widget,omitempty" json:"widget,omitempty"`

	published time.Time
}

type manifest struct {
	Posts []Post `yaml:"posts"`
}

// Summary is a post as shown in the index.
type Summary struct {
	Post
	DateLabel string `json:"dateLabel"`
	Preview   string `json:"preview"`
}

// Rendered is a full post with its HTML body.
type Rendered struct {
	Summary
	HTML string `json:"html"`
}

// Blog serves posts from a directory.
type Blog struct {
	fsys  fs.FS
	posts []Post // newest first
	byID  map[string]int
	md    goldmark.Markdown
}

// Load reads and validates the manifest in fsys.
func Load(fsys fs.FS) (*Blog, error) {
	raw, err := fs.ReadFile(fsys, manifestName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestName, err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestName, err)
	}

	b := &Blog{fsys: fsys, byID: make(map[string]int, len(m.Posts)), md: goldmark.New()}
	for _, p := range m.Posts {
		if p.ID == "" || p.Filename == "" {
			return nil, fmt.Errorf("%s: post %q needs id and filename", manifestName, p.Title)
		}
		t, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: post %q: bad date %q", manifestName, p.ID, p.Date)
		}
		p.published = t
		b.posts = append(b.posts, p)
	}
	sort.SliceStable(b.posts, func(i, j int) bool {
		return b.posts[i].published.After(b.posts[j].published)
	})
	for i, p := range b.posts {
		if _, dup := b.byID[p.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate post id %q", manifestName, p.ID)
		}
		b.byID[p.ID] = i
	}
	return b, nil
}

// Len returns the number of posts in the manifest.
func (b *Blog) Len() int { return len(b.posts) }

// List returns every readable post, newest first. Posts whose markdown file
// cannot be read are logged and left out.
func (b *Blog) List() []Summary {
	out := make([]Summary, 0, len(b.posts))
	for _, p := range b.posts {
		src, err := fs.ReadFile(b.fsys, p.Filename)
		if err != nil {
			log.Error().Err(err).Str("post", p.ID).Msg("failed to load post")
			continue
		}
		out = append(out, summarize(p, string(src)))
	}
	return out
}

// Render returns the post with id rendered to HTML.
func (b *Blog) Render(id string) (Rendered, error) {
	i, ok := b.byID[id]
	if !ok {
		return Rendered{}, ErrPostNotFound
	}
	p := b.posts[i]
	src, err := fs.ReadFile(b.fsys, p.Filename)
	if err != nil {
		return Rendered{}, fmt.Errorf("read %s: %w", p.Filename, err)
	}
	var buf bytes.Buffer
	if err := b.md.Convert(src, &buf); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", p.Filename, err)
	}
	return Rendered{Summary: summarize(p, string(src)), HTML: buf.String()}, nil
}

func summarize(p Post, markdown string) Summary {
	return Summary{
		Post:      p,
		DateLabel: p.published.Format(labelLayout),
		Preview:   preview(markdown),
	}
}

// preview is the first paragraph, cut to 200 characters, followed by "...".
// Empty posts have no preview.
func preview(markdown string) string {
	markdown = strings.TrimSpace(strings.ReplaceAll(markdown, "\r\n", "\n"))
	if markdown == "" {
		return ""
	}
	para, _, _ := strings.Cut(markdown, "\n\n")
	para = strings.Join(strings.Fields(para), " ")
	if utf8.RuneCountInString(para) > previewRunes {
		para = string([]rune(para)[:previewRunes])
	}
	return para + "..."
}
