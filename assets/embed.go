// Package assets embeds the default word list, SQL migrations and blog posts
// so the server runs without any files on disk.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words.txt sql/*.sql posts
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded dictionary fallback, lowercased.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Migrations returns the embedded *.sql migrations rooted at "sql".
func Migrations() fs.FS {
	sub, _ := fs.Sub(FS, "sql")
	return sub
}

// Posts returns the embedded default blog posts directory.
func Posts() fs.FS {
	sub, _ := fs.Sub(FS, "posts")
	return sub
}
