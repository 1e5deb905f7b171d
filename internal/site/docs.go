package site

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed docs
var docsFS embed.FS

// Doc is one rendered Markdown page.
type Doc struct {
	Slug  string
	Title string
	HTML  template.HTML
}

// URL is where the doc is served.
func (d *Doc) URL() string {
	return "/docs/" + d.Slug + "/"
}

// Docs is the set of pages under /docs, keyed by slug.
type Docs struct {
	bySlug map[string]*Doc
	order  []*Doc
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// EmbeddedDocs renders the docs compiled into the binary.
func EmbeddedDocs() (*Docs, error) {
	sub, err := fs.Sub(docsFS, "docs")
	if err != nil {
		return nil, err
	}
	return LoadDocs(sub)
}

// LoadDocs renders every .md file in fsys. A file's slug is its path
// without the extension, so rules/official-rules.md is served at
// /docs/rules/official-rules/.
func LoadDocs(fsys fs.FS) (*Docs, error) {
	d := &Docs{bySlug: make(map[string]*Doc)}

	err := fs.WalkDir(fsys, ".", func(p string, e fs.DirEntry, err error) error {
		if err != nil || e.IsDir() || path.Ext(p) != ".md" {
			return err
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := markdown.Convert(src, &buf); err != nil {
			return fmt.Errorf("render %s: %w", p, err)
		}

		slug := strings.TrimSuffix(p, ".md")
		doc := &Doc{Slug: slug, Title: title(src, slug), HTML: template.HTML(buf.String())}
		d.bySlug[slug] = doc
		d.order = append(d.order, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load docs: %w", err)
	}

	slices.SortFunc(d.order, func(a, b *Doc) int { return strings.Compare(a.Slug, b.Slug) })
	return d, nil
}

// title is the first level-one heading, or the slug's last element.
func title(src []byte, slug string) string {
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		if t, ok := strings.CutPrefix(sc.Text(), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return path.Base(slug)
}

// Get looks up a doc by slug. Surrounding slashes are ignored.
func (d *Docs) Get(slug string) (*Doc, bool) {
	doc, ok := d.bySlug[strings.Trim(slug, "/")]
	return doc, ok
}

// All returns every doc ordered by slug.
func (d *Docs) All() []*Doc {
	return d.order
}
