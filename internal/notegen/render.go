package notegen

import (
	"fmt"
	"strings"

	"github.com/starford/fansub/internal/models"
)

// Layout holds the fixed parts of a generated note.
type Layout struct {
	Tag             string
	TranslatedTitle string
	HeadingPrefix   string
	Extension       string
}

// DefaultLayout is the layout used when config leaves note settings empty.
func DefaultLayout() Layout {
	return Layout{
		Tag:             "translation",
		TranslatedTitle: "Empty",
		HeadingPrefix:   "Pag",
		Extension:       ".md",
	}
}

// Render produces the note body: a frontmatter header followed by one
// level-2 heading per page, numbered 1..TotalPages.
func (l Layout) Render(d models.Draft) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("tags:\n")
	fmt.Fprintf(&b, "  - %s\n", l.Tag)
	fmt.Fprintf(&b, "title: %s\n", d.Title)
	fmt.Fprintf(&b, "translatedTitle: %s\n", l.TranslatedTitle)
	fmt.Fprintf(&b, "author: %s\n", d.Author)
	b.WriteString("---\n")
	for i := 1; i <= d.TotalPages; i++ {
		fmt.Fprintf(&b, "## %s %d\n\n", l.HeadingPrefix, i)
	}
	return b.String()
}

// ResolvePath joins folder, title and extension. The root folder adds no
// prefix. Nothing is escaped; clashes are left to the document store.
func (l Layout) ResolvePath(d models.Draft) string {
	prefix := ""
	if d.Folder != "" && d.Folder != models.RootFolder {
		prefix = d.Folder + "/"
	}
	return prefix + d.Title + l.Extension
}

// Heading returns the heading line text for page n, without the "## ".
func (l Layout) Heading(n int) string {
	return fmt.Sprintf("%s %d", l.HeadingPrefix, n)
}

// Render renders d with DefaultLayout.
func Render(d models.Draft) string {
	return DefaultLayout().Render(d)
}

// ResolvePath resolves d with DefaultLayout.
func ResolvePath(d models.Draft) string {
	return DefaultLayout().ResolvePath(d)
}
