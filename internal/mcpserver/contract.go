package mcpserver

import (
	"fmt"
	"strings"

	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/notegen"
)

// NoteTemplateURI is the resource describing generated notes.
const NoteTemplateURI = "fansub://note-template"

// NoteTemplate describes the notes create_translation_note produces for
// layout, with a rendered three-page example.
func NoteTemplate(layout notegen.Layout) string {
	example := models.Draft{Title: "Ch1", Author: "Ana", TotalPages: 3, Folder: "Manga"}

	var b strings.Builder
	b.WriteString("# Translation Note Template\n\n")
	b.WriteString("Notes are generated, not written by hand. Call `create_translation_note` with:\n\n")
	b.WriteString("- `title` (required): becomes the file name and the `title` field.\n")
	b.WriteString("- `author`: free text, may be empty.\n")
	b.WriteString("- `total_pages` (required): integer greater than 0.\n")
	b.WriteString("- `folder`: one of the paths returned by `list_folders`; defaults to the last used folder.\n\n")
	b.WriteString("## Rules\n\n")
	fmt.Fprintf(&b, "1. The note is stored at `<folder>/<title>%s`; `%s` means the vault root.\n", layout.Extension, models.RootFolder)
	b.WriteString("2. Existing notes are never overwritten; a clash is reported as an error.\n")
	fmt.Fprintf(&b, "3. One `## %s <n>` heading is emitted per page, numbered from 1 without gaps.\n", layout.HeadingPrefix)
	fmt.Fprintf(&b, "4. Frontmatter always carries the `%s` tag and `translatedTitle: %s`.\n\n", layout.Tag, layout.TranslatedTitle)
	fmt.Fprintf(&b, "## Example\n\n`%s`\n\n", layout.ResolvePath(example))
	b.WriteString("```markdown\n")
	b.WriteString(layout.Render(example))
	b.WriteString("```\n")
	return b.String()
}
