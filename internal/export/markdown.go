package export

import (
	"fmt"
	"strings"

	"github.com/gorewood/folio/internal/slug"
	"github.com/gorewood/folio/internal/story"
)

// MarkdownSchema identifies the frontmatter layout of exported markdown.
const MarkdownSchema = "folio.story/v1"

// FormatMarkdown formats a story as a markdown document.
// With frontmatter set, a YAML header carrying the schema, slug, author and
// block count comes first.
func FormatMarkdown(s *story.Story, frontmatter bool) string {
	var builder strings.Builder

	if frontmatter {
		writeFrontmatter(&builder, s)
	}
	writeMarkdownHeader(&builder, s)
	for _, block := range s.Blocks() {
		builder.WriteString(blockMarkdown(block))
	}

	return builder.String()
}

// writeFrontmatter writes the YAML frontmatter section.
func writeFrontmatter(builder *strings.Builder, s *story.Story) {
	builder.WriteString("---\n")
	fmt.Fprintf(builder, "schema: %s\n", MarkdownSchema)
	fmt.Fprintf(builder, "slug: %s\n", slug.Make(s.Title))
	fmt.Fprintf(builder, "author: %q\n", s.AuthorName)
	fmt.Fprintf(builder, "blocks: %d\n", len(s.Blocks()))
	builder.WriteString("---\n\n")
}

func writeMarkdownHeader(builder *strings.Builder, s *story.Story) {
	fmt.Fprintf(builder, "# %s\n\n", s.Title)
	fmt.Fprintf(builder, "*By %s*\n\n", s.AuthorName)
	if s.Summary != "" {
		fmt.Fprintf(builder, "> %s\n\n", s.Summary)
	}
}

// blockMarkdown mirrors BlockText but links media instead of describing it.
func blockMarkdown(block story.Block) string {
	switch b := block.(type) {
	case story.Separator:
		return "---\n\n"
	case story.List:
		if len(b.Items) == 0 {
			return ""
		}
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			if b.Ordered() {
				lines[i] = fmt.Sprintf("%d. %s", i+1, item)
			} else {
				lines[i] = "- " + item
			}
		}
		return strings.Join(lines, "\n") + "\n\n"
	case story.Image:
		if b.URL == "" {
			return BlockText(b)
		}
		return fmt.Sprintf("![%s](%s)\n\n", b.Caption, b.URL)
	case story.YouTube:
		return fmt.Sprintf("[YouTube](%s)\n\n", b.URL)
	case story.Link:
		return fmt.Sprintf("[%s](%s)\n\n", b.Text, b.URL)
	default:
		return strings.TrimPrefix(BlockText(b), "\n")
	}
}
