package export

import (
	"strconv"
	"strings"

	"github.com/gorewood/folio/internal/story"
)

// headerRuleWidth is the number of '=' characters under the byline.
const headerRuleWidth = 40

// bullet prefixes unordered list items.
const bullet = "• "

// RenderText formats a story as a plain-text transcript.
//
// The header is the title, a "By <author>" line, a rule of 40 '=' and a
// blank line, then the summary and a blank line when one is set. Each block
// follows in order as returned by BlockText. A nil story renders as "".
func RenderText(s *story.Story) string {
	if s == nil {
		return ""
	}

	var builder strings.Builder

	writeTextHeader(&builder, s)
	for _, block := range s.Blocks() {
		builder.WriteString(BlockText(block))
	}

	return builder.String()
}

func writeTextHeader(builder *strings.Builder, s *story.Story) {
	builder.WriteString(s.Title)
	builder.WriteString("\n")
	builder.WriteString("By ")
	builder.WriteString(s.AuthorName)
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("=", headerRuleWidth))
	builder.WriteString("\n\n")

	if s.Summary != "" {
		builder.WriteString(s.Summary)
		builder.WriteString("\n\n")
	}
}

// BlockText returns the transcript contribution of one block, including
// its trailing blank line. Unknown blocks and lists with no items key
// contribute nothing; an explicit empty item list still yields the blank
// line.
func BlockText(block story.Block) string {
	switch b := block.(type) {
	case story.Paragraph:
		return b.Text + "\n\n"
	case story.Heading:
		return "\n## " + b.Text + "\n\n"
	case story.Bold:
		return "**" + b.Text + "**\n\n"
	case story.Separator:
		return "\n---\n\n"
	case story.List:
		return listText(b)
	case story.Image:
		if b.Caption != "" {
			return "[Image: " + b.Caption + "]\n\n"
		}
		return "[Image]\n\n"
	case story.YouTube:
		return "[YouTube: " + b.URL + "]\n\n"
	case story.Link:
		return b.Text + " (" + b.URL + ")\n\n"
	default:
		return ""
	}
}

func listText(list story.List) string {
	if list.Items == nil {
		return ""
	}
	if len(list.Items) == 0 {
		return "\n\n"
	}

	lines := make([]string, len(list.Items))
	for i, item := range list.Items {
		if list.Ordered() {
			lines[i] = strconv.Itoa(i+1) + ". " + item
		} else {
			lines[i] = bullet + item
		}
	}
	return strings.Join(lines, "\n") + "\n\n"
}
