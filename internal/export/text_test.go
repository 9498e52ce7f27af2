package export

import (
	"strings"
	"testing"

	"github.com/gorewood/folio/internal/story"
)

// testStory creates a story that uses every block kind.
func testStory() *story.Story {
	return &story.Story{
		Title:      "Field Notes",
		AuthorName: "Sam Reporter",
		Summary:    "A short dispatch.",
		Content: &story.Content{Blocks: []story.Block{
			story.Paragraph{Text: "First paragraph."},
			story.Heading{Text: "Section"},
			story.Bold{Text: "Loud"},
			story.Separator{},
			story.List{Items: []string{"a", "b"}, ListType: story.ListOrdered},
			story.Image{Caption: "A harbor", URL: "https://img.example/1.png"},
			story.YouTube{URL: "https://youtu.be/xyz"},
			story.Link{Text: "Source", URL: "https://example.com"},
			story.Unknown{Type: "poll"},
		}},
	}
}

// minimalStory creates a story with only the required fields.
func minimalStory() *story.Story {
	return &story.Story{Title: "Bare", AuthorName: "Anon"}
}

func TestRenderText_Full(t *testing.T) {
	want := "Field Notes\n" +
		"By Sam Reporter\n" +
		strings.Repeat("=", 40) + "\n\n" +
		"A short dispatch.\n\n" +
		"First paragraph.\n\n" +
		"\n## Section\n\n" +
		"**Loud**\n\n" +
		"\n---\n\n" +
		"1. a\n2. b\n\n" +
		"[Image: A harbor]\n\n" +
		"[YouTube: https://youtu.be/xyz]\n\n" +
		"Source (https://example.com)\n\n"

	if got := RenderText(testStory()); got != want {
		t.Errorf("RenderText() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderText_Header(t *testing.T) {
	stories := []*story.Story{
		testStory(),
		minimalStory(),
		{Title: "", AuthorName: ""},
		{Title: "Ünïcode ✓", AuthorName: "Zoë", Content: &story.Content{}},
	}

	for _, s := range stories {
		got := RenderText(s)
		prefix := s.Title + "\n" + "By " + s.AuthorName + "\n" + strings.Repeat("=", 40) + "\n"
		if !strings.HasPrefix(got, prefix) {
			t.Errorf("RenderText(%q) does not start with header:\n%q", s.Title, got)
		}
		if strings.HasPrefix(got[len(prefix):], "=") {
			t.Errorf("RenderText(%q) rule is longer than 40 characters", s.Title)
		}
	}
}

func TestRenderText_NoSummary(t *testing.T) {
	want := "Bare\nBy Anon\n" + strings.Repeat("=", 40) + "\n\n"
	if got := RenderText(minimalStory()); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRenderText_PreservesOrder(t *testing.T) {
	s := minimalStory()
	s.Content = &story.Content{Blocks: []story.Block{
		story.Paragraph{Text: "one"},
		story.Heading{Text: "two"},
		story.Paragraph{Text: "three"},
		story.Link{Text: "four", URL: "u"},
	}}

	got := RenderText(s)
	last := -1
	for _, marker := range []string{"one", "two", "three", "four"} {
		idx := strings.Index(got, marker)
		if idx <= last {
			t.Fatalf("%q found at %d, expected after %d in:\n%s", marker, idx, last, got)
		}
		last = idx
	}
}

func TestRenderText_Idempotent(t *testing.T) {
	s := testStory()
	first := RenderText(s)
	if second := RenderText(s); first != second {
		t.Error("RenderText() not idempotent")
	}
	if !equalStories(s, testStory()) {
		t.Error("RenderText() mutated the story")
	}
}

func TestBlockText(t *testing.T) {
	tests := []struct {
		name  string
		block story.Block
		want  string
	}{
		{name: "paragraph", block: story.Paragraph{Text: "p"}, want: "p\n\n"},
		{name: "empty paragraph", block: story.Paragraph{}, want: "\n\n"},
		{name: "heading", block: story.Heading{Text: "h"}, want: "\n## h\n\n"},
		{name: "bold", block: story.Bold{Text: "b"}, want: "**b**\n\n"},
		{name: "separator", block: story.Separator{}, want: "\n---\n\n"},
		{name: "ordered list", block: story.List{Items: []string{"a", "b"}, ListType: story.ListOrdered}, want: "1. a\n2. b\n\n"},
		{name: "unordered list", block: story.List{Items: []string{"a", "b"}, ListType: story.ListUnordered}, want: "• a\n• b\n\n"},
		{name: "list without type", block: story.List{Items: []string{"a"}}, want: "• a\n\n"},
		{name: "list without items", block: story.List{ListType: story.ListOrdered}, want: ""},
		{name: "list with empty items", block: story.List{Items: []string{}, ListType: story.ListOrdered}, want: "\n\n"},
		{name: "image with caption", block: story.Image{Caption: "c"}, want: "[Image: c]\n\n"},
		{name: "image without caption", block: story.Image{URL: "u"}, want: "[Image]\n\n"},
		{name: "youtube", block: story.YouTube{URL: "https://y"}, want: "[YouTube: https://y]\n\n"},
		{name: "link", block: story.Link{Text: "t", URL: "u"}, want: "t (u)\n\n"},
		{name: "unknown", block: story.Unknown{Type: "poll"}, want: ""},
		{name: "nil", block: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlockText(tt.block); got != tt.want {
				t.Errorf("BlockText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlockText_ListLines(t *testing.T) {
	ordered := BlockText(story.List{Items: []string{"a", "b"}, ListType: story.ListOrdered})
	lines := strings.Split(strings.TrimSpace(ordered), "\n")
	if len(lines) != 2 || lines[0] != "1. a" || lines[1] != "2. b" {
		t.Errorf("ordered lines = %q", lines)
	}

	unordered := BlockText(story.List{Items: []string{"a", "b"}, ListType: story.ListUnordered})
	lines = strings.Split(strings.TrimSpace(unordered), "\n")
	if len(lines) != 2 {
		t.Fatalf("unordered lines = %q", lines)
	}
	first := strings.TrimSuffix(lines[0], "a")
	second := strings.TrimSuffix(lines[1], "b")
	if first != second || first == "" {
		t.Errorf("unordered prefixes differ: %q vs %q", first, second)
	}
}

func equalStories(a, b *story.Story) bool {
	ja, errA := a.ToJSON()
	jb, errB := b.ToJSON()
	return errA == nil && errB == nil && string(ja) == string(jb)
}

func TestRenderText_EmptyListKeepsSpacing(t *testing.T) {
	s, err := story.FromJSON([]byte(`{"title": "T", "author_name": "A", "content": {"blocks": [
		{"type": "paragraph", "text": "x"},
		{"type": "list", "items": [], "listType": "ordered"},
		{"type": "list", "listType": "ordered"},
		{"type": "paragraph", "text": "y"}]}}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	want := "T\nBy A\n" + strings.Repeat("=", 40) + "\n\nx\n\n\n\ny\n\n"
	if got := RenderText(s); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRenderText_NilStory(t *testing.T) {
	if got := RenderText(nil); got != "" {
		t.Errorf("RenderText(nil) = %q, want empty", got)
	}
}
