// Package slug derives filesystem- and URL-safe names from titles.
package slug

import "strings"

// MaxLength is the longest slug Make returns.
const MaxLength = 50

// Make lowercases text, collapses every run of characters outside
// [a-z0-9] into a single '-', trims leading and trailing '-' and cuts the
// result to MaxLength. The output is always ASCII and matches ^[a-z0-9-]*$
// with no leading or trailing '-'.
func Make(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	pendingDash := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteByte(c)
			continue
		}
		pendingDash = true
	}

	out := b.String()
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// Filename returns "<slug>.<ext>", falling back to "story" when the title
// has no usable characters.
func Filename(title, ext string) string {
	name := Make(title)
	if name == "" {
		name = "story"
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
