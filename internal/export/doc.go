// Package export renders stories into downloadable formats.
//
// # Formats
//
//   - Text: a plain transcript, see RenderText
//   - PDF: paginated A4 pages drawn through a Backend, see RenderPDF
//   - Markdown: the same content with media as links, see FormatMarkdown
//   - JSON: the normalized story document, see RenderJSON
//
// # Text Export
//
// The transcript starts with a fixed header:
//
//	Field Notes
//	By Sam Reporter
//	========================================
//
//	A short dispatch.
//
// followed by one contribution per block, in order:
//
//	paragraph   text
//	heading     ## text (after a blank line)
//	bold        **text**
//	separator   ---
//	list        1. item / • item
//	image       [Image: caption]
//	youtube     [YouTube: url]
//	link        text (url)
//
// # PDF Export
//
// PDF pages are A4 portrait with 20 mm margins. The title is bold 24 pt,
// the byline gray 12 pt, then a thin rule and the italic summary. Blocks
// are drawn at 11 pt (headings bold 14 pt) using the transcript text of the
// block, trimmed. A new page starts before any block whose cursor position
// is below 270 mm; a block is never split by that check.
//
// Rendering is deterministic: the creation date comes from Options and
// catalogs are written in sorted order.
//
// # File Naming
//
// Outputs are named <slug>.<ext>, see package slug.
package export
