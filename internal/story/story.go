// Package story provides the document model consumed by the exporters:
// a Story with a title, byline, optional summary and an ordered list of
// content blocks.
package story

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies a content block variant.
type Kind string

// Block kinds understood by the renderers.
const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindBold      Kind = "bold"
	KindSeparator Kind = "separator"
	KindList      Kind = "list"
	KindImage     Kind = "image"
	KindYouTube   Kind = "youtube"
	KindLink      Kind = "link"
)

// ListType selects numbered or bulleted list items.
type ListType string

// List types. Anything other than ListOrdered renders as bullets.
const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// Story is an immutable document handed to the exporters.
// Summary and Content are optional; the zero value means "omit".
type Story struct {
	Title      string   `json:"title"`
	AuthorName string   `json:"author_name"`
	Summary    string   `json:"summary,omitempty"`
	Content    *Content `json:"content,omitempty"`
}

// Content holds the ordered block list. Order is reading order.
type Content struct {
	Blocks []Block
}

// Blocks returns the story's blocks, or nil when the story has no content.
func (s *Story) Blocks() []Block {
	if s == nil || s.Content == nil {
		return nil
	}
	return s.Content.Blocks
}

// Block is one discrete unit of content. The set of implementations is
// closed; Unknown carries any type this version does not understand.
type Block interface {
	Kind() Kind
	block()
}

// Paragraph is body copy.
type Paragraph struct{ Text string }

// Heading is a section heading.
type Heading struct{ Text string }

// Bold is a single emphasized run.
type Bold struct{ Text string }

// Separator is a horizontal divider.
type Separator struct{}

// List is a numbered or bulleted list.
type List struct {
	Items    []string
	ListType ListType
}

// Ordered reports whether items are numbered.
func (l List) Ordered() bool { return l.ListType == ListOrdered }

// Image is a caption-only placeholder; the raster itself is never embedded.
type Image struct {
	Caption string
	URL     string
}

// YouTube is an embedded video reference.
type YouTube struct{ URL string }

// Link is an inline hyperlink.
type Link struct {
	Text string
	URL  string
}

// Unknown preserves a block whose type is not recognized, or a block of a
// known type whose fields could not be decoded. Err is set in the second
// case and Type still names the declared type.
type Unknown struct {
	Type string
	Raw  json.RawMessage
	Err  error
}

func (Paragraph) Kind() Kind { return KindParagraph }
func (Heading) Kind() Kind   { return KindHeading }
func (Bold) Kind() Kind      { return KindBold }
func (Separator) Kind() Kind { return KindSeparator }
func (List) Kind() Kind      { return KindList }
func (Image) Kind() Kind     { return KindImage }
func (YouTube) Kind() Kind   { return KindYouTube }
func (Link) Kind() Kind      { return KindLink }
func (u Unknown) Kind() Kind { return Kind(u.Type) }

func (Paragraph) block() {}
func (Heading) block()   {}
func (Bold) block()      {}
func (Separator) block() {}
func (List) block()      {}
func (Image) block()     {}
func (YouTube) block()   {}
func (Link) block()      {}
func (Unknown) block()   {}

// wireBlock is the flat JSON shape shared by every block variant.
type wireBlock struct {
	Type     string   `json:"type"`
	Text     string   `json:"text,omitempty"`
	Items    []string `json:"items,omitempty"`
	ListType ListType `json:"listType,omitempty"`
	Caption  string   `json:"caption,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// UnmarshalJSON decodes the {"blocks": [...]} envelope.
// Blocks that cannot be decoded into a known variant become Unknown.
func (c *Content) UnmarshalJSON(data []byte) error {
	var wire struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("parsing content: %w", err)
	}

	c.Blocks = make([]Block, 0, len(wire.Blocks))
	for _, raw := range wire.Blocks {
		c.Blocks = append(c.Blocks, decodeBlock(raw))
	}
	return nil
}

// MarshalJSON encodes the blocks back into the wire envelope.
func (c Content) MarshalJSON() ([]byte, error) {
	blocks := make([]json.RawMessage, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		raw, err := encodeBlock(b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, raw)
	}
	return json.Marshal(struct {
		Blocks []json.RawMessage `json:"blocks"`
	}{Blocks: blocks})
}

func decodeBlock(raw json.RawMessage) Block {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Unknown{Raw: cloneRaw(raw), Err: fmt.Errorf("malformed block: %w", err)}
	}

	var w wireBlock
	if err := json.Unmarshal(raw, &w); err != nil {
		return Unknown{
			Type: head.Type,
			Raw:  cloneRaw(raw),
			Err:  fmt.Errorf("malformed %s block: %w", head.Type, err),
		}
	}

	switch Kind(w.Type) {
	case KindParagraph:
		return Paragraph{Text: w.Text}
	case KindHeading:
		return Heading{Text: w.Text}
	case KindBold:
		return Bold{Text: w.Text}
	case KindSeparator:
		return Separator{}
	case KindList:
		return List{Items: w.Items, ListType: w.ListType}
	case KindImage:
		return Image{Caption: w.Caption, URL: w.URL}
	case KindYouTube:
		return YouTube{URL: w.URL}
	case KindLink:
		return Link{Text: w.Text, URL: w.URL}
	default:
		return Unknown{Type: w.Type, Raw: cloneRaw(raw)}
	}
}

func encodeBlock(b Block) (json.RawMessage, error) {
	var w wireBlock
	switch v := b.(type) {
	case Paragraph:
		w = wireBlock{Type: string(KindParagraph), Text: v.Text}
	case Heading:
		w = wireBlock{Type: string(KindHeading), Text: v.Text}
	case Bold:
		w = wireBlock{Type: string(KindBold), Text: v.Text}
	case Separator:
		w = wireBlock{Type: string(KindSeparator)}
	case List:
		if v.Items != nil && len(v.Items) == 0 {
			// Keep "items": [] distinct from an absent key.
			return json.Marshal(struct {
				Type     string   `json:"type"`
				Items    []string `json:"items"`
				ListType ListType `json:"listType,omitempty"`
			}{Type: string(KindList), Items: v.Items, ListType: v.ListType})
		}
		w = wireBlock{Type: string(KindList), Items: v.Items, ListType: v.ListType}
	case Image:
		w = wireBlock{Type: string(KindImage), Caption: v.Caption, URL: v.URL}
	case YouTube:
		w = wireBlock{Type: string(KindYouTube), URL: v.URL}
	case Link:
		w = wireBlock{Type: string(KindLink), Text: v.Text, URL: v.URL}
	case Unknown:
		if len(v.Raw) > 0 {
			return v.Raw, nil
		}
		w = wireBlock{Type: v.Type}
	default:
		return nil, fmt.Errorf("unsupported block type %T", b)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("serializing %s block: %w", w.Type, err)
	}
	return data, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), bytes.TrimSpace(raw)...)
}

// MalformedBlocks joins the decode errors of blocks that were dropped
// because their fields did not match their declared type. It returns nil
// when every block decoded.
func (s *Story) MalformedBlocks() error {
	var errs []error
	for i, b := range s.Blocks() {
		if u, ok := b.(Unknown); ok && u.Err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i, u.Err))
		}
	}
	return errors.Join(errs...)
}

// ToJSON serializes the story to indented JSON.
func (s *Story) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing story to JSON: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a story from JSON.
func FromJSON(data []byte) (*Story, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty JSON data")
	}

	var s Story
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing story JSON: %w", err)
	}

	return &s, nil
}
