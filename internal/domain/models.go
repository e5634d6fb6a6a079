package domain

import "strings"

// Kind discriminates the three gallery item types
type Kind string

const (
	KindEmoji Kind = "emoji"
	KindIcon  Kind = "icon"
	KindApp   Kind = "app"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindEmoji, KindIcon, KindApp:
		return true
	}
	return false
}

// Class is the coarse grouping used by the collection homogeneity rule:
// apps never mix with emoji/icons, while emoji and icons may mix freely
type Class int

const (
	ClassNone Class = iota
	ClassApp
	ClassMedia
)

// Class returns the coarse class for a kind
func (k Kind) Class() Class {
	switch k {
	case KindApp:
		return ClassApp
	case KindEmoji, KindIcon:
		return ClassMedia
	}
	return ClassNone
}

// Emoji style keys
const (
	EmojiStyle3D           = "3D"
	EmojiStyleColor        = "Color"
	EmojiStyleFlat         = "Flat"
	EmojiStyleHighContrast = "High Contrast"
)

// Icon style keys
const (
	IconStyleFilled  = "Filled"
	IconStyleRegular = "Regular"
	IconStyleColor   = "Color"
)

// Item is a selectable/collectable gallery entity. Kind is the discriminant;
// everything past Style is kind-specific metadata that the selection and
// collections code treats as opaque.
type Item struct {
	Kind  Kind   `json:"itemType"`
	Name  string `json:"name"`
	Style string `json:"style,omitempty"` // empty for apps

	// Emoji metadata
	Glyph   string `json:"glyph,omitempty"`
	Unicode string `json:"unicode,omitempty"`
	Group   string `json:"group,omitempty"`

	// Icon metadata: style key -> asset filename
	Files map[string]string `json:"files,omitempty"`

	// App metadata
	Link  string   `json:"link,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Price string   `json:"price,omitempty"`
}

// Identity returns the stable composite key for an item. It depends only on
// (kind, name, style) so two fetches of the same entity compare equal no
// matter which gallery produced them or what incidental metadata they carry.
func (i Item) Identity() string {
	if i.Style == "" {
		return string(i.Kind) + "/" + i.Name
	}
	return string(i.Kind) + "/" + i.Name + "/" + i.Style
}

// WellFormed reports whether an item carries the minimum fields required to
// be stored in a collection: a name and a recognizable kind tag
func (i Item) WellFormed() bool {
	return strings.TrimSpace(i.Name) != "" && i.Kind.Valid()
}

// CollectionType describes what a collection currently holds
type CollectionType string

const (
	CollectionEmpty CollectionType = "empty"
	CollectionApp   CollectionType = "app"
	CollectionMedia CollectionType = "media"
)
