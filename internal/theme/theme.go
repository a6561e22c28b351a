// Package theme defines the light and dark style mappings applied to
// rendered Markdown elements.
//
// A Theme pairs a Styles mapping with the chroma style used for code blocks.
// Dark is defined directly; Light is derived from Dark and overrides only the
// blockquote and horizontal rule entries. Both are values of the same Styles
// struct, so they always cover the same set of elements.
package theme

// Mode identifies a color scheme. The zero value is ModeDark.
type Mode int

const (
	ModeDark Mode = iota
	ModeLight
)

// String returns the mode name as it appears in configuration.
func (m Mode) String() string {
	if m == ModeLight {
		return "light"
	}
	return "dark"
}

// ParseMode maps a theme value to a Mode.
// Only the exact value "light" selects ModeLight. Everything else, including
// the empty string seen before a client has resolved its preference, selects
// ModeDark.
func ParseMode(value string) Mode {
	if value == "light" {
		return ModeLight
	}
	return ModeDark
}

// Theme is a complete rendering theme.
type Theme struct {
	Mode      Mode
	Styles    Styles
	CodeStyle string // chroma style name for highlighted code blocks
}

// Styles maps each styled element to its inline CSS.
type Styles struct {
	Blockquote    Style
	ExternalLink  Style
	OrderedList   Style
	UnorderedList Style
	Rule          Style
	Strong        Style
	Image         Style
}

// For returns the style applied to element e.
// Elements rendered without inline styles (code, in-page links, headings)
// return an empty Style.
func (s Styles) For(e Element) Style {
	switch e {
	case ElementBlockquote:
		return s.Blockquote
	case ElementLink:
		return s.ExternalLink
	case ElementOrderedList:
		return s.OrderedList
	case ElementUnorderedList:
		return s.UnorderedList
	case ElementRule:
		return s.Rule
	case ElementStrong:
		return s.Strong
	case ElementImage:
		return s.Image
	}
	return nil
}

const accent = "#8491D9"

// Dark returns the dark theme.
func Dark() Theme {
	return Theme{
		Mode: ModeDark,
		Styles: Styles{
			Blockquote: Style{
				{"background", "#282C34"},
				{"padding", "1rem"},
				{"border-left", "4px solid " + accent},
			},
			ExternalLink: Style{
				{"color", accent},
				{"font-weight", "700"},
				{"word-break", "break-word"},
				{"text-decoration", "underline"},
			},
			OrderedList: Style{
				{"list-style", "decimal"},
				{"margin-left", "1rem"},
			},
			UnorderedList: Style{
				{"list-style", "disc"},
				{"margin-left", "2rem"},
				{"padding-bottom", "0.5rem"},
			},
			Rule: Style{
				{"color", "#EAEAEA"},
			},
			Strong: Style{
				{"font-family", "Monaco, Spoqa Han Sans Neo, Noto Sans KR, sans-serif"},
				{"font-weight", "600"},
				{"vertical-align", "0.5px"},
				{"font-size", "1rem"},
			},
			Image: Style{
				{"margin", "0 auto"},
				{"cursor", "pointer"},
			},
		},
		CodeStyle: "onedark",
	}
}

// Light returns the light theme.
func Light() Theme {
	t := Dark()
	t.Mode = ModeLight
	t.Styles.Blockquote = Style{
		{"background", "#F8F9FA"},
		{"padding", "1rem"},
		{"margin", "1rem 0"},
		{"border-left", "4px solid " + accent},
	}
	t.Styles.Rule = Style{
		{"color", "rgba(41, 69, 105, 0.1)"},
	}
	t.CodeStyle = "github"
	return t
}

// Select returns the theme for mode m.
func Select(m Mode) Theme {
	if m == ModeLight {
		return Light()
	}
	return Dark()
}
