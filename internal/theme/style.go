package theme

import "strings"

// Element names a Markdown node type that the themed renderer overrides.
type Element int

const (
	ElementCode Element = iota
	ElementBlockquote
	ElementLink
	ElementOrderedList
	ElementRule
	ElementHeading2
	ElementHeading3
	ElementHeading4
	ElementImage
	ElementStrong
	ElementUnorderedList

	elementCount
)

var elementNames = [elementCount]string{
	ElementCode:          "code",
	ElementBlockquote:    "blockquote",
	ElementLink:          "a",
	ElementOrderedList:   "ol",
	ElementRule:          "hr",
	ElementHeading2:      "h2",
	ElementHeading3:      "h3",
	ElementHeading4:      "h4",
	ElementImage:         "img",
	ElementStrong:        "strong",
	ElementUnorderedList: "ul",
}

// String returns the HTML tag name of the element.
func (e Element) String() string {
	if e < 0 || e >= elementCount {
		return ""
	}
	return elementNames[e]
}

// Elements returns every overridden element in declaration order.
func Elements() []Element {
	out := make([]Element, elementCount)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// Declaration is a single CSS property.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered list of CSS declarations.
type Style []Declaration

// String serializes the style for an HTML style attribute,
// e.g. "padding:1rem;border-left:4px solid #8491D9".
func (s Style) String() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
	}
	return b.String()
}

// Value returns the value of property, or "" if the style does not set it.
func (s Style) Value(property string) string {
	for _, d := range s {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}
