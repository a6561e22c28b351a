package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is an anchored heading found in rendered HTML.
type Heading struct {
	Level int    // 1-6
	ID    string // anchor id
	Text  string // visible text
}

// ExtractHeadings returns the headings between minDepth and maxDepth that
// carry an id, in document order.
func ExtractHeadings(htmlContent string, minDepth, maxDepth int) ([]Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing headings: %w", err)
	}

	var headings []Heading
	doc.Find("h1[id], h2[id], h3[id], h4[id], h5[id], h6[id]").Each(func(_ int, s *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		if err != nil || level < minDepth || level > maxDepth {
			return
		}
		id, _ := s.Attr("id")
		if id == "" {
			return
		}
		headings = append(headings, Heading{
			Level: level,
			ID:    id,
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return headings, nil
}
