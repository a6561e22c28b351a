package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"

	"github.com/alnah/go-postmd/internal/yamlutil"
)

// ErrFrontMatter indicates the front matter block could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter holds the post metadata recognized in a front matter block.
// Unknown keys are ignored.
type FrontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Description string   `yaml:"description" toml:"description"`
	Date        string   `yaml:"date" toml:"date"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Theme       string   `yaml:"theme" toml:"theme"`
	Draft       bool     `yaml:"draft" toml:"draft"`
}

// frontMatterFormats lists the accepted delimiters: YAML between "---"
// lines and TOML between "+++" lines.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yamlutil.UnmarshalOptional),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// SplitFrontMatter separates a leading front matter block from content.
// It returns nil metadata and the content unchanged when there is no block.
func SplitFrontMatter(content string) (*FrontMatter, string, error) {
	if !hasFrontMatter(content) {
		return nil, content, nil
	}

	var meta FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(content), &meta, frontMatterFormats...)
	if errors.Is(err, frontmatter.ErrNotFound) {
		// Opening delimiter without a closing one: a leading thematic break.
		return nil, content, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return &meta, string(body), nil
}

// hasFrontMatter reports whether content opens with a front matter delimiter
// line.
func hasFrontMatter(content string) bool {
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimRight(first, " \t\r")
	return first == "---" || first == "+++"
}
