package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// inlineStylePattern accepts "prop:value;prop:value" declarations whose
	// functions take numeric arguments only, so url() and expression() fail.
	inlineStylePattern = regexp.MustCompile(`^(?:[a-zA-Z-]+:(?:[a-zA-Z0-9 #.,%_-]|[a-z]+\([0-9., %]*\))*;?)+$`)

	openSourcePattern = regexp.MustCompile(`^window\.open\(this\.src\)$`)
	anchorIDPattern   = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)
	classPattern      = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
	targetPattern     = regexp.MustCompile(`^_blank$`)

	// externalRelPattern matches the rel written on new-tab links. An allowed
	// rel already carrying both values passes through bluemonday unchanged.
	externalRelPattern = regexp.MustCompile(`^noopener noreferrer$`)
)

// Sanitizer strips unsafe markup from rendered HTML while keeping the
// attributes the themed renderer emits.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("style").Matching(inlineStylePattern).OnElements(
		"blockquote", "a", "ol", "ul", "hr", "strong", "img", "pre", "span", "div",
	)
	p.AllowAttrs("id").Matching(anchorIDPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("onclick", "onkeydown").Matching(openSourcePattern).OnElements("img")
	p.AllowAttrs("target").Matching(targetPattern).OnElements("a")
	p.AllowAttrs("rel").Matching(externalRelPattern).OnElements("a")
	p.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span", "nav", "div", "p")
	p.AllowAttrs("tabindex").Matching(bluemonday.Integer).OnElements("pre")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.RequireNoFollowOnLinks(false)
	p.RequireNoReferrerOnFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize returns htmlContent with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
