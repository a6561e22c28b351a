package postmd

import (
	"errors"

	"github.com/alnah/go-postmd/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown   = errors.New("markdown content cannot be empty")
	ErrHTMLConversion  = pipeline.ErrHTMLConversion
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Input errors.
	ErrInvalidImageBaseURL = pipeline.ErrInvalidBaseURL
	ErrFrontMatter         = pipeline.ErrFrontMatter

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
