package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-postmd"
	"github.com/alnah/go-postmd/internal/fileutil"
	"github.com/alnah/go-postmd/internal/hints"
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	input postmd.Input // template, Markdown set per file
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Size       int  // bytes written
	Draft      bool // front matter marks the post as a draft
}

// convertBatch converts files on at most workers goroutines.
// A failed file does not stop the others. Results keep the order of files.
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, params *conversionParams, workers int, now func() time.Time) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(1, workers))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			results[i] = convertFile(ctx, conv, f, params, now)
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams, now func() time.Time) ConversionResult {
	start := now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	input := params.input
	input.Markdown = string(content)
	converted, err := conv.Convert(ctx, input)
	if err != nil {
		return finish(withHint(err))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, converted.HTML); err != nil {
		return finish(fmt.Errorf("%w: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory()))
	}

	result.Size = len(converted.HTML)
	result.Draft = converted.Meta != nil && converted.Meta.Draft
	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Bytes     int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Bytes += r.Size
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		draft := ""
		if r.Draft {
			draft = " [draft]"
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)%s\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond), draft) // #nosec G115 -- sizes are non-negative
		} else {
			fmt.Fprintf(env.Stdout, "Created %s%s\n", r.OutputPath, draft)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", summary.Succeeded, summary.Failed)
		if verbose {
			fmt.Fprintf(env.Stdout, " (%s written)", humanize.Bytes(uint64(summary.Bytes))) // #nosec G115 -- sizes are non-negative
		}
		fmt.Fprintln(env.Stdout)
	}

	return summary.Failed
}
