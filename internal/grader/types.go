// Package grader provides the core types shared by the landing page clarity grader.
package grader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxScore is the top of the scale every dimension is graded on.
const MaxScore = 5

// ErrEmptyInput is returned when the active input is blank after trimming.
var ErrEmptyInput = errors.New("input is empty")

// Mode is the kind of input being submitted.
type Mode string

const (
	ModeURL  Mode = "url"  // A page address the server fetches itself
	ModeText Mode = "text" // Literal landing page copy
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeURL {
		return ModeText
	}
	return ModeURL
}

// Dimension is one of the named aspects a landing page is scored on.
type Dimension string

const (
	Clarity         Dimension = "clarity"
	Focus           Dimension = "focus"
	Differentiation Dimension = "differentiation"
	CTAStrength     Dimension = "cta_strength"
)

// Dimensions lists every score dimension in display order.
var Dimensions = []Dimension{Clarity, Focus, Differentiation, CTAStrength}

var titleCaser = cases.Title(language.English)

// Label returns the human-readable name, e.g. "cta_strength" becomes "Cta Strength".
func (d Dimension) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(d), "_", " "))
}

// AnalyzeRequest is the body of an analysis request. Exactly one field is set.
type AnalyzeRequest struct {
	URL     string `json:"url,omitempty"`
	RawText string `json:"raw_text,omitempty"`
}

// NewRequest builds a request for the given mode from untrimmed user input.
func NewRequest(mode Mode, input string) (AnalyzeRequest, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return AnalyzeRequest{}, ErrEmptyInput
	}

	switch mode {
	case ModeURL:
		return AnalyzeRequest{URL: value}, nil
	case ModeText:
		return AnalyzeRequest{RawText: value}, nil
	default:
		return AnalyzeRequest{}, fmt.Errorf("unknown input mode: %q", mode)
	}
}

// Mode reports which kind of input the request carries.
func (r AnalyzeRequest) Mode() Mode {
	if r.URL != "" {
		return ModeURL
	}
	return ModeText
}

// Scores maps each dimension to its grade. Values are expected in [0, MaxScore]
// but are not clamped.
type Scores map[Dimension]int

// AnalyzeResponse is the scorecard returned by the analysis service.
type AnalyzeResponse struct {
	WhatItIs   string `json:"what_it_is"`
	WhoItIsFor string `json:"who_it_is_for"`
	ValueProp  string `json:"value_prop"`
	Scores     Scores `json:"scores"`
}

// Validate checks that every score dimension is present.
func (r *AnalyzeResponse) Validate() error {
	var missing []string
	for _, d := range Dimensions {
		if _, ok := r.Scores[d]; !ok {
			missing = append(missing, string(d))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing scores: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Analyzer grades a piece of landing page content.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}
