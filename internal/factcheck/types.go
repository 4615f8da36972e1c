// Package factcheck is the client side of the FactGuard API.
//
// The service does all of the real work (claim extraction, source retrieval,
// contradiction detection, confidence scoring). This package only knows the
// wire shapes of its two endpoints and how to call them.
package factcheck

import (
	"cmp"
	"slices"
)

// Tag values returned by the extraction endpoint, from least to most plausible.
const (
	TagNearlyImpossible = "几乎不可能"
	TagUnlikely         = "可能性较低"
	TagDoubtful         = "存疑待考"
	TagCommon           = "非常常见"
)

// SourceType classifies where a piece of evidence came from.
type SourceType string

const (
	SourceNews       SourceType = "news"
	SourceAcademic   SourceType = "academic"
	SourceBlog       SourceType = "blog"
	SourceGovernment SourceType = "government"
	SourceOther      SourceType = "other"
)

// Claim is an atomic statement extracted from the user's input.
type Claim struct {
	Text         string `json:"claim"`
	Tag          string `json:"tag"`
	Uncommonness int    `json:"uncommonness,omitempty"`
}

// Source is a single piece of evidence. Bibliographic fields are only
// populated for academic sources.
type Source struct {
	Title             string     `json:"title"`
	Snippet           string     `json:"snippet"`
	Link              string     `json:"link"`
	SourceType        SourceType `json:"source_type"`
	ContributionScore float64    `json:"contribution_score,omitempty"`
	Authors           []string   `json:"authors,omitempty"`
	Year              int        `json:"year,omitempty"`
	Journal           string     `json:"journal,omitempty"`
	Citations         int        `json:"citations,omitempty"`
	Abstract          string     `json:"abstract,omitempty"`
}

// Discrepancy pairs a claim with a source that contradicts it.
type Discrepancy struct {
	Claim       string `json:"claim"`
	Source      Source `json:"source"`
	Explanation string `json:"explanation"`
}

// Results is the verdict returned by /check.
type Results struct {
	IsFact          bool          `json:"is_fact"`
	Confidence      float64       `json:"confidence"`
	Explanation     string        `json:"explanation"`
	Sources         []Source      `json:"sources"`
	AcademicSources []Source      `json:"academic_sources"`
	Discrepancies   []Discrepancy `json:"discrepancies"`
	Claims          []Claim       `json:"claims"`
}

// AllSources merges general and academic sources, highest contribution first.
// Sources with equal scores keep their relative input order.
func (r *Results) AllSources() []Source {
	all := make([]Source, 0, len(r.Sources)+len(r.AcademicSources))
	all = append(all, r.Sources...)
	all = append(all, r.AcademicSources...)
	slices.SortStableFunc(all, func(a, b Source) int {
		return cmp.Compare(b.ContributionScore, a.ContributionScore)
	})
	return all
}

// ConfidencePercent is the confidence rounded to a whole percentage.
func (r *Results) ConfidencePercent() int {
	return Percent(r.Confidence)
}

// Percent converts a [0,1] score into a rounded percentage.
func Percent(score float64) int {
	p := score * 100
	if p < 0 {
		return 0
	}
	return int(p + 0.5)
}

// ExtractRequest is the body of POST /extract_claims. Empty inputs are sent
// as JSON null.
type ExtractRequest struct {
	Text *string `json:"text"`
	URL  *string `json:"url"`
}

// CheckRequest is the body of POST /check.
type CheckRequest struct {
	Text   *string `json:"text"`
	URL    *string `json:"url"`
	Claims []Claim `json:"claims"`
}

type extractResponse struct {
	Claims []Claim `json:"claims"`
}

// NewExtractRequest builds an extraction request from raw form input.
func NewExtractRequest(text, url string) ExtractRequest {
	return ExtractRequest{Text: optional(text), URL: optional(url)}
}

// NewCheckRequest builds a verification request from raw form input and the
// confirmed claim set.
func NewCheckRequest(text, url string, claims []Claim) CheckRequest {
	if claims == nil {
		claims = []Claim{}
	}
	return CheckRequest{Text: optional(text), URL: optional(url), Claims: claims}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
