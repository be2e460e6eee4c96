package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidOutline is returned when a response parses but lacks the
// required course fields.
var ErrInvalidOutline = errors.New("generated course is missing required fields")

// ParseError is the terminal parsing failure. It carries the original
// decode error and a bounded preview of the offending text, never the
// full response.
type ParseError struct {
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model response: %v (preview: %q)", e.Err, e.Preview)
}

func (e *ParseError) Unwrap() error { return e.Err }

const previewLimit = 200

func preview(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return s
}

// repairStage is a named, pure string transformation. Stages are composed
// in order; each consumes the output of the previous one.
type repairStage struct {
	name  string
	apply func(string) string
}

var normalizeStages = []repairStage{
	{"strip_code_fence", stripCodeFence},
	{"extract_object", extractObject},
	{"strip_trailing_commas", stripTrailingCommas},
	{"insert_missing_commas", insertMissingCommas},
}

var aggressiveStages = []repairStage{
	{"widen_object_bounds", widenObjectBounds},
	{"insert_missing_commas_aggressive", insertMissingCommasAggressive},
	{"strip_trailing_commas", stripTrailingCommas},
}

func applyStages(s string, stages []repairStage) string {
	for _, stage := range stages {
		s = stage.apply(s)
	}
	return s
}

// stripCodeFence removes a leading markdown fence (with optional language
// tag) and a trailing closing fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	start := 3
	if idx := strings.Index(s[start:], "\n"); idx != -1 {
		start += idx + 1
	}
	if end := strings.Index(s[start:], "```"); end != -1 {
		return strings.TrimSpace(s[start : start+end])
	}
	return strings.TrimSpace(s[start:])
}

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractObject keeps the greedy {...} substring, discarding any
// surrounding prose. The string is left untouched when no braces exist.
func extractObject(s string) string {
	if m := objectPattern.FindString(s); m != "" {
		return m
	}
	return s
}

// widenObjectBounds re-locates the object using the first { and the last }
// so that braces embedded in surrounding prose are tolerated.
func widenObjectBounds(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		return s[start : end+1]
	}
	return s
}

var trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)

func stripTrailingCommas(s string) string {
	return trailingCommaPattern.ReplaceAllString(s, "$1")
}

// Adjacent JSON values separated only by whitespace and a newline are the
// generator's most frequent malformation.
var (
	strAfterStrPattern = regexp.MustCompile(`"(\s*\n\s*)"`)
	objAfterObjPattern = regexp.MustCompile(`}(\s*\n\s*){`)
	arrAfterArrPattern = regexp.MustCompile(`](\s*\n\s*)\[`)
	objAfterStrPattern = regexp.MustCompile(`"(\s*\n\s*){`)
	arrAfterStrPattern = regexp.MustCompile(`"(\s*\n\s*)\[`)
)

func insertMissingCommas(s string) string {
	s = strAfterStrPattern.ReplaceAllString(s, `",$1"`)
	s = objAfterObjPattern.ReplaceAllString(s, `},$1{`)
	s = arrAfterArrPattern.ReplaceAllString(s, `],$1[`)
	s = objAfterStrPattern.ReplaceAllString(s, `",$1{`)
	s = arrAfterStrPattern.ReplaceAllString(s, `",$1[`)
	return s
}

// Broader adjacency set: any closing brace, bracket or quote followed on a
// new line by an opening brace, quote, digit or minus sign.
var aggressiveCommaPattern = regexp.MustCompile(`([}\]"])(\s*\n\s*)(["{\d-])`)

func insertMissingCommasAggressive(s string) string {
	return aggressiveCommaPattern.ReplaceAllString(s, `$1,$2$3`)
}

// ParseCourseOutline turns a text blob claimed to contain a JSON course
// outline into a validated CourseOutline. Repair escalates through three
// tiers: normalized strict parse, aggressive re-repair, and regex field
// extraction. The same input always yields the same output.
func ParseCourseOutline(raw string) (*CourseOutline, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Preview: "", Err: errors.New("empty model response")}
	}

	normalized := applyStages(raw, normalizeStages)
	outline, err := decodeOutline(normalized)
	if err == nil {
		return validateOutline(outline)
	}

	repaired := applyStages(normalized, aggressiveStages)
	if outline, retryErr := decodeOutline(repaired); retryErr == nil {
		return validateOutline(outline)
	}

	if outline, ok := extractOutlineFields(repaired); ok {
		return validateOutline(outline)
	}

	// Terminal failure reports the first decode error, not the retries
	return nil, &ParseError{Preview: preview(raw), Err: err}
}

func decodeOutline(s string) (*CourseOutline, error) {
	var outline CourseOutline
	if err := json.Unmarshal([]byte(s), &outline); err != nil {
		return nil, err
	}
	return &outline, nil
}

func validateOutline(o *CourseOutline) (*CourseOutline, error) {
	if strings.TrimSpace(o.Title) == "" || strings.TrimSpace(o.Description) == "" || o.Modules == nil {
		return nil, ErrInvalidOutline
	}
	for i := range o.Modules {
		if o.Modules[i].Order <= 0 {
			o.Modules[i].Order = i + 1
		}
	}
	return o, nil
}

// Field-extraction fallback. Nested or otherwise malformed module objects
// are not reconstructed; a partial result beats none.
var (
	modulesArrayPattern   = regexp.MustCompile(`(?s)"modules"\s*:\s*\[(.*)\]`)
	moduleFragmentPattern = regexp.MustCompile(`(?s)\{[^{}]*\}`)
	titleFieldPattern     = regexp.MustCompile(`"title"\s*:\s*"([^"]*)"`)
	descFieldPattern      = regexp.MustCompile(`"description"\s*:\s*"([^"]*)"`)
	orderFieldPattern     = regexp.MustCompile(`"order"\s*:\s*(\d+)`)
	durationFieldPattern  = regexp.MustCompile(`"duration"\s*:\s*"([^"]*)"`)
)

func extractOutlineFields(text string) (*CourseOutline, bool) {
	var rawModules string
	head := text
	if loc := modulesArrayPattern.FindStringSubmatchIndex(text); loc != nil {
		rawModules = text[loc[2]:loc[3]]
		// Match the course title and description outside the modules array
		head = text[:loc[0]] + text[loc[1]:]
	}

	var outline CourseOutline
	if m := titleFieldPattern.FindStringSubmatch(head); m != nil {
		outline.Title = m[1]
	}
	if m := descFieldPattern.FindStringSubmatch(head); m != nil {
		outline.Description = m[1]
	}

	for _, frag := range moduleFragmentPattern.FindAllString(rawModules, -1) {
		title := titleFieldPattern.FindStringSubmatch(frag)
		desc := descFieldPattern.FindStringSubmatch(frag)
		order := orderFieldPattern.FindStringSubmatch(frag)
		if title == nil || desc == nil || order == nil {
			continue
		}
		position, err := strconv.Atoi(order[1])
		if err != nil {
			continue
		}
		draft := ModuleDraft{Title: title[1], Description: desc[1], Order: position}
		if duration := durationFieldPattern.FindStringSubmatch(frag); duration != nil {
			draft.Duration = duration[1]
		}
		outline.Modules = append(outline.Modules, draft)
	}

	if outline.Title == "" || len(outline.Modules) == 0 {
		return nil, false
	}

	sort.SliceStable(outline.Modules, func(i, j int) bool {
		return outline.Modules[i].Order < outline.Modules[j].Order
	})
	return &outline, true
}
