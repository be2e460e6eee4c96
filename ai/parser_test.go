package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{
  "title": "Go Basics",
  "description": "An introduction to the Go programming language.",
  "modules": [
    {"title": "Syntax", "description": "Variables and control flow.", "order": 1, "duration": "2 hours"},
    {"title": "Types", "description": "Structs and interfaces.", "order": 2, "duration": "3 hours"}
  ]
}`

func TestParseWellFormed(t *testing.T) {
	outline, err := ParseCourseOutline(wellFormed)
	require.NoError(t, err)

	assert.Equal(t, "Go Basics", outline.Title)
	assert.Equal(t, "An introduction to the Go programming language.", outline.Description)
	require.Len(t, outline.Modules, 2)
	assert.Equal(t, "Syntax", outline.Modules[0].Title)
	assert.Equal(t, 1, outline.Modules[0].Order)
	assert.Equal(t, "3 hours", outline.Modules[1].Duration)
}

func TestParseFenced(t *testing.T) {
	fenced := "```json\n" + wellFormed + "\n```"

	outline, err := ParseCourseOutline(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", outline.Title)
	assert.Len(t, outline.Modules, 2)
}

func TestParseFencedWithoutLanguageTag(t *testing.T) {
	fenced := "```\n" + wellFormed + "\n```"

	outline, err := ParseCourseOutline(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", outline.Title)
}

func TestParseDefaultsMissingOrders(t *testing.T) {
	input := `{
  "title": "Go Basics",
  "description": "Intro.",
  "modules": [
    {"title": "A", "description": "a"},
    {"title": "B", "description": "b"},
    {"title": "C", "description": "c"}
  ]
}`

	outline, err := ParseCourseOutline(input)
	require.NoError(t, err)
	require.Len(t, outline.Modules, 3)
	assert.Equal(t, 1, outline.Modules[0].Order)
	assert.Equal(t, 2, outline.Modules[1].Order)
	assert.Equal(t, 3, outline.Modules[2].Order)
}

func TestParseMissingComma(t *testing.T) {
	input := `{
  "title": "Go Basics",
  "description": "An introduction."
  "modules": [
    {"title": "Syntax", "description": "Variables.", "order": 1}
  ]
}`

	outline, err := ParseCourseOutline(input)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", outline.Title)
	require.Len(t, outline.Modules, 1)
	assert.Equal(t, "Syntax", outline.Modules[0].Title)
}

func TestParseTrailingCommas(t *testing.T) {
	input := `{
  "title": "Go Basics",
  "description": "Intro.",
  "modules": [
    {"title": "Syntax", "description": "Variables.", "order": 1,},
  ],
}`

	outline, err := ParseCourseOutline(input)
	require.NoError(t, err)
	assert.Len(t, outline.Modules, 1)
}

func TestParseProseWrapped(t *testing.T) {
	input := "Sure! Here is the course outline you asked for:\n\n" + wellFormed + "\n\nLet me know if you want changes."

	outline, err := ParseCourseOutline(input)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", outline.Title)
	assert.Len(t, outline.Modules, 2)
}

func TestParseFieldExtractionFallback(t *testing.T) {
	// A missing colon defeats both parse tiers; modules are still
	// recoverable by pattern matching and come back sorted by order.
	input := `{
  "title": "Rust Fundamentals",
  "description": "Learn Rust from scratch.",
  "level" "advanced",
  "modules": [
    {"order": 2, "description": "Ownership and borrowing.", "title": "Memory"},
    {"order": 1, "description": "Setting up the toolchain.", "title": "Getting Started", "duration": "1 hour"}
  ]
}`

	outline, err := ParseCourseOutline(input)
	require.NoError(t, err)
	assert.Equal(t, "Rust Fundamentals", outline.Title)
	assert.Equal(t, "Learn Rust from scratch.", outline.Description)
	require.Len(t, outline.Modules, 2)
	assert.Equal(t, "Getting Started", outline.Modules[0].Title)
	assert.Equal(t, "1 hour", outline.Modules[0].Duration)
	assert.Equal(t, "Memory", outline.Modules[1].Title)
}

func TestParseFallbackFailsWithoutTitle(t *testing.T) {
	input := `{
  "name" "broken",
  "modules": [
    {"order": 1, "description": "d", "title": "M"}
  ]
}`

	_, err := ParseCourseOutline(input)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotEmpty(t, parseErr.Preview)
}

func TestParseEmptyInput(t *testing.T) {
	var parseErr *ParseError

	_, err := ParseCourseOutline("")
	require.ErrorAs(t, err, &parseErr)

	_, err = ParseCourseOutline("   \n\t ")
	require.ErrorAs(t, err, &parseErr)
}

func TestParseGarbage(t *testing.T) {
	_, err := ParseCourseOutline("the model had nothing useful to say")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParsePreviewIsBounded(t *testing.T) {
	long := "x"
	for len(long) < 2000 {
		long += long
	}

	_, err := ParseCourseOutline(long)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.LessOrEqual(t, len(parseErr.Preview), previewLimit+3)
}

func TestParseStructureInvalid(t *testing.T) {
	cases := []string{
		`{"title": "X", "description": "Y"}`,
		`{"title": "", "description": "Y", "modules": []}`,
		`{"title": "X", "description": "", "modules": []}`,
		`{"title": "X", "description": "Y", "modules": null}`,
	}

	for _, input := range cases {
		_, err := ParseCourseOutline(input)
		assert.True(t, errors.Is(err, ErrInvalidOutline), "expected structure-invalid for %s", input)
	}
}

func TestParseIdempotent(t *testing.T) {
	input := "```json\n" + wellFormed + "\n```"

	first, err := ParseCourseOutline(input)
	require.NoError(t, err)
	second, err := ParseCourseOutline(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripCodeFence("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripCodeFence("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripCodeFence("```json\n{\"a\": 1}"))
	assert.Equal(t, `{"a": 1}`, stripCodeFence(`{"a": 1}`))
}

func TestStripTrailingCommas(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripTrailingCommas(`{"a": 1,}`))
	assert.Equal(t, `{"a": [1, 2]}`, stripTrailingCommas(`{"a": [1, 2,]}`))
}

func TestInsertMissingCommas(t *testing.T) {
	in := "{\n\"a\": \"x\"\n\"b\": \"y\"\n}"
	out := insertMissingCommas(in)
	assert.Contains(t, out, "\"x\",")
}

func TestWidenObjectBounds(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, widenObjectBounds(`junk {"a": 1} trailing`))
	assert.Equal(t, "no braces here", widenObjectBounds("no braces here"))
}
