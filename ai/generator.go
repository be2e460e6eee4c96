package ai

import (
	"errors"
	"fmt"
	"strings"
)

// TextGenerator is the capability the generation loop needs from a
// provider client, keeping the loop vendor-agnostic.
type TextGenerator interface {
	GenerateText(prompt, model string, structured bool) (string, error)
	Models() []string
}

// Generator orchestrates one course generation: build the prompt, walk the
// candidate models in preference order, parse the first non-empty reply.
type Generator struct {
	client TextGenerator
}

func NewGenerator(client TextGenerator) *Generator {
	return &Generator{client: client}
}

// GenerationInfo records which model produced an outline and a bounded
// preview of its raw response.
type GenerationInfo struct {
	Model      string `json:"model"`
	RawPreview string `json:"raw_preview"`
}

// UpstreamError means every candidate model failed or returned empty. It
// names the attempted identifiers and the last underlying cause.
type UpstreamError struct {
	Attempted []string
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("all generation models failed (%s): %v", strings.Join(e.Attempted, ", "), e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// GenerateCourse produces a course outline for a topic and difficulty.
// Models are tried in order and the loop stops at the first one that
// returns any non-empty text; parsing failures are not retried on other
// models.
func (g *Generator) GenerateCourse(topic, difficulty string) (*CourseOutline, *GenerationInfo, error) {
	prompt := BuildCoursePrompt(topic, difficulty)

	var attempted []string
	var lastErr error
	for _, model := range g.client.Models() {
		attempted = append(attempted, model)

		text, err := g.client.GenerateText(prompt, model, true)
		if err != nil {
			if errors.Is(err, ErrGenerationDisabled) {
				return nil, nil, err
			}
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) == "" {
			lastErr = fmt.Errorf("model %s returned an empty response", model)
			continue
		}

		outline, err := ParseCourseOutline(text)
		if err != nil {
			return nil, nil, err
		}
		return outline, &GenerationInfo{Model: model, RawPreview: preview(text)}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no candidate models configured")
	}
	return nil, nil, &UpstreamError{Attempted: attempted, Err: lastErr}
}
