package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	models    []string
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (s *scriptedClient) GenerateText(prompt, model string, structured bool) (string, error) {
	s.calls = append(s.calls, model)
	if err := s.errs[model]; err != nil {
		return "", err
	}
	return s.responses[model], nil
}

func (s *scriptedClient) Models() []string { return s.models }

func TestGeneratorStopsAtFirstUsableModel(t *testing.T) {
	client := &scriptedClient{
		models: []string{"m1", "m2", "m3", "m4"},
		responses: map[string]string{
			"m1": "",
			"m2": "   ",
			"m3": wellFormed,
			"m4": wellFormed,
		},
	}

	outline, info, err := NewGenerator(client).GenerateCourse("go", "beginner")
	require.NoError(t, err)

	assert.Equal(t, "Go Basics", outline.Title)
	assert.Equal(t, "m3", info.Model)
	assert.NotEmpty(t, info.RawPreview)
	// m4 must never be called once m3 produced text
	assert.Equal(t, []string{"m1", "m2", "m3"}, client.calls)
}

func TestGeneratorAllModelsExhausted(t *testing.T) {
	client := &scriptedClient{
		models: []string{"m1", "m2", "m3"},
		errs: map[string]error{
			"m1": fmt.Errorf("API error 500 from m1"),
		},
		responses: map[string]string{
			"m2": "",
			"m3": "",
		},
	}

	_, _, err := NewGenerator(client).GenerateCourse("go", "beginner")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, []string{"m1", "m2", "m3"}, upstream.Attempted)
	assert.Contains(t, err.Error(), "m1, m2, m3")
	assert.Contains(t, err.Error(), "empty response")
}

func TestGeneratorParseFailureIsTerminal(t *testing.T) {
	client := &scriptedClient{
		models: []string{"m1", "m2"},
		responses: map[string]string{
			"m1": "not a json payload",
			"m2": wellFormed,
		},
	}

	_, _, err := NewGenerator(client).GenerateCourse("go", "beginner")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	// A bad response is not retried against the next model
	assert.Equal(t, []string{"m1"}, client.calls)
}

func TestGeneratorDisabled(t *testing.T) {
	client := &scriptedClient{
		models: []string{"m1", "m2"},
		errs: map[string]error{
			"m1": ErrGenerationDisabled,
		},
	}

	_, _, err := NewGenerator(client).GenerateCourse("go", "beginner")
	require.True(t, errors.Is(err, ErrGenerationDisabled))
	assert.Equal(t, []string{"m1"}, client.calls)
}
