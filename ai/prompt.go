package ai

import "fmt"

const (
	systemPrompt = `You are a curriculum designer. You respond with a single JSON object and nothing else: no prose, no markdown code fences, no explanations.`

	coursePromptTemplate = `Create a course outline about "%s" for a %s level learner.

Respond with ONLY a JSON object of this exact shape:
{
  "title": "Course title",
  "description": "One paragraph describing the course",
  "modules": [
    {
      "title": "Module title",
      "description": "What the module covers",
      "order": 1,
      "duration": "2 hours"
    }
  ]
}

Rules:
- 5 to 8 modules ordered as a linear learning path
- "order" starts at 1 and increases by 1
- Every module needs a title and a description
- Output must start with { and end with }`
)

// BuildCoursePrompt renders the generation prompt for a topic and
// difficulty level.
func BuildCoursePrompt(topic, difficulty string) string {
	return fmt.Sprintf(coursePromptTemplate, topic, difficulty)
}
