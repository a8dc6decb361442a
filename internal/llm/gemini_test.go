package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", alias("gemini-flash", geminiAliases))
	assert.Equal(t, "gemini-2.5-pro", alias("gemini-2.5-pro", geminiAliases))
}

func TestToGeminiSchema(t *testing.T) {
	s := toGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "description": "prompt"},
			"options": map[string]any{
				"type":     "array",
				"minItems": 4,
				"items":    map[string]any{"type": "string"},
			},
			"correctAnswer": map[string]any{"type": "integer"},
			"tier":          map[string]any{"type": "string", "enum": []string{"hasha", "tenkabito"}},
			"odd":           map[string]any{"type": "tuple"},
		},
		"required": []any{"question", "options"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 5)
	assert.Equal(t, "prompt", s.Properties["question"].Description)
	assert.Equal(t, genai.TypeArray, s.Properties["options"].Type)
	require.NotNil(t, s.Properties["options"].Items)
	assert.Equal(t, genai.TypeString, s.Properties["options"].Items.Type)
	assert.Equal(t, genai.TypeInteger, s.Properties["correctAnswer"].Type)
	assert.Equal(t, []string{"hasha", "tenkabito"}, s.Properties["tier"].Enum)
	assert.Equal(t, genai.TypeString, s.Properties["odd"].Type)
	assert.Equal(t, []string{"question", "options"}, s.Required)
}
