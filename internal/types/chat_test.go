package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestedValue_UnmarshalText(t *testing.T) {
	var v SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`"Improved bullet"`), &v))
	assert.Equal(t, SuggestedText, v.Kind)
	assert.Equal(t, "Improved bullet", v.Text)
}

func TestSuggestedValue_UnmarshalList(t *testing.T) {
	var v SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`["Go", "Kafka"]`), &v))
	assert.Equal(t, SuggestedList, v.Kind)
	assert.Equal(t, []string{"Go", "Kafka"}, v.List)
}

func TestSuggestedValue_UnmarshalCategories(t *testing.T) {
	var v SuggestedValue
	input := `[{"id":"c1","name":"Languages","skills":["Go"]},{"id":"c2","name":"Cloud","skills":[]}]`
	require.NoError(t, json.Unmarshal([]byte(input), &v))
	assert.Equal(t, SuggestedCategories, v.Kind)
	require.Len(t, v.Categories, 2)
	assert.Equal(t, "Cloud", v.Categories[1].Name)
}

func TestSuggestedValue_UnmarshalEmptyArray(t *testing.T) {
	var v SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`[]`), &v))
	assert.True(t, v.IsEmptyList())
}

func TestSuggestedValue_UnmarshalNull(t *testing.T) {
	v := TextValue("x")
	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.Equal(t, SuggestedNone, v.Kind)
}

func TestSuggestedValue_UnmarshalRejectsNumbers(t *testing.T) {
	var v SuggestedValue
	assert.Error(t, json.Unmarshal([]byte(`42`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &v))
}

func TestSuggestedValue_MarshalShapes(t *testing.T) {
	tests := []struct {
		name  string
		value SuggestedValue
		want  string
	}{
		{"text", TextValue("hello"), `"hello"`},
		{"list", ListValue("Go"), `["Go"]`},
		{"empty list", SuggestedValue{Kind: SuggestedList}, `[]`},
		{"categories", CategoriesValue([]SkillCategory{{ID: "c", Name: "N", Skills: []string{"a"}}}), `[{"id":"c","name":"N","skills":["a"]}]`},
		{"none", SuggestedValue{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestSuggestion_JSONUnmarshaling(t *testing.T) {
	input := `{
		"id": "s1",
		"type": "experience",
		"title": "Quantify impact",
		"description": "Add numbers",
		"original": "Built API",
		"suggested": "Built API serving 1M requests/day",
		"targetId": "exp-1",
		"status": "pending"
	}`

	var s Suggestion
	require.NoError(t, json.Unmarshal([]byte(input), &s))
	assert.Equal(t, SuggestionExperience, s.Type)
	assert.Equal(t, "exp-1", s.TargetID)
	assert.Equal(t, "Built API serving 1M requests/day", s.Suggested.Text)
	assert.Equal(t, StatusPending, s.Status)
	assert.Empty(t, s.SubID)
}

func TestChatMessage_OmitsEmptySuggestions(t *testing.T) {
	data, err := json.Marshal(WelcomeMessage())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suggestions")
	assert.Contains(t, string(data), `"id":"welcome"`)
	assert.Contains(t, string(data), `"role":"assistant"`)
}

func TestSuggestionStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestSuggestionType_IsKnown(t *testing.T) {
	assert.True(t, SuggestionSkillReorg.IsKnown())
	assert.False(t, SuggestionType("education").IsKnown())
}

func TestCloneChatHistory(t *testing.T) {
	history := []ChatMessage{{
		ID:   "m1",
		Role: RoleAssistant,
		Suggestions: []Suggestion{{
			ID:        "s1",
			Suggested: ListValue("Go"),
			Status:    StatusPending,
		}},
	}}

	clone := CloneChatHistory(history)
	clone[0].Suggestions[0].Status = StatusAccepted
	clone[0].Suggestions[0].Suggested.List[0] = "Rust"

	assert.Equal(t, StatusPending, history[0].Suggestions[0].Status)
	assert.Equal(t, "Go", history[0].Suggestions[0].Suggested.List[0])
}
