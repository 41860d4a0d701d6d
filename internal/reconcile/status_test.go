package reconcile

import (
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHistory() []types.ChatMessage {
	return []types.ChatMessage{
		types.WelcomeMessage(),
		{
			ID:   "m1",
			Role: types.RoleAssistant,
			Suggestions: []types.Suggestion{
				{ID: "s1", Status: types.StatusPending},
				{ID: "s2", Status: types.StatusPending},
			},
		},
		{
			ID:          "m2",
			Role:        types.RoleAssistant,
			Suggestions: []types.Suggestion{{ID: "s1", Status: types.StatusPending}},
		},
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(types.StatusPending, types.StatusAccepted))
	assert.True(t, CanTransition(types.StatusPending, types.StatusRejected))
	assert.True(t, CanTransition("", types.StatusAccepted))
	assert.False(t, CanTransition(types.StatusPending, types.StatusPending))
	assert.False(t, CanTransition(types.StatusAccepted, types.StatusRejected))
	assert.False(t, CanTransition(types.StatusRejected, types.StatusAccepted))
	assert.False(t, CanTransition(types.StatusAccepted, types.StatusAccepted))
}

func TestMarkStatus_OnlyTargetChanges(t *testing.T) {
	history := testHistory()

	updated, err := MarkStatus(history, "m1", "s1", types.StatusAccepted)
	require.NoError(t, err)

	assert.Equal(t, types.StatusAccepted, updated[1].Suggestions[0].Status)
	assert.Equal(t, types.StatusPending, updated[1].Suggestions[1].Status)
	assert.Equal(t, types.StatusPending, updated[2].Suggestions[0].Status, "same suggestion id in another message")
	assert.Equal(t, types.StatusPending, history[1].Suggestions[0].Status, "input untouched")
}

func TestMarkStatus_TerminalStatus(t *testing.T) {
	history, err := MarkStatus(testHistory(), "m1", "s1", types.StatusRejected)
	require.NoError(t, err)

	_, err = MarkStatus(history, "m1", "s1", types.StatusAccepted)
	require.Error(t, err)
	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, types.StatusRejected, transitionErr.From)
}

func TestMarkStatus_NotFound(t *testing.T) {
	_, err := MarkStatus(testHistory(), "m404", "s1", types.StatusAccepted)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "m404")

	_, err = MarkStatus(testHistory(), "m1", "s404", types.StatusAccepted)
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "s404")
}

func TestReject(t *testing.T) {
	updated, err := Reject(testHistory(), "m2", "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusRejected, updated[2].Suggestions[0].Status)
	assert.Equal(t, types.StatusPending, updated[1].Suggestions[0].Status)
}
