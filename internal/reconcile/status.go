package reconcile

import "github.com/jonathan/resume-studio/internal/types"

// CanTransition reports whether a suggestion may move from one status to another.
// Only pending suggestions can change, and only to accepted or rejected.
func CanTransition(from, to types.SuggestionStatus) bool {
	if from != types.StatusPending && from != "" {
		return false
	}
	return to == types.StatusAccepted || to == types.StatusRejected
}

// FindSuggestion locates a suggestion within the chat history
func FindSuggestion(history []types.ChatMessage, messageID, suggestionID string) (types.Suggestion, error) {
	for _, m := range history {
		if m.ID != messageID {
			continue
		}
		for _, s := range m.Suggestions {
			if s.ID == suggestionID {
				return s, nil
			}
		}
		return types.Suggestion{}, &NotFoundError{Message: "suggestion " + suggestionID + " in message " + messageID}
	}
	return types.Suggestion{}, &NotFoundError{Message: "message " + messageID}
}

// MarkStatus returns a copy of history with one suggestion moved to status.
// No other suggestion, in that message or any other, is touched.
func MarkStatus(history []types.ChatMessage, messageID, suggestionID string, status types.SuggestionStatus) ([]types.ChatMessage, error) {
	current, err := FindSuggestion(history, messageID, suggestionID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, status) {
		return nil, &TransitionError{SuggestionID: suggestionID, From: current.Status, To: status}
	}

	out := types.CloneChatHistory(history)
	for i := range out {
		if out[i].ID != messageID {
			continue
		}
		for j := range out[i].Suggestions {
			if out[i].Suggestions[j].ID == suggestionID {
				out[i].Suggestions[j].Status = status
				return out, nil
			}
		}
	}
	return out, nil
}

// Reject returns history with the suggestion rejected. The document is not involved.
func Reject(history []types.ChatMessage, messageID, suggestionID string) ([]types.ChatMessage, error) {
	return MarkStatus(history, messageID, suggestionID, types.StatusRejected)
}
