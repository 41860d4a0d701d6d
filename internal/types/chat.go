package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Role identifies the author of a chat message
type Role string

// Chat roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// WelcomeMessageID is the id of the greeting every conversation starts with.
// Messages with this id are never forwarded to the suggestion service.
const WelcomeMessageID = "welcome"

// ChatMessage is one entry of the assistant conversation
type ChatMessage struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// WelcomeMessage returns the assistant greeting seeded into new sessions
func WelcomeMessage() ChatMessage {
	return ChatMessage{
		ID:      WelcomeMessageID,
		Role:    RoleAssistant,
		Content: "Hi! Paste a job description (JD) here, and I will suggest tailored changes for your resume.",
	}
}

// SuggestionType names the document region a suggestion edits
type SuggestionType string

// Suggestion types
const (
	SuggestionExperience SuggestionType = "experience"
	SuggestionSkill      SuggestionType = "skill"
	SuggestionSummary    SuggestionType = "summary"
	SuggestionSkillReorg SuggestionType = "skill_reorg"
)

// IsKnown reports whether t is one of the four suggestion types
func (t SuggestionType) IsKnown() bool {
	switch t {
	case SuggestionExperience, SuggestionSkill, SuggestionSummary, SuggestionSkillReorg:
		return true
	}
	return false
}

// SuggestionStatus tracks the review lifecycle: pending, then accepted or rejected
type SuggestionStatus string

// Suggestion statuses
const (
	StatusPending  SuggestionStatus = "pending"
	StatusAccepted SuggestionStatus = "accepted"
	StatusRejected SuggestionStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed
func (s SuggestionStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Suggestion is a proposed edit attached to an assistant message
type Suggestion struct {
	ID          string           `json:"id"`
	Type        SuggestionType   `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Original    string           `json:"original,omitempty"`
	Suggested   SuggestedValue   `json:"suggested"`
	TargetID    string           `json:"targetId,omitempty"`
	SubID       string           `json:"subId,omitempty"`
	Status      SuggestionStatus `json:"status"`
}

// SuggestedValueKind discriminates the SuggestedValue union
type SuggestedValueKind int

// Value kinds
const (
	SuggestedNone SuggestedValueKind = iota
	SuggestedText
	SuggestedList
	SuggestedCategories
)

// SuggestedValue holds the proposed content of a suggestion: a single text,
// a list of strings, or a list of skill categories. The JSON form is the bare value.
type SuggestedValue struct {
	Kind       SuggestedValueKind
	Text       string
	List       []string
	Categories []SkillCategory
}

// TextValue wraps a replacement text
func TextValue(s string) SuggestedValue {
	return SuggestedValue{Kind: SuggestedText, Text: s}
}

// ListValue wraps a list of strings
func ListValue(items ...string) SuggestedValue {
	if items == nil {
		items = []string{}
	}
	return SuggestedValue{Kind: SuggestedList, List: items}
}

// CategoriesValue wraps a skill category list
func CategoriesValue(categories []SkillCategory) SuggestedValue {
	if categories == nil {
		categories = []SkillCategory{}
	}
	return SuggestedValue{Kind: SuggestedCategories, Categories: categories}
}

// IsEmptyList reports whether the value is a JSON array with no elements.
// An empty array cannot be told apart from an empty category list on the wire.
func (v SuggestedValue) IsEmptyList() bool {
	switch v.Kind {
	case SuggestedList:
		return len(v.List) == 0
	case SuggestedCategories:
		return len(v.Categories) == 0
	}
	return false
}

// Clone returns a deep copy of the value
func (v SuggestedValue) Clone() SuggestedValue {
	out := v
	out.List = cloneStrings(v.List)
	out.Categories = CloneCategories(v.Categories)
	return out
}

// MarshalJSON writes the bare union member
func (v SuggestedValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SuggestedText:
		return json.Marshal(v.Text)
	case SuggestedList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case SuggestedCategories:
		if v.Categories == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Categories)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string, an array of strings or an array of category objects
func (v *SuggestedValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = SuggestedValue{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return err
		}
		if len(elems) == 0 {
			*v = ListValue()
			return nil
		}
		first := bytes.TrimSpace(elems[0])
		if len(first) > 0 && first[0] == '{' {
			var categories []SkillCategory
			if err := json.Unmarshal(trimmed, &categories); err != nil {
				return fmt.Errorf("suggested categories: %w", err)
			}
			*v = CategoriesValue(categories)
			return nil
		}
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("suggested list: %w", err)
		}
		*v = ListValue(items...)
		return nil
	default:
		return fmt.Errorf("suggested value must be a string or an array, got %s", string(trimmed))
	}
}

// CloneChatHistory deep-copies a conversation
func CloneChatHistory(history []ChatMessage) []ChatMessage {
	return cloneSlice(history, func(m ChatMessage) ChatMessage {
		m.Suggestions = cloneSlice(m.Suggestions, func(s Suggestion) Suggestion {
			s.Suggested = s.Suggested.Clone()
			return s
		})
		return m
	})
}
