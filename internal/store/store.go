// Package store holds the authoritative resume document and session state.
package store

import (
	"sync"

	"github.com/jonathan/resume-studio/internal/reconcile"
	"github.com/jonathan/resume-studio/internal/types"
)

// ChangeKind names the operation that produced a change
type ChangeKind string

// Change kinds, one per named operation
const (
	ChangePersonalInfo    ChangeKind = "personalInfo"
	ChangeSummary         ChangeKind = "summary"
	ChangeExperience      ChangeKind = "experience"
	ChangeEducation       ChangeKind = "education"
	ChangeProjects        ChangeKind = "projects"
	ChangeSkills          ChangeKind = "skills"
	ChangeCustomSections  ChangeKind = "customSections"
	ChangeSections        ChangeKind = "sections"
	ChangeColors          ChangeKind = "colors"
	ChangeTemplate        ChangeKind = "template"
	ChangePageFormat      ChangeKind = "pageFormat"
	ChangeFontSize        ChangeKind = "fontSize"
	ChangeFontFamily      ChangeKind = "fontFamily"
	ChangeEditing         ChangeKind = "isEditing"
	ChangeSelectedSection ChangeKind = "selectedSection"
	ChangeImport          ChangeKind = "import"
	ChangeReset           ChangeKind = "reset"
	ChangeChatHistory     ChangeKind = "chatHistory"
	ChangeJobDescription  ChangeKind = "jobDescription"
	ChangeSuggestion      ChangeKind = "suggestion"
)

// AffectsDocument reports whether the change can alter the rendered document
func (k ChangeKind) AffectsDocument() bool {
	switch k {
	case ChangeEditing, ChangeSelectedSection, ChangeChatHistory, ChangeJobDescription:
		return false
	}
	return true
}

// State is a full snapshot of a session
type State struct {
	Document        types.ResumeDocument `json:"resumeData"`
	ChatHistory     []types.ChatMessage  `json:"chatHistory"`
	JobDescription  string               `json:"jobDescription"`
	IsEditing       bool                 `json:"isEditing"`
	SelectedSection string               `json:"selectedSection,omitempty"`
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	s.Document = s.Document.Clone()
	s.ChatHistory = types.CloneChatHistory(s.ChatHistory)
	return s
}

// Change is delivered to observers after every mutation
type Change struct {
	Kind  ChangeKind `json:"kind"`
	State State      `json:"state"`
}

// Observer receives changes synchronously, after the mutation is visible to readers.
// Observers must not call mutating store methods; hand off to a goroutine instead.
type Observer func(Change)

// Store owns one session. Readers get deep copies and always see a complete
// pre- or post-mutation state.
type Store struct {
	writeMu sync.Mutex // serializes mutation plus notification
	mu      sync.RWMutex
	state   State

	observers []subscription
	nextSub   int
}

type subscription struct {
	id int
	fn Observer
}

// New creates a store holding the default document and the welcome message
func New() *Store {
	return &Store{state: initialState()}
}

func initialState() State {
	return State{
		Document:    types.NewDocument(),
		ChatHistory: []types.ChatMessage{types.WelcomeMessage()},
	}
}

// Subscribe registers an observer and returns a function that removes it
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.observers {
				if sub.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// mutate applies fn under the write lock and then notifies observers in
// registration order. fn returning false means nothing changed.
func (s *Store) mutate(kind ChangeKind, fn func(*State) bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	snapshot := s.state.Clone()
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for i, sub := range observers {
		c := Change{Kind: kind, State: snapshot}
		if i < len(observers)-1 {
			c.State = snapshot.Clone()
		}
		sub.fn(c)
	}
}

// Snapshot returns a copy of the full session state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ExportResumeData returns a copy of the current document
func (s *Store) ExportResumeData() types.ResumeDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Document.Clone()
}

// ChatHistory returns a copy of the conversation
func (s *Store) ChatHistory() []types.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.CloneChatHistory(s.state.ChatHistory)
}

// JobDescription returns the captured job description
func (s *Store) JobDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.JobDescription
}

// UpdatePersonalInfo merges the fields present in patch into personal info
func (s *Store) UpdatePersonalInfo(patch PersonalInfoPatch) {
	s.mutate(ChangePersonalInfo, func(st *State) bool {
		st.Document.PersonalInfo = patch.Apply(st.Document.PersonalInfo)
		return true
	})
}

// UpdateSummary replaces the summary
func (s *Store) UpdateSummary(summary string) {
	s.mutate(ChangeSummary, func(st *State) bool {
		st.Document.Summary = summary
		return true
	})
}

// UpdateExperience replaces the experience list
func (s *Store) UpdateExperience(experience []types.Experience) {
	doc := types.ResumeDocument{Experience: experience}
	cloned := doc.Clone().Experience
	s.mutate(ChangeExperience, func(st *State) bool {
		st.Document.Experience = cloned
		return true
	})
}

// UpdateEducation replaces the education list
func (s *Store) UpdateEducation(education []types.Education) {
	doc := types.ResumeDocument{Education: education}
	cloned := doc.Clone().Education
	s.mutate(ChangeEducation, func(st *State) bool {
		st.Document.Education = cloned
		return true
	})
}

// UpdateProjects replaces the project list
func (s *Store) UpdateProjects(projects []types.Project) {
	doc := types.ResumeDocument{Projects: projects}
	cloned := doc.Clone().Projects
	s.mutate(ChangeProjects, func(st *State) bool {
		st.Document.Projects = cloned
		return true
	})
}

// UpdateSkills replaces the skills block
func (s *Store) UpdateSkills(skills types.Skills) {
	cloned := skills.Clone()
	s.mutate(ChangeSkills, func(st *State) bool {
		st.Document.Skills = cloned
		return true
	})
}

// UpdateCustomSections replaces the custom section list
func (s *Store) UpdateCustomSections(sections []types.CustomSection) {
	doc := types.ResumeDocument{CustomSections: sections}
	cloned := doc.Clone().CustomSections
	s.mutate(ChangeCustomSections, func(st *State) bool {
		st.Document.CustomSections = cloned
		return true
	})
}

// UpdateSections replaces the section visibility and order list
func (s *Store) UpdateSections(sections []types.ResumeSection) {
	doc := types.ResumeDocument{Sections: sections}
	cloned := doc.Clone().Sections
	s.mutate(ChangeSections, func(st *State) bool {
		st.Document.Sections = cloned
		return true
	})
}

// UpdateColors replaces the color palette
func (s *Store) UpdateColors(colors types.ResumeColors) {
	s.mutate(ChangeColors, func(st *State) bool {
		st.Document.Colors = colors
		return true
	})
}

// UpdateTemplate selects the template. Unknown ids are stored as given; the
// renderer falls back at render time.
func (s *Store) UpdateTemplate(id types.TemplateID) {
	s.mutate(ChangeTemplate, func(st *State) bool {
		st.Document.Template = id
		return true
	})
}

// UpdatePageFormat sets the paper size
func (s *Store) UpdatePageFormat(format types.PageFormat) {
	s.mutate(ChangePageFormat, func(st *State) bool {
		st.Document.PageFormat = format
		return true
	})
}

// UpdateFontSize sets the type scale
func (s *Store) UpdateFontSize(size types.FontSize) {
	s.mutate(ChangeFontSize, func(st *State) bool {
		st.Document.FontSize = size
		return true
	})
}

// UpdateFontFamily sets the font family
func (s *Store) UpdateFontFamily(family string) {
	s.mutate(ChangeFontFamily, func(st *State) bool {
		st.Document.FontFamily = family
		return true
	})
}

// SetEditing toggles the editing flag
func (s *Store) SetEditing(editing bool) {
	s.mutate(ChangeEditing, func(st *State) bool {
		st.IsEditing = editing
		return true
	})
}

// SetSelectedSection records which section the editor has open
func (s *Store) SetSelectedSection(id string) {
	s.mutate(ChangeSelectedSection, func(st *State) bool {
		st.SelectedSection = id
		return true
	})
}

// ImportResumeData replaces the whole document
func (s *Store) ImportResumeData(doc types.ResumeDocument) {
	cloned := doc.Clone()
	s.mutate(ChangeImport, func(st *State) bool {
		st.Document = cloned
		return true
	})
}

// ResetResume restores the default document and the default session state:
// the conversation is back to the welcome message, the job description is
// cleared and editing ends.
func (s *Store) ResetResume() {
	s.mutate(ChangeReset, func(st *State) bool {
		*st = initialState()
		return true
	})
}

// SetChatHistory replaces the conversation
func (s *Store) SetChatHistory(history []types.ChatMessage) {
	cloned := types.CloneChatHistory(history)
	s.mutate(ChangeChatHistory, func(st *State) bool {
		st.ChatHistory = cloned
		return true
	})
}

// AppendChatMessage adds a message to the end of the conversation
func (s *Store) AppendChatMessage(msg types.ChatMessage) {
	cloned := types.CloneChatHistory([]types.ChatMessage{msg})[0]
	s.mutate(ChangeChatHistory, func(st *State) bool {
		st.ChatHistory = append(st.ChatHistory, cloned)
		return true
	})
}

// SetJobDescription stores the job description used for suggestions
func (s *Store) SetJobDescription(text string) {
	s.mutate(ChangeJobDescription, func(st *State) bool {
		st.JobDescription = text
		return true
	})
}

// CaptureJobDescription stores text as the job description only when none is set.
// Returns true when it was stored.
func (s *Store) CaptureJobDescription(text string) bool {
	captured := false
	s.mutate(ChangeJobDescription, func(st *State) bool {
		if st.JobDescription != "" {
			return false
		}
		st.JobDescription = text
		captured = true
		return true
	})
	return captured
}

// AcceptSuggestion applies a pending suggestion to the current document and marks it
// accepted, as one change. A suggestion that cannot be applied is still accepted;
// the returned outcome carries the miss.
func (s *Store) AcceptSuggestion(messageID, suggestionID string) (reconcile.Outcome, error) {
	var (
		outcome reconcile.Outcome
		err     error
	)
	s.mutate(ChangeSuggestion, func(st *State) bool {
		var suggestion types.Suggestion
		suggestion, err = reconcile.FindSuggestion(st.ChatHistory, messageID, suggestionID)
		if err != nil {
			return false
		}
		var history []types.ChatMessage
		history, err = reconcile.MarkStatus(st.ChatHistory, messageID, suggestionID, types.StatusAccepted)
		if err != nil {
			return false
		}
		st.Document, outcome = reconcile.Accept(&st.Document, suggestion)
		st.ChatHistory = history
		return true
	})
	return outcome, err
}

// RejectSuggestion marks a pending suggestion rejected. The document is unchanged.
func (s *Store) RejectSuggestion(messageID, suggestionID string) error {
	var err error
	s.mutate(ChangeSuggestion, func(st *State) bool {
		var history []types.ChatMessage
		history, err = reconcile.Reject(st.ChatHistory, messageID, suggestionID)
		if err != nil {
			return false
		}
		st.ChatHistory = history
		return true
	})
	return err
}
