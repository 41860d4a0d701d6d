// Package applications saves resume sessions against job descriptions and loads them back.
package applications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/portable"
	"github.com/jonathan/resume-studio/internal/skills"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/suggest"
	"github.com/jonathan/resume-studio/internal/types"
)

// Repository is the persistence the service needs. *db.DB implements it.
type Repository interface {
	SaveApplication(ctx context.Context, input *db.ApplicationCreateInput) (*db.SavedApplication, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.SavedApplication, error)
	ListApplications(ctx context.Context) ([]db.SavedApplication, error)
	ListApplicationSkills(ctx context.Context) ([]db.ApplicationSkills, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service coordinates saving and loading applications
type Service struct {
	repo      Repository
	extractor suggest.Service
}

// NewService creates a service. extractor may be nil, in which case applications are
// saved without extracted skills or company name.
func NewService(repo Repository, extractor suggest.Service) *Service {
	return &Service{repo: repo, extractor: extractor}
}

// Save stores the session's document, conversation and job description. Skills and
// company name come from the extraction call; an extraction failure is logged and the
// application is saved without them.
func (s *Service) Save(ctx context.Context, st *store.Store) (*db.SavedApplication, error) {
	snap := st.Snapshot()

	resume, err := json.Marshal(snap.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	chat, err := json.Marshal(snap.ChatHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat history: %w", err)
	}

	input := &db.ApplicationCreateInput{
		JobDescription: snap.JobDescription,
		Skills:         []string{},
		ResumeData:     resume,
		ChatHistory:    chat,
	}
	if s.extractor != nil && snap.JobDescription != "" {
		info, err := s.extractor.ExtractJobInfo(ctx, snap.JobDescription)
		if err != nil {
			log.Printf("[applications] job info extraction failed, saving without it: %v", err)
		} else {
			input.Skills = info.Skills
			if info.CompanyName != "" {
				name := info.CompanyName
				input.CompanyName = &name
			}
		}
	}

	return s.repo.SaveApplication(ctx, input)
}

// Get returns one application
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*db.SavedApplication, error) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &NotFoundError{ID: id}
	}
	return app, nil
}

// List returns all applications, newest first
func (s *Service) List(ctx context.Context) ([]db.SavedApplication, error) {
	return s.repo.ListApplications(ctx)
}

// Delete removes an application
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.DeleteApplication(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{ID: id}
	}
	return nil
}

// Load replaces the session's document, conversation and job description with a
// saved application. Nothing is changed unless the saved document is valid.
func (s *Service) Load(ctx context.Context, id uuid.UUID, st *store.Store) (*db.SavedApplication, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := portable.Import(app.ResumeData)
	if err != nil {
		return nil, err
	}
	var history []types.ChatMessage
	if len(app.ChatHistory) > 0 {
		if err := json.Unmarshal(app.ChatHistory, &history); err != nil {
			return nil, &ValidationError{Message: "saved chat history is corrupted", Cause: err}
		}
	}

	st.ImportResumeData(*doc)
	st.SetChatHistory(history)
	st.SetJobDescription(app.JobDescription)
	return app, nil
}

// SkillDemand aggregates skills across all saved applications
func (s *Service) SkillDemand(ctx context.Context, limit int) ([]skills.Count, error) {
	rows, err := s.repo.ListApplicationSkills(ctx)
	if err != nil {
		return nil, err
	}
	lists := make([][]string, 0, len(rows))
	for _, r := range rows {
		lists = append(lists, r.Skills)
	}
	return skills.Top(skills.Aggregate(lists), limit), nil
}
