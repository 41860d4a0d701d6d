package applications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/portable"
	"github.com/jonathan/resume-studio/internal/skills"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/suggest"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	apps []db.SavedApplication
	err  error
}

func (m *memoryRepo) SaveApplication(_ context.Context, in *db.ApplicationCreateInput) (*db.SavedApplication, error) {
	if m.err != nil {
		return nil, m.err
	}
	app := db.SavedApplication{
		ID:             uuid.New(),
		JobDescription: in.JobDescription,
		CompanyName:    in.CompanyName,
		Skills:         in.Skills,
		ResumeData:     in.ResumeData,
		ChatHistory:    in.ChatHistory,
		CreatedAt:      time.Now(),
	}
	m.apps = append([]db.SavedApplication{app}, m.apps...)
	return &app, nil
}

func (m *memoryRepo) GetApplication(_ context.Context, id uuid.UUID) (*db.SavedApplication, error) {
	for _, a := range m.apps {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, m.err
}

func (m *memoryRepo) ListApplications(context.Context) ([]db.SavedApplication, error) {
	return m.apps, m.err
}

func (m *memoryRepo) ListApplicationSkills(context.Context) ([]db.ApplicationSkills, error) {
	out := make([]db.ApplicationSkills, 0, len(m.apps))
	for _, a := range m.apps {
		out = append(out, db.ApplicationSkills{ID: a.ID, Skills: a.Skills})
	}
	return out, m.err
}

func (m *memoryRepo) DeleteApplication(_ context.Context, id uuid.UUID) (bool, error) {
	for i, a := range m.apps {
		if a.ID == id {
			m.apps = append(m.apps[:i], m.apps[i+1:]...)
			return true, nil
		}
	}
	return false, m.err
}

type fakeExtractor struct {
	info *suggest.JobInfo
	err  error
}

func (f *fakeExtractor) Suggest(context.Context, suggest.Request) (*suggest.Response, error) {
	return &suggest.Response{}, nil
}

func (f *fakeExtractor) ExtractJobInfo(context.Context, string) (*suggest.JobInfo, error) {
	return f.info, f.err
}

func sessionWithJob(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.UpdateSummary("Go developer")
	s.SetJobDescription("Acme is hiring a Go engineer")
	s.AppendChatMessage(types.ChatMessage{ID: "u1", Role: types.RoleUser, Content: "hello"})
	return s
}

func TestSave_WithExtraction(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, &fakeExtractor{info: &suggest.JobInfo{Skills: []string{"Go"}, CompanyName: "Acme"}})

	app, err := svc.Save(context.Background(), sessionWithJob(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, app.Skills)
	require.NotNil(t, app.CompanyName)
	assert.Equal(t, "Acme", *app.CompanyName)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal(app.ResumeData, &doc))
	assert.Equal(t, "Go developer", doc.Summary)
}

func TestSave_ExtractionFailureStillSaves(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, &fakeExtractor{err: &suggest.NetworkError{Message: "down"}})

	app, err := svc.Save(context.Background(), sessionWithJob(t))
	require.NoError(t, err)
	assert.Empty(t, app.Skills)
	assert.Nil(t, app.CompanyName)
	assert.Len(t, repo.apps, 1)
}

func TestSave_RepositoryError(t *testing.T) {
	svc := NewService(&memoryRepo{err: errors.New("db down")}, nil)
	_, err := svc.Save(context.Background(), sessionWithJob(t))
	assert.ErrorContains(t, err, "db down")
}

func TestLoad_ReplacesSession(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil)
	saved, err := svc.Save(context.Background(), sessionWithJob(t))
	require.NoError(t, err)

	target := store.New()
	target.UpdateSummary("something else")

	_, err = svc.Load(context.Background(), saved.ID, target)
	require.NoError(t, err)

	snap := target.Snapshot()
	assert.Equal(t, "Go developer", snap.Document.Summary)
	assert.Equal(t, "Acme is hiring a Go engineer", snap.JobDescription)
	require.Len(t, snap.ChatHistory, 2)
	assert.Equal(t, "u1", snap.ChatHistory[1].ID)
}

func TestLoad_CorruptedDocumentLeavesSessionUntouched(t *testing.T) {
	id := uuid.New()
	repo := &memoryRepo{apps: []db.SavedApplication{{ID: id, ResumeData: json.RawMessage(`{"summary":"x"}`)}}}
	svc := NewService(repo, nil)

	target := store.New()
	target.UpdateSummary("keep")

	_, err := svc.Load(context.Background(), id, target)
	var formatErr *portable.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "keep", target.ExportResumeData().Summary)
}

func TestGetAndDelete_NotFound(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)
	var notFound *NotFoundError

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorAs(t, svc.Delete(context.Background(), uuid.New()), &notFound)
}

func TestSkillDemand(t *testing.T) {
	repo := &memoryRepo{apps: []db.SavedApplication{
		{ID: uuid.New(), Skills: []string{"Go", "SQL"}},
		{ID: uuid.New(), Skills: []string{"go"}},
		{ID: uuid.New(), Skills: []string{"Rust"}},
	}}
	counts, err := NewService(repo, nil).SkillDemand(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []skills.Count{{Name: "go", Count: 2}, {Name: "rust", Count: 1}}, counts)
}
