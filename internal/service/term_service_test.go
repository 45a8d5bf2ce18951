package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type mockTermRepo struct {
	terms   map[string]models.Term
	created *models.Term
}

func (m *mockTermRepo) List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error) {
	var out []models.Term
	for _, t := range m.terms {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (m *mockTermRepo) FindByID(ctx context.Context, id string) (*models.Term, error) {
	if t, ok := m.terms[id]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTermRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for _, t := range m.terms {
		if t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTermRepo) Create(ctx context.Context, term *models.Term) error {
	if m.terms == nil {
		m.terms = make(map[string]models.Term)
	}
	if term.ID == "" {
		term.ID = "new-term"
	}
	m.terms[term.ID] = *term
	m.created = term
	return nil
}

func (m *mockTermRepo) Update(ctx context.Context, term *models.Term) error {
	m.terms[term.ID] = *term
	return nil
}

func TestTermServiceCreate(t *testing.T) {
	repo := &mockTermRepo{}
	svc := NewTermService(repo, nil, nil)

	term, err := svc.Create(context.Background(), CreateTermRequest{
		Name:      "2026-2027 Fall",
		StartDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-2027 Fall", term.Name)
	assert.NotNil(t, repo.created)
}

func TestTermServiceCreateRejectsDuplicateName(t *testing.T) {
	repo := &mockTermRepo{terms: map[string]models.Term{
		"term-1": {ID: "term-1", Name: "2026-2027 Fall"},
	}}
	svc := NewTermService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateTermRequest{
		Name:      "2026-2027 Fall",
		StartDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyExists))
}

func TestTermServiceCreateRejectsInvertedDates(t *testing.T) {
	svc := NewTermService(&mockTermRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateTermRequest{
		Name:      "2026-2027 Spring",
		StartDate: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestTermServiceGetNotFound(t *testing.T) {
	svc := NewTermService(&mockTermRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
