package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

func createTestCatalogService(t *testing.T) (*CatalogService, *QuestionnaireService) {
	t.Helper()
	store := newTestStore(t)
	return NewCatalogService(store), NewQuestionnaireService(store, nil, 0)
}

func TestCatalogService_Programmes(t *testing.T) {
	svc, _ := createTestCatalogService(t)
	ctx := context.Background()

	p, err := svc.CreateProgramme(ctx, "  Year 7 ", "first year")
	require.NoError(t, err)
	assert.Equal(t, "Year 7", p.Name)

	_, err = svc.CreateProgramme(ctx, " ", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	list, total, err := svc.ListProgrammes(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	got, err := svc.GetProgramme(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCatalogService_CreateClass_UnknownProgramme(t *testing.T) {
	svc, _ := createTestCatalogService(t)
	_, err := svc.CreateClass(context.Background(), "7A", uintPtr(404))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCatalogService_DeleteProgramme_UnlinksQuestionnaires(t *testing.T) {
	svc, qs := createTestCatalogService(t)
	ctx := context.Background()
	p, err := svc.CreateProgramme(ctx, "Year 8", "")
	require.NoError(t, err)
	req := createRequest()
	req.ProgrammeIDs = []uint{p.ID}
	view, err := qs.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, []uint{p.ID}, view.Programmes)

	require.NoError(t, svc.DeleteProgramme(ctx, p.ID))

	_, err = svc.GetProgramme(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	reloaded, err := qs.Get(ctx, view.QuestionnaireID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Programmes)
	assert.ErrorIs(t, svc.DeleteProgramme(ctx, p.ID), apperrors.ErrNotFound)
}

func TestCatalogService_Enrolment(t *testing.T) {
	svc, _ := createTestCatalogService(t)
	ctx := context.Background()
	class, err := svc.CreateClass(ctx, "7B", nil)
	require.NoError(t, err)
	person, err := svc.CreatePerson(ctx, "Ada", " Ada@Example.com ", entity.RoleStudent, "password1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", person.Email)

	first, err := svc.Enrol(ctx, class.ID, person.ID)
	require.NoError(t, err)
	again, err := svc.Enrol(ctx, class.ID, person.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "enrolling twice is idempotent")

	members, err := svc.ListMembers(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	require.NoError(t, svc.Unenrol(ctx, class.ID, person.ID))
	assert.ErrorIs(t, svc.Unenrol(ctx, class.ID, person.ID), apperrors.ErrNotFound)
	members, err = svc.ListMembers(ctx, class.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	restored, err := svc.Enrol(ctx, class.ID, person.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, restored.ID, "a removed enrolment is restored")
	assert.True(t, restored.IsActive())

	_, err = svc.Enrol(ctx, class.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_DeleteClass(t *testing.T) {
	svc, qs := createTestCatalogService(t)
	ctx := context.Background()
	class, err := svc.CreateClass(ctx, "8C", nil)
	require.NoError(t, err)
	person, err := svc.CreatePerson(ctx, "Grace", "grace@example.com", entity.RoleStudent, "password1")
	require.NoError(t, err)
	_, err = svc.Enrol(ctx, class.ID, person.ID)
	require.NoError(t, err)
	req := createRequest()
	req.ClassIDs = []uint{class.ID}
	view, err := qs.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClass(ctx, class.ID))

	_, err = svc.GetClass(ctx, class.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	reloaded, err := qs.Get(ctx, view.QuestionnaireID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Classes)
}

func TestCatalogService_CreatePerson_Validation(t *testing.T) {
	svc, _ := createTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		role     entity.Role
		password string
	}{
		{"missing email", "", entity.RoleTeacher, "password1"},
		{"unknown role", "x@example.com", entity.Role("ROOT"), "password1"},
		{"short password", "x@example.com", entity.RoleTeacher, "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePerson(ctx, "X", tt.email, tt.role, tt.password)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	p, err := svc.CreatePerson(ctx, "Staff", "staff@example.com", entity.RoleTeacher, "password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", p.PasswordHash)
	assert.True(t, p.CheckPassword("password1"))
}
