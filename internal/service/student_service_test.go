package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-portal/internal/backend"
	"github.com/noah-isme/sms-portal/internal/models"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

type fakeStudentBackend struct {
	createPayload   *backend.StudentPayload
	updatePayload   *backend.StudentPayload
	updatedSubjects []models.Subject
	deletedID       string
	student         *models.Student
	err             error
}

func (f *fakeStudentBackend) GetStudent(_ context.Context, _, _ string) (*models.Student, error) {
	return f.student, f.err
}

func (f *fakeStudentBackend) CreateStudent(_ context.Context, _ string, payload backend.StudentPayload) (*models.Student, error) {
	f.createPayload = &payload
	return f.student, f.err
}

func (f *fakeStudentBackend) UpdateStudent(_ context.Context, _, _ string, payload backend.StudentPayload) (*models.Student, error) {
	f.updatePayload = &payload
	return f.student, f.err
}

func (f *fakeStudentBackend) UpdateSubjects(_ context.Context, _, _ string, subjects []models.Subject) (*models.Student, error) {
	f.updatedSubjects = subjects
	return f.student, f.err
}

func (f *fakeStudentBackend) DeleteStudent(_ context.Context, _, id string) error {
	f.deletedID = id
	return f.err
}

func validStudentForm() StudentForm {
	return StudentForm{
		Name:       "Bob",
		Email:      "bob@example.com",
		RegNo:      "REG002",
		Gender:     "Male",
		Phone:      "9876543210",
		Department: "Chemistry",
		Password:   "secret1",
	}
}

func TestCreateRequiresPassword(t *testing.T) {
	fake := &fakeStudentBackend{}
	svc := NewStudentService(fake, nil, nil)

	form := validStudentForm()
	form.Password = ""
	_, err := svc.Create(context.Background(), "tok", form)

	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", appErrors.FromError(err).Message)
	assert.Nil(t, fake.createPayload)
}

func TestCreateForwardsPayload(t *testing.T) {
	fake := &fakeStudentBackend{student: &models.Student{ID: "s1"}}
	svc := NewStudentService(fake, nil, nil)

	_, err := svc.Create(context.Background(), "tok", validStudentForm())

	require.NoError(t, err)
	require.NotNil(t, fake.createPayload)
	assert.Equal(t, "REG002", fake.createPayload.RegNo)
	assert.Equal(t, "secret1", fake.createPayload.Password)
}

func TestUpdateKeepsBlankPasswordOut(t *testing.T) {
	fake := &fakeStudentBackend{student: &models.Student{ID: "s1"}}
	svc := NewStudentService(fake, nil, nil)

	form := validStudentForm()
	form.Password = ""
	_, err := svc.Update(context.Background(), "tok", "s1", form)

	require.NoError(t, err)
	require.NotNil(t, fake.updatePayload)
	assert.Empty(t, fake.updatePayload.Password)
}

func TestUpdateProfileSendsSubset(t *testing.T) {
	fake := &fakeStudentBackend{student: &models.Student{ID: "s1"}}
	svc := NewStudentService(fake, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "tok", "s1", ProfileForm{
		Name:       "Bob",
		Email:      "bob@example.com",
		Phone:      "9876543210",
		Department: "Chemistry",
	})

	require.NoError(t, err)
	require.NotNil(t, fake.updatePayload)
	assert.Empty(t, fake.updatePayload.RegNo)
	assert.Empty(t, fake.updatePayload.Gender)
	assert.Equal(t, "Chemistry", fake.updatePayload.Department)
}

func TestDeleteForwardsID(t *testing.T) {
	fake := &fakeStudentBackend{}
	svc := NewStudentService(fake, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "tok", "s9"))
	assert.Equal(t, "s9", fake.deletedID)
}

func TestAddSubjectAppendsAndSaves(t *testing.T) {
	fake := &fakeStudentBackend{student: &models.Student{ID: "s1"}}
	svc := NewStudentService(fake, nil, nil)
	current := []models.Subject{{SubjectName: "Maths", Mark: 80}}

	_, err := svc.AddSubject(context.Background(), "tok", "s1", current, SubjectForm{SubjectName: "Physics", Mark: 72})

	require.NoError(t, err)
	require.Len(t, fake.updatedSubjects, 2)
	assert.Equal(t, "Physics", fake.updatedSubjects[1].SubjectName)
	assert.Equal(t, 72, fake.updatedSubjects[1].Mark)
	assert.Len(t, current, 1)
}

func TestAddSubjectRejectsEmptyName(t *testing.T) {
	fake := &fakeStudentBackend{}
	svc := NewStudentService(fake, nil, nil)

	_, err := svc.AddSubject(context.Background(), "tok", "s1", nil, SubjectForm{Mark: 50})

	require.Error(t, err)
	assert.Equal(t, "Please fill all fields", appErrors.FromError(err).Message)
	assert.Nil(t, fake.updatedSubjects)
}

func TestAddSubjectRejectsOutOfRangeMark(t *testing.T) {
	svc := NewStudentService(&fakeStudentBackend{}, nil, nil)

	_, err := svc.AddSubject(context.Background(), "tok", "s1", nil, SubjectForm{SubjectName: "Maths", Mark: 101})

	require.Error(t, err)
	assert.Equal(t, "Marks must be between 0 and 100", appErrors.FromError(err).Message)
}

func TestUpdateSubjectReplacesByIndex(t *testing.T) {
	fake := &fakeStudentBackend{student: &models.Student{ID: "s1"}}
	svc := NewStudentService(fake, nil, nil)
	current := []models.Subject{
		{SubjectName: "Maths", Mark: 80},
		{SubjectName: "Physics", Mark: 60},
	}

	_, err := svc.UpdateSubject(context.Background(), "tok", "s1", current, 1, SubjectForm{SubjectName: "Physics", Mark: 91})

	require.NoError(t, err)
	require.Len(t, fake.updatedSubjects, 2)
	assert.Equal(t, 91, fake.updatedSubjects[1].Mark)
	assert.Equal(t, 80, fake.updatedSubjects[0].Mark)
}

func TestUpdateSubjectRejectsUnknownIndex(t *testing.T) {
	fake := &fakeStudentBackend{}
	svc := NewStudentService(fake, nil, nil)

	_, err := svc.UpdateSubject(context.Background(), "tok", "s1", []models.Subject{{SubjectName: "Maths"}}, 3, SubjectForm{SubjectName: "Maths", Mark: 10})

	require.Error(t, err)
	assert.Nil(t, fake.updatedSubjects)
}

func TestRemoveSubjectFiltersByIndex(t *testing.T) {
	fake := &fakeStudentBackend{student: &models.Student{ID: "s1"}}
	svc := NewStudentService(fake, nil, nil)
	current := []models.Subject{
		{SubjectName: "Maths", Mark: 80},
		{SubjectName: "Physics", Mark: 60},
		{SubjectName: "Biology", Mark: 70},
	}

	_, err := svc.RemoveSubject(context.Background(), "tok", "s1", current, 1)

	require.NoError(t, err)
	require.Len(t, fake.updatedSubjects, 2)
	assert.Equal(t, "Maths", fake.updatedSubjects[0].SubjectName)
	assert.Equal(t, "Biology", fake.updatedSubjects[1].SubjectName)
}

func TestRemoveSubjectRejectsNegativeIndex(t *testing.T) {
	fake := &fakeStudentBackend{}
	svc := NewStudentService(fake, nil, nil)

	_, err := svc.RemoveSubject(context.Background(), "tok", "s1", []models.Subject{{SubjectName: "Maths"}}, -1)

	require.Error(t, err)
	assert.Nil(t, fake.updatedSubjects)
}
