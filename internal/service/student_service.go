package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/backend"
	"github.com/noah-isme/sms-portal/internal/models"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

type studentBackend interface {
	GetStudent(ctx context.Context, token, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, token string, payload backend.StudentPayload) (*models.Student, error)
	UpdateStudent(ctx context.Context, token, id string, payload backend.StudentPayload) (*models.Student, error)
	UpdateSubjects(ctx context.Context, token, id string, subjects []models.Subject) (*models.Student, error)
	DeleteStudent(ctx context.Context, token, id string) error
}

// StudentForm carries create/edit student fields. Password is required on
// create, optional on edit (blank keeps the current one).
type StudentForm struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	RegNo      string `form:"regNo" validate:"required"`
	Gender     string `form:"gender" validate:"required"`
	Phone      string `form:"phone" validate:"required,len=10,numeric"`
	Department string `form:"department" validate:"required"`
	Password   string `form:"password" validate:"omitempty,min=6"`
}

// ProfileForm carries the student's self-editable fields.
type ProfileForm struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Phone      string `form:"phone" validate:"required,len=10,numeric"`
	Department string `form:"department" validate:"required"`
}

// SubjectForm is one row of the subject editor.
type SubjectForm struct {
	SubjectName string `form:"subjectName" validate:"required"`
	Mark        int    `form:"mark" validate:"min=0,max=100"`
}

// StudentService validates student forms and forwards writes to the backend.
type StudentService struct {
	backend   studentBackend
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(b studentBackend, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{backend: b, validator: validate, logger: logger}
}

// Get loads a single student record.
func (s *StudentService) Get(ctx context.Context, token, id string) (*models.Student, error) {
	return s.backend.GetStudent(ctx, token, id)
}

// Create validates and creates a student on behalf of an admin.
func (s *StudentService) Create(ctx context.Context, token string, form StudentForm) (*models.Student, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, formError(err)
	}
	if form.Password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Password must be at least 6 characters")
	}
	return s.backend.CreateStudent(ctx, token, backend.StudentPayload{
		Name:       form.Name,
		Email:      form.Email,
		RegNo:      form.RegNo,
		Gender:     form.Gender,
		Phone:      form.Phone,
		Department: form.Department,
		Password:   form.Password,
	})
}

// Update validates and updates a student record. A blank password is not
// sent, leaving the stored one untouched.
func (s *StudentService) Update(ctx context.Context, token, id string, form StudentForm) (*models.Student, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, formError(err)
	}
	return s.backend.UpdateStudent(ctx, token, id, backend.StudentPayload{
		Name:       form.Name,
		Email:      form.Email,
		RegNo:      form.RegNo,
		Gender:     form.Gender,
		Phone:      form.Phone,
		Department: form.Department,
		Password:   form.Password,
	})
}

// UpdateProfile applies a student's self-edit.
func (s *StudentService) UpdateProfile(ctx context.Context, token, id string, form ProfileForm) (*models.Student, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, formError(err)
	}
	return s.backend.UpdateStudent(ctx, token, id, backend.StudentPayload{
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Department: form.Department,
	})
}

// Delete removes a student record. The interactive confirmation happens
// before this is called; declining never reaches here.
func (s *StudentService) Delete(ctx context.Context, token, id string) error {
	return s.backend.DeleteStudent(ctx, token, id)
}

// AddSubject validates and appends one subject, saving the whole list.
func (s *StudentService) AddSubject(ctx context.Context, token, id string, current []models.Subject, form SubjectForm) (*models.Student, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, subjectFormError(err)
	}
	updated := append(append([]models.Subject{}, current...), models.Subject{SubjectName: form.SubjectName, Mark: form.Mark})
	return s.backend.UpdateSubjects(ctx, token, id, updated)
}

// UpdateSubject validates and replaces the subject at index, saving the
// whole list. The index is the subject's identity; out-of-range is rejected.
func (s *StudentService) UpdateSubject(ctx context.Context, token, id string, current []models.Subject, index int, form SubjectForm) (*models.Student, error) {
	if index < 0 || index >= len(current) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unknown subject")
	}
	if err := s.validator.Struct(form); err != nil {
		return nil, subjectFormError(err)
	}
	updated := append([]models.Subject{}, current...)
	updated[index] = models.Subject{SubjectName: form.SubjectName, Mark: form.Mark}
	return s.backend.UpdateSubjects(ctx, token, id, updated)
}

// RemoveSubject filters out the subject at index and saves the list.
func (s *StudentService) RemoveSubject(ctx context.Context, token, id string, current []models.Subject, index int) (*models.Student, error) {
	if index < 0 || index >= len(current) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unknown subject")
	}
	updated := make([]models.Subject, 0, len(current)-1)
	for i, sub := range current {
		if i != index {
			updated = append(updated, sub)
		}
	}
	return s.backend.UpdateSubjects(ctx, token, id, updated)
}

func subjectFormError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Field() == "SubjectName" {
			return appErrors.Clone(appErrors.ErrValidation, "Please fill all fields")
		}
		return appErrors.Clone(appErrors.ErrValidation, "Marks must be between 0 and 100")
	}
	return formError(err)
}
