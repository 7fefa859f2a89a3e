package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/backend"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

type authBackend interface {
	AdminLogin(ctx context.Context, req backend.AdminLoginRequest) (*backend.AuthResponse, error)
	StudentLogin(ctx context.Context, req backend.StudentLoginRequest) (*backend.AuthResponse, error)
	RegisterStudent(ctx context.Context, req backend.RegisterStudentRequest) (*backend.AuthResponse, error)
}

// AdminLoginForm is the admin login form payload.
type AdminLoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// StudentLoginForm is the student login form payload.
type StudentLoginForm struct {
	RegNo    string `form:"regNo" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is the self-registration form payload.
type RegisterForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	RegNo           string `form:"regNo" validate:"required"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	Gender          string `form:"gender" validate:"required"`
	Phone           string `form:"phone" validate:"required,len=10,numeric"`
	Department      string `form:"department" validate:"required"`
}

// AuthService validates credential forms and exchanges them with the backend.
// It never inspects or stores passwords beyond forwarding them.
type AuthService struct {
	backend   authBackend
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(b authBackend, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{backend: b, validator: validate, logger: logger}
}

// AdminLogin validates and forwards an admin login.
func (s *AuthService) AdminLogin(ctx context.Context, form AdminLoginForm) (*backend.AuthResponse, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, formError(err)
	}
	return s.backend.AdminLogin(ctx, backend.AdminLoginRequest{Email: form.Email, Password: form.Password})
}

// StudentLogin validates and forwards a student login.
func (s *AuthService) StudentLogin(ctx context.Context, form StudentLoginForm) (*backend.AuthResponse, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, formError(err)
	}
	return s.backend.StudentLogin(ctx, backend.StudentLoginRequest{RegNo: form.RegNo, Password: form.Password})
}

// Register validates the registration form and creates the account. On
// success the backend also issues the student's first session.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*backend.AuthResponse, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, formError(err)
	}
	return s.backend.RegisterStudent(ctx, backend.RegisterStudentRequest{
		Name:       form.Name,
		Email:      form.Email,
		RegNo:      form.RegNo,
		Password:   form.Password,
		Gender:     form.Gender,
		Phone:      form.Phone,
		Department: form.Department,
	})
}

// formError maps a validator error to a user-facing validation error with a
// message for the first failing field.
func formError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Please fill all required fields")
	}
	return appErrors.Clone(appErrors.ErrValidation, fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "ConfirmPassword" && fe.Tag() == "eqfield":
		return "Passwords do not match"
	case fe.Field() == "Password" && fe.Tag() == "min":
		return "Password must be at least 6 characters"
	case fe.Field() == "Phone" && (fe.Tag() == "len" || fe.Tag() == "numeric"):
		return "Phone number must be 10 digits"
	case fe.Field() == "Email" && fe.Tag() == "email":
		return "Please enter a valid email address"
	case fe.Tag() == "required":
		return "Please fill all required fields"
	default:
		return "Invalid value for " + fe.Field()
	}
}
