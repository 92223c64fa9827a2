package college

import (
	"io"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of any request or form value
func Validate(v any) error {
	return validate.Struct(v)
}

// NewStudentUser holds the account part of a new student
type NewStudentUser struct {
	Username      string `validate:"required"`
	Email         string `validate:"required,email"`
	Password      string `validate:"required"`
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	ContactNumber string `validate:"required"`
}

// CreateStudentRequest is sent as multipart/form-data with "user."-prefixed account fields
type CreateStudentRequest struct {
	User        NewStudentUser `validate:"required"`
	DateOfBirth string         `validate:"required,datetime=2006-01-02"`
	Gender      string         `validate:"required,oneof=M F O"`
	BloodGroup  string         `validate:"required"`
	Address     string         `validate:"required"`

	ProfilePicName string    `validate:"required_with=ProfilePic"`
	ProfilePic     io.Reader `validate:"-"`
}

type UpdateStudentUser struct {
	Username      string `json:"username,omitempty"` // Only sent when changed
	Email         string `json:"email" validate:"required,email"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	ContactNumber string `json:"contact_number"`
}

// UpdateStudentRequest is the PATCH body of students/{id}/update_student/
type UpdateStudentRequest struct {
	User        UpdateStudentUser `json:"user"`
	DateOfBirth string            `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender      string            `json:"gender,omitempty" validate:"omitempty,oneof=M F O"`
	BloodGroup  string            `json:"blood_group,omitempty"`
	Address     string            `json:"address,omitempty"`
}

type AddStudentRequest struct {
	SubjectID int64 `json:"subject_id" validate:"required,gt=0"`
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
}
