package portal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/college-portal/college"
)

// StudentForm is the faculty "Create Student" form
type StudentForm struct {
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	ContactNumber string
	DateOfBirth   string
	Gender        string
	BloodGroup    string
	Address       string

	ProfilePicName string
	ProfilePic     io.Reader
}

func (f StudentForm) request() college.CreateStudentRequest {
	return college.CreateStudentRequest{
		User: college.NewStudentUser{
			Username:      strings.TrimSpace(f.Username),
			Email:         strings.TrimSpace(f.Email),
			Password:      f.Password,
			FirstName:     strings.TrimSpace(f.FirstName),
			LastName:      strings.TrimSpace(f.LastName),
			ContactNumber: strings.TrimSpace(f.ContactNumber),
		},
		DateOfBirth:    strings.TrimSpace(f.DateOfBirth),
		Gender:         f.Gender,
		BloodGroup:     strings.TrimSpace(f.BloodGroup),
		Address:        strings.TrimSpace(f.Address),
		ProfilePicName: f.ProfilePicName,
		ProfilePic:     f.ProfilePic,
	}
}

// ProfileForm is the student "Edit Profile" form
type ProfileForm struct {
	Username      string `validate:"required"`
	Email         string `validate:"required,email"`
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	ContactNumber string
	DateOfBirth   string `validate:"omitempty,datetime=2006-01-02"`
	Gender        string `validate:"omitempty,oneof=M F O"`
	BloodGroup    string
	Address       string
}

// ProfileFormFrom prefills the form with the student's current details
func ProfileFormFrom(s college.Student) ProfileForm {
	return ProfileForm{
		Username:      s.User.Username,
		Email:         s.User.Email,
		FirstName:     s.User.FirstName,
		LastName:      s.User.LastName,
		ContactNumber: s.User.ContactNumber,
		DateOfBirth:   s.DateOfBirth,
		Gender:        s.Gender,
		BloodGroup:    s.BloodGroup,
		Address:       s.Address,
	}
}

func (f ProfileForm) trimmed() ProfileForm {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

// request builds the PATCH body. The username is only sent when it changed.
func (f ProfileForm) request(currentUsername string) college.UpdateStudentRequest {
	req := college.UpdateStudentRequest{
		User: college.UpdateStudentUser{
			Email:         f.Email,
			FirstName:     f.FirstName,
			LastName:      f.LastName,
			ContactNumber: f.ContactNumber,
		},
		DateOfBirth: f.DateOfBirth,
		Gender:      f.Gender,
		BloodGroup:  f.BloodGroup,
		Address:     f.Address,
	}
	if f.Username != currentUsername {
		req.User.Username = f.Username
	}
	return req
}

// validateForm runs the struct tags of v and flattens failures into ErrInvalidForm
func validateForm(v any) error {
	err := college.Validate(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeField(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(problems, "; "))
}

func describeField(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "datetime":
		return name + " must be a date (YYYY-MM-DD)"
	case "oneof":
		return name + " must be one of " + fe.Param()
	case "gt":
		return name + " must be a positive id"
	case "required_with":
		return name + " is required with " + fe.Param()
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}
