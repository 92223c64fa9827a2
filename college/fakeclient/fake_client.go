package fakeclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/jrsteele09/college-portal/college"
)

var _ college.ResourceClient = (*FakeClient)(nil)

// Account is what a single token can see on the fake backend
type Account struct {
	Faculty  []college.Faculty
	Students []college.Student
}

// FakeClient is an in-memory college backend. Unknown tokens get 401s.
type FakeClient struct {
	lock sync.RWMutex

	passwords map[string]string            // username -> password
	logins    map[string]college.TokenPair // username -> issued tokens
	refreshes map[string]string            // refresh token -> access token
	accounts  map[string]Account           // access token -> visible profiles

	subjects    []college.Subject
	enrollments map[int64][]int64 // studentID -> subjectIDs
	students    map[int64]college.Student
	taken       map[string]bool // usernames in use
	nextID      int64

	// ProbeErrors forces an error for a collection ("faculty" or "students")
	ProbeErrors map[string]error
	calls       []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		passwords:   make(map[string]string),
		logins:      make(map[string]college.TokenPair),
		refreshes:   make(map[string]string),
		accounts:    make(map[string]Account),
		enrollments: make(map[int64][]int64),
		students:    make(map[int64]college.Student),
		taken:       make(map[string]bool),
		ProbeErrors: make(map[string]error),
		nextID:      1000,
	}
}

// AddAccount registers a token and the profiles it can see
func (fc *FakeClient) AddAccount(token string, account Account) {
	fc.lock.Lock()
	defer fc.lock.Unlock()

	fc.accounts[token] = account
	for _, s := range account.Students {
		fc.students[s.ID] = s
		fc.taken[s.User.Username] = true
	}
}

// AddUser registers credentials that log in to the given token pair
func (fc *FakeClient) AddUser(username, password string, pair college.TokenPair) {
	fc.lock.Lock()
	defer fc.lock.Unlock()

	fc.passwords[username] = password
	fc.logins[username] = pair
	fc.taken[username] = true
	if pair.Refresh != "" {
		fc.refreshes[pair.Refresh] = pair.Access
	}
}

func (fc *FakeClient) AddSubject(subject college.Subject) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.subjects = append(fc.subjects, subject)
}

// RevokeToken makes every further call with token fail with 401
func (fc *FakeClient) RevokeToken(token string) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	delete(fc.accounts, token)
}

// Calls returns the recorded call names in order
func (fc *FakeClient) Calls() []string {
	fc.lock.RLock()
	defer fc.lock.RUnlock()
	return append([]string(nil), fc.calls...)
}

func (fc *FakeClient) Enrollments(studentID int64) []int64 {
	fc.lock.RLock()
	defer fc.lock.RUnlock()
	return append([]int64(nil), fc.enrollments[studentID]...)
}

func (fc *FakeClient) Student(studentID int64) (college.Student, bool) {
	fc.lock.RLock()
	defer fc.lock.RUnlock()
	s, ok := fc.students[studentID]
	return s, ok
}

func (fc *FakeClient) Login(ctx context.Context, creds college.Credentials) (college.TokenPair, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "login")

	if pw, ok := fc.passwords[creds.Username]; !ok || pw != creds.Password {
		return college.TokenPair{}, &college.APIError{StatusCode: http.StatusUnauthorized, Detail: "No active account found with the given credentials"}
	}
	return fc.logins[creds.Username], nil
}

func (fc *FakeClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "refresh")

	access, ok := fc.refreshes[refreshToken]
	if !ok {
		return "", &college.APIError{StatusCode: http.StatusUnauthorized, Detail: "Token is invalid or expired"}
	}
	return access, nil
}

func (fc *FakeClient) ListFaculty(ctx context.Context, token string) ([]college.Faculty, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "faculty")

	if err := fc.ProbeErrors["faculty"]; err != nil {
		return nil, err
	}
	account, err := fc.account(token)
	if err != nil {
		return nil, err
	}
	return append([]college.Faculty(nil), account.Faculty...), nil
}

func (fc *FakeClient) ListStudents(ctx context.Context, token string) ([]college.Student, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "students")

	if err := fc.ProbeErrors["students"]; err != nil {
		return nil, err
	}
	account, err := fc.account(token)
	if err != nil {
		return nil, err
	}
	return append([]college.Student(nil), account.Students...), nil
}

func (fc *FakeClient) FacultyStudents(ctx context.Context, token string, facultyID int64) ([]college.Student, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "my_students")

	if _, err := fc.account(token); err != nil {
		return nil, err
	}
	students := make([]college.Student, 0)
	for id := range fc.enrollments {
		if s, ok := fc.students[id]; ok {
			students = append(students, s)
		}
	}
	return students, nil
}

func (fc *FakeClient) StudentSubjects(ctx context.Context, token string, studentID int64) ([]college.Subject, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "my_subjects")

	if _, err := fc.account(token); err != nil {
		return nil, err
	}
	subjects := make([]college.Subject, 0)
	for _, subjectID := range fc.enrollments[studentID] {
		for _, s := range fc.subjects {
			if s.ID == subjectID {
				subjects = append(subjects, s)
			}
		}
	}
	return subjects, nil
}

func (fc *FakeClient) ListSubjects(ctx context.Context, token string) ([]college.Subject, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "subjects")

	if _, err := fc.account(token); err != nil {
		return nil, err
	}
	return append([]college.Subject(nil), fc.subjects...), nil
}

func (fc *FakeClient) GetStudent(ctx context.Context, token string, studentID int64) (*college.Student, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "get_student")

	if _, err := fc.account(token); err != nil {
		return nil, err
	}
	s, ok := fc.students[studentID]
	if !ok {
		return nil, &college.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
	}
	return &s, nil
}

func (fc *FakeClient) CreateStudent(ctx context.Context, token string, req college.CreateStudentRequest) (*college.Student, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "create_student")

	if _, err := fc.account(token); err != nil {
		return nil, err
	}
	if fc.taken[req.User.Username] {
		return nil, &college.APIError{StatusCode: http.StatusBadRequest, Detail: "A user with that username already exists."}
	}

	fc.nextID++
	s := college.Student{
		ID:          fc.nextID,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		BloodGroup:  req.BloodGroup,
		Address:     req.Address,
	}
	s.User.Username = req.User.Username
	s.User.Email = req.User.Email
	s.User.FirstName = req.User.FirstName
	s.User.LastName = req.User.LastName
	s.User.ContactNumber = req.User.ContactNumber

	fc.students[s.ID] = s
	fc.taken[s.User.Username] = true
	return &s, nil
}

func (fc *FakeClient) UpdateStudent(ctx context.Context, token string, studentID int64, req college.UpdateStudentRequest) (*college.Student, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "update_student")

	if _, err := fc.account(token); err != nil {
		return nil, err
	}
	s, ok := fc.students[studentID]
	if !ok {
		return nil, &college.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
	}
	if req.User.Username != "" && req.User.Username != s.User.Username {
		if fc.taken[req.User.Username] {
			return nil, &college.APIError{StatusCode: http.StatusBadRequest, Detail: "Username already taken"}
		}
		delete(fc.taken, s.User.Username)
		fc.taken[req.User.Username] = true
		s.User.Username = req.User.Username
	}
	s.User.Email = req.User.Email
	s.User.FirstName = req.User.FirstName
	s.User.LastName = req.User.LastName
	s.User.ContactNumber = req.User.ContactNumber
	s.DateOfBirth = req.DateOfBirth
	s.Gender = req.Gender
	s.BloodGroup = req.BloodGroup
	s.Address = req.Address

	fc.students[studentID] = s
	return &s, nil
}

func (fc *FakeClient) AddStudentToSubject(ctx context.Context, token string, facultyID int64, req college.AddStudentRequest) error {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "add_student")

	if _, err := fc.account(token); err != nil {
		return err
	}
	if _, ok := fc.students[req.StudentID]; !ok {
		return &college.APIError{StatusCode: http.StatusNotFound, Detail: "Student not found"}
	}
	for _, id := range fc.enrollments[req.StudentID] {
		if id == req.SubjectID {
			return &college.APIError{StatusCode: http.StatusBadRequest, Detail: "Student already enrolled"}
		}
	}
	fc.enrollments[req.StudentID] = append(fc.enrollments[req.StudentID], req.SubjectID)
	return nil
}

func (fc *FakeClient) CheckUsername(ctx context.Context, token, username string) (bool, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.calls = append(fc.calls, "check_username")

	if _, err := fc.account(token); err != nil {
		return false, err
	}
	return !fc.taken[username], nil
}

func (fc *FakeClient) account(token string) (Account, error) {
	account, ok := fc.accounts[token]
	if !ok {
		return Account{}, &college.APIError{StatusCode: http.StatusUnauthorized, Detail: fmt.Sprintf("token %q not valid", token)}
	}
	return account, nil
}
