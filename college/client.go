package college

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Backend API paths, relative to the configured API root
const (
	pathToken         = "token/"
	pathTokenRefresh  = "token/refresh/"
	pathFaculty       = "faculty/"
	pathStudents      = "students/"
	pathSubjects      = "subjects/"
	pathCheckUsername = "check-username/"
)

// ResourceClient is the REST collaborator used by the session resolver and the views
type ResourceClient interface {
	Login(ctx context.Context, creds Credentials) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)

	ListFaculty(ctx context.Context, token string) ([]Faculty, error)
	ListStudents(ctx context.Context, token string) ([]Student, error)

	FacultyStudents(ctx context.Context, token string, facultyID int64) ([]Student, error)
	StudentSubjects(ctx context.Context, token string, studentID int64) ([]Subject, error)
	ListSubjects(ctx context.Context, token string) ([]Subject, error)
	GetStudent(ctx context.Context, token string, studentID int64) (*Student, error)
	CreateStudent(ctx context.Context, token string, req CreateStudentRequest) (*Student, error)
	UpdateStudent(ctx context.Context, token string, studentID int64, req UpdateStudentRequest) (*Student, error)
	AddStudentToSubject(ctx context.Context, token string, facultyID int64, req AddStudentRequest) error
	CheckUsername(ctx context.Context, token, username string) (bool, error)
}

var _ ResourceClient = (*Client)(nil)

// Client talks to the college REST backend. Authenticated calls carry
// "Authorization: Bearer <token>".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http client (tests use httptest clients)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	if err := c.doJSON(ctx, "", http.MethodPost, pathToken, creds, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	body := map[string]string{"refresh": refreshToken}
	if err := c.doJSON(ctx, "", http.MethodPost, pathTokenRefresh, body, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// ListFaculty returns the faculty profiles visible to the token's caller
func (c *Client) ListFaculty(ctx context.Context, token string) ([]Faculty, error) {
	var faculty []Faculty
	if err := c.doJSON(ctx, token, http.MethodGet, pathFaculty, nil, &faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// ListStudents returns the student profiles visible to the token's caller
func (c *Client) ListStudents(ctx context.Context, token string) ([]Student, error) {
	var students []Student
	if err := c.doJSON(ctx, token, http.MethodGet, pathStudents, nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) FacultyStudents(ctx context.Context, token string, facultyID int64) ([]Student, error) {
	var students []Student
	path := pathFaculty + strconv.FormatInt(facultyID, 10) + "/my_students/"
	if err := c.doJSON(ctx, token, http.MethodGet, path, nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) StudentSubjects(ctx context.Context, token string, studentID int64) ([]Subject, error) {
	var subjects []Subject
	path := pathStudents + strconv.FormatInt(studentID, 10) + "/my_subjects/"
	if err := c.doJSON(ctx, token, http.MethodGet, path, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) ListSubjects(ctx context.Context, token string) ([]Subject, error) {
	var subjects []Subject
	if err := c.doJSON(ctx, token, http.MethodGet, pathSubjects, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) GetStudent(ctx context.Context, token string, studentID int64) (*Student, error) {
	var student Student
	path := pathStudents + strconv.FormatInt(studentID, 10) + "/"
	if err := c.doJSON(ctx, token, http.MethodGet, path, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent posts the new student as multipart/form-data, the only
// encoding the backend accepts for the optional profile picture.
func (c *Client) CreateStudent(ctx context.Context, token string, req CreateStudentRequest) (*Student, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"user.username", req.User.Username},
		{"user.email", req.User.Email},
		{"user.password", req.User.Password},
		{"user.first_name", req.User.FirstName},
		{"user.last_name", req.User.LastName},
		{"user.contact_number", req.User.ContactNumber},
		{"date_of_birth", req.DateOfBirth},
		{"gender", req.Gender},
		{"blood_group", req.BloodGroup},
		{"address", req.Address},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("[CreateStudent] write field %s: %w", f[0], err)
		}
	}

	if req.ProfilePic != nil {
		part, err := mw.CreateFormFile("profile_pic", req.ProfilePicName)
		if err != nil {
			return nil, fmt.Errorf("[CreateStudent] create profile_pic part: %w", err)
		}
		if _, err := io.Copy(part, req.ProfilePic); err != nil {
			return nil, fmt.Errorf("[CreateStudent] copy profile_pic: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("[CreateStudent] close multipart: %w", err)
	}

	var student Student
	if err := c.do(ctx, token, http.MethodPost, pathStudents, nil, &buf, mw.FormDataContentType(), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) UpdateStudent(ctx context.Context, token string, studentID int64, req UpdateStudentRequest) (*Student, error) {
	var student Student
	path := pathStudents + strconv.FormatInt(studentID, 10) + "/update_student/"
	if err := c.doJSON(ctx, token, http.MethodPatch, path, req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) AddStudentToSubject(ctx context.Context, token string, facultyID int64, req AddStudentRequest) error {
	path := pathFaculty + strconv.FormatInt(facultyID, 10) + "/add_student/"
	return c.doJSON(ctx, token, http.MethodPost, path, req, nil)
}

func (c *Client) CheckUsername(ctx context.Context, token, username string) (bool, error) {
	var resp struct {
		Available bool `json:"available"`
	}
	query := url.Values{"username": []string{username}}
	if err := c.do(ctx, token, http.MethodGet, pathCheckUsername, query, nil, "", &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}

func (c *Client) doJSON(ctx context.Context, token, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, token, method, path, nil, body, contentType, out)
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// client returns the plain http client for anonymous calls and an oauth2
// bearer client, layered over the same transport, for authenticated ones.
func (c *Client) client(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	authed := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), source)
	authed.Timeout = c.httpClient.Timeout
	return authed
}
