package college_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/users"
	"github.com/stretchr/testify/require"
)

const testToken = "access-token-1"

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          []byte
}

// newTestBackend serves fixed JSON responses keyed by "METHOD /path" and records every request
func newTestBackend(t *testing.T, responses map[string]string, status map[string]int) (*college.Client, *[]recordedRequest) {
	t.Helper()

	var recorded []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})

		key := r.Method + " " + r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		if code, ok := status[key]; ok {
			w.WriteHeader(code)
		}
		resp, ok := responses[key]
		if !ok {
			if _, hasStatus := status[key]; !hasStatus {
				w.WriteHeader(http.StatusNotFound)
			}
			return
		}
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)

	return college.NewClient(srv.URL+"/api/", college.WithHTTPClient(srv.Client())), &recorded
}

func TestLogin(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"POST /api/token/": `{"access":"a1","refresh":"r1"}`,
	}, nil)

	pair, err := client.Login(context.Background(), college.Credentials{Username: "jdoe", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, college.TokenPair{Access: "a1", Refresh: "r1"}, pair)

	req := (*recorded)[0]
	require.Empty(t, req.Authorization)
	require.Equal(t, "application/json", req.ContentType)
	require.JSONEq(t, `{"username":"jdoe","password":"pw"}`, string(req.Body))
}

func TestLoginUnauthorized(t *testing.T) {
	client, _ := newTestBackend(t, map[string]string{
		"POST /api/token/": `{"detail":"No active account found with the given credentials"}`,
	}, map[string]int{"POST /api/token/": http.StatusUnauthorized})

	_, err := client.Login(context.Background(), college.Credentials{Username: "jdoe", Password: "bad"})
	require.ErrorIs(t, err, college.ErrUnauthorized)

	var apiErr *college.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "No active account found with the given credentials", apiErr.Detail)
}

func TestRefresh(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"POST /api/token/refresh/": `{"access":"a2"}`,
	}, nil)

	access, err := client.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "a2", access)
	require.JSONEq(t, `{"refresh":"r1"}`, string((*recorded)[0].Body))
}

func TestProbesSendBearerToken(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"GET /api/faculty/":  `[{"id":7,"user":{"username":"prof","first_name":"Grace"},"department":"CS"}]`,
		"GET /api/students/": `[]`,
	}, nil)

	faculty, err := client.ListFaculty(context.Background(), testToken)
	require.NoError(t, err)
	require.Len(t, faculty, 1)
	require.Equal(t, int64(7), faculty[0].ID)
	require.Equal(t, "CS", faculty[0].Department)
	require.Equal(t, users.User{Username: "prof", FirstName: "Grace"}, faculty[0].User)

	students, err := client.ListStudents(context.Background(), testToken)
	require.NoError(t, err)
	require.Empty(t, students)

	for _, req := range *recorded {
		require.Equal(t, "Bearer "+testToken, req.Authorization)
	}
}

func TestProbeForbidden(t *testing.T) {
	client, _ := newTestBackend(t, nil, map[string]int{"GET /api/faculty/": http.StatusForbidden})

	_, err := client.ListFaculty(context.Background(), testToken)
	require.ErrorIs(t, err, college.ErrUnauthorized)
}

func TestNestedCollections(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"GET /api/faculty/7/my_students/":  `[{"id":3,"user":{"email":"s@example.com"},"enrollment_date":"2024-09-01"}]`,
		"GET /api/students/3/my_subjects/": `[{"id":1,"name":"Algebra","code":"MA101"}]`,
		"GET /api/subjects/":               `[{"id":1,"name":"Algebra"},{"id":2,"name":"Physics","faculty_name":"Grace Hopper"}]`,
		"GET /api/students/3/":             `{"id":3,"user":{"username":"stud"},"gender":"F"}`,
	}, nil)
	ctx := context.Background()

	students, err := client.FacultyStudents(ctx, testToken, 7)
	require.NoError(t, err)
	require.Equal(t, "2024-09-01", students[0].EnrollmentDate)

	mySubjects, err := client.StudentSubjects(ctx, testToken, 3)
	require.NoError(t, err)
	require.Equal(t, "MA101", mySubjects[0].Code)

	subjects, err := client.ListSubjects(ctx, testToken)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	require.Equal(t, "Grace Hopper", subjects[1].FacultyName)

	student, err := client.GetStudent(ctx, testToken, 3)
	require.NoError(t, err)
	require.Equal(t, "stud", student.User.Username)
	require.Len(t, *recorded, 4)
}

func TestCreateStudentMultipart(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"POST /api/students/": `{"id":11,"user":{"username":"new"}}`,
	}, map[string]int{"POST /api/students/": http.StatusCreated})

	req := college.CreateStudentRequest{
		User: college.NewStudentUser{
			Username: "new", Email: "new@example.com", Password: "pw",
			FirstName: "New", LastName: "Student", ContactNumber: "555",
		},
		DateOfBirth:    "2004-02-03",
		Gender:         "O",
		BloodGroup:     "A+",
		Address:        "1 Main St",
		ProfilePicName: "me.png",
		ProfilePic:     strings.NewReader("png-bytes"),
	}

	student, err := client.CreateStudent(context.Background(), testToken, req)
	require.NoError(t, err)
	require.Equal(t, int64(11), student.ID)

	rec := (*recorded)[0]
	require.True(t, strings.HasPrefix(rec.ContentType, "multipart/form-data; boundary="))

	httpReq := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(rec.Body)))
	httpReq.Header.Set("Content-Type", rec.ContentType)
	require.NoError(t, httpReq.ParseMultipartForm(1<<20))
	require.Equal(t, "new", httpReq.FormValue("user.username"))
	require.Equal(t, "new@example.com", httpReq.FormValue("user.email"))
	require.Equal(t, "2004-02-03", httpReq.FormValue("date_of_birth"))
	require.Equal(t, "O", httpReq.FormValue("gender"))

	file, header, err := httpReq.FormFile("profile_pic")
	require.NoError(t, err)
	defer file.Close()
	require.Equal(t, "me.png", header.Filename)
	data, _ := io.ReadAll(file)
	require.Equal(t, "png-bytes", string(data))
}

func TestUpdateStudentOmitsUnchangedUsername(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"PATCH /api/students/3/update_student/": `{"id":3}`,
	}, nil)

	_, err := client.UpdateStudent(context.Background(), testToken, 3, college.UpdateStudentRequest{
		User:    college.UpdateStudentUser{Email: "s@example.com", FirstName: "S", LastName: "T"},
		Address: "2 High St",
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal((*recorded)[0].Body, &body))
	user := body["user"].(map[string]any)
	_, hasUsername := user["username"]
	require.False(t, hasUsername)
	require.Equal(t, "2 High St", body["address"])
}

func TestAddStudentToSubject(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"POST /api/faculty/7/add_student/": `{"status":"student added"}`,
	}, nil)

	err := client.AddStudentToSubject(context.Background(), testToken, 7, college.AddStudentRequest{SubjectID: 1, StudentID: 3})
	require.NoError(t, err)
	require.JSONEq(t, `{"subject_id":1,"student_id":3}`, string((*recorded)[0].Body))
}

func TestAddStudentToSubjectBackendDetail(t *testing.T) {
	client, _ := newTestBackend(t, map[string]string{
		"POST /api/faculty/7/add_student/": `{"detail":"Student already enrolled"}`,
	}, map[string]int{"POST /api/faculty/7/add_student/": http.StatusBadRequest})

	err := client.AddStudentToSubject(context.Background(), testToken, 7, college.AddStudentRequest{SubjectID: 1, StudentID: 3})
	var apiErr *college.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Student already enrolled", apiErr.Detail)
	require.NotErrorIs(t, err, college.ErrUnauthorized)
}

func TestCheckUsername(t *testing.T) {
	client, recorded := newTestBackend(t, map[string]string{
		"GET /api/check-username/": `{"available":true}`,
	}, nil)

	ok, err := client.CheckUsername(context.Background(), testToken, "new name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "username=new+name", (*recorded)[0].Query)
}

func TestValidate(t *testing.T) {
	require.Error(t, college.Validate(college.Credentials{Username: "jdoe"}))
	require.NoError(t, college.Validate(college.Credentials{Username: "jdoe", Password: "pw"}))

	bad := college.CreateStudentRequest{Gender: "X"}
	require.Error(t, college.Validate(bad))

	require.Error(t, college.Validate(college.AddStudentRequest{SubjectID: 1}))
	require.NoError(t, college.Validate(college.AddStudentRequest{SubjectID: 1, StudentID: 2}))
}
