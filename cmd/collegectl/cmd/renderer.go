package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/portal"
	"github.com/pterm/pterm"
)

// terminalRenderer prints portal pages with pterm
type terminalRenderer struct {
	out io.Writer
}

var _ portal.Renderer = (*terminalRenderer)(nil)

func newTerminalRenderer(out io.Writer) *terminalRenderer {
	return &terminalRenderer{out: out}
}

func (tr *terminalRenderer) Render(_ context.Context, page portal.Page) error {
	fmt.Fprint(tr.out, pterm.DefaultSection.Sprintln(page.Title))
	for _, notice := range page.Notices {
		fmt.Fprint(tr.out, pterm.Info.Sprintln(notice.Text))
	}

	switch data := page.Data.(type) {
	case portal.HomeData:
		return tr.home(data)
	case portal.SubjectsData:
		return tr.subjects(data.Subjects)
	case portal.EnrollData:
		if err := tr.subjects(data.Subjects); err != nil {
			return err
		}
		fmt.Fprint(tr.out, pterm.Info.Sprintln("Enroll with: collegectl enroll --subject <id> --student <id>"))
	case portal.ProfileData:
		return tr.student(data.Student)
	case portal.StudentForm:
		fmt.Fprint(tr.out, pterm.Info.Sprintln("Create with: collegectl students create --help"))
	}
	return nil
}

func (tr *terminalRenderer) home(data portal.HomeData) error {
	if data.Faculty != nil {
		fmt.Fprintf(tr.out, "%s, %s\n", data.Faculty.User.FullName(), data.Faculty.Department)
		return tr.students(data.Students)
	}
	if data.Student != nil {
		if err := tr.student(data.Student); err != nil {
			return err
		}
		return tr.subjects(data.Subjects)
	}
	return nil
}

func (tr *terminalRenderer) student(s *college.Student) error {
	if s == nil {
		return nil
	}
	return tr.table(false, pterm.TableData{
		{"ID", strconv.FormatInt(s.ID, 10)},
		{"Username", s.User.Username},
		{"Name", s.User.FullName()},
		{"Email", s.User.Email},
		{"Contact", s.User.ContactNumber},
		{"Date of birth", s.DateOfBirth},
		{"Gender", s.Gender},
		{"Blood group", s.BloodGroup},
		{"Address", s.Address},
	})
}

func (tr *terminalRenderer) students(students []college.Student) error {
	table := pterm.TableData{{"ID", "USERNAME", "NAME", "EMAIL"}}
	for _, s := range students {
		table = append(table, []string{strconv.FormatInt(s.ID, 10), s.User.Username, s.User.FullName(), s.User.Email})
	}
	return tr.table(true, table)
}

func (tr *terminalRenderer) subjects(subjects []college.Subject) error {
	table := pterm.TableData{{"ID", "NAME", "CODE", "DESCRIPTION"}}
	for _, s := range subjects {
		table = append(table, []string{strconv.FormatInt(s.ID, 10), s.Name, s.Code, s.Description})
	}
	return tr.table(true, table)
}

func (tr *terminalRenderer) table(header bool, data pterm.TableData) error {
	rendered, err := pterm.DefaultTable.WithHasHeader(header).WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(tr.out, rendered)
	return err
}
