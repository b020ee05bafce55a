// Package console implements the interactive, menu-driven front end.
//
// It reads one line per prompt from an io.Reader and writes to an
// io.Writer, so it runs the same against a terminal or a test buffer.
// Field prompts repeat until the input passes validation; there is no
// retry limit. End of input or a cancelled context behaves like choosing
// Exit, even while a prompt is waiting for a line.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/validate"
)

const menu = `
Student Management System
1. Add Student
2. View All Students
3. Update Student
4. Delete Student
5. Exit
`

type line struct {
	text string
	err  error
}

// Console drives the menu loop against a store.
type Console struct {
	store storage.Storage
	in    *bufio.Scanner
	out   io.Writer

	readOnce sync.Once
	lines    chan line
}

// New returns a Console reading answers from in and writing to out.
func New(store storage.Storage, in io.Reader, out io.Writer) *Console {
	return &Console{
		store: store,
		in:    bufio.NewScanner(in),
		out:   out,
		lines: make(chan line),
	}
}

// read feeds input lines to prompt. It ends with one error line: io.EOF
// at end of input, otherwise the scanner's error. A Scan blocked on a
// terminal cannot be interrupted, so the goroutine may outlive Run.
func (c *Console) read() {
	for c.in.Scan() {
		c.lines <- line{text: c.in.Text()}
	}
	err := io.EOF
	if scanErr := c.in.Err(); scanErr != nil {
		err = fmt.Errorf("read input: %w", scanErr)
	}
	c.lines <- line{err: err}
	close(c.lines)
}

// Run shows the menu until the user exits, input ends or ctx is
// cancelled. A failed operation is reported and the loop carries on; Run
// only returns an error when reading input fails.
func (c *Console) Run(ctx context.Context) error {
	c.readOnce.Do(func() { go c.read() })

	for {
		if err := ctx.Err(); err != nil {
			return c.finish(err)
		}

		fmt.Fprint(c.out, menu)
		choice, err := c.prompt(ctx, "Enter your choice (1-5): ")
		if err != nil {
			return c.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.add(ctx)
		case "2":
			err = c.list(ctx)
		case "3":
			err = c.update(ctx)
		case "4":
			err = c.remove(ctx)
		case "5":
			fmt.Fprintln(c.out, "Exiting program...")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			return c.finish(err)
		}
	}
}

// finish turns end of input and cancellation into a normal exit.
func (c *Console) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(c.out, "\nExiting program...")
		return nil
	}
	return err
}

// prompt prints label and returns the next input line without its newline.
func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimRight(l.text, "\r"), nil
	}
}

// field prompts until check accepts the answer.
func (c *Console) field(ctx context.Context, label string, check func(string) bool, failMsg string) (string, error) {
	for {
		v, err := c.prompt(ctx, label)
		if err != nil {
			return "", err
		}
		if check(v) {
			return v, nil
		}
		fmt.Fprintln(c.out, failMsg+". Try again.")
	}
}

func (c *Console) readStudent(ctx context.Context) (types.Student, error) {
	name, err := c.field(ctx, "Please enter student name (minimum 2 characters): ", validate.IsValidName, validate.MsgName)
	if err != nil {
		return types.Student{}, err
	}
	email, err := c.field(ctx, "Please enter valid email address: ", validate.IsValidEmail, validate.MsgEmail)
	if err != nil {
		return types.Student{}, err
	}
	ageText, err := c.field(ctx, "Please enter age (1-149): ", validate.IsValidAge, validate.MsgAge)
	if err != nil {
		return types.Student{}, err
	}
	gender, err := c.field(ctx, "Please enter gender (M/F/O): ", validate.IsValidGender, validate.MsgGender)
	if err != nil {
		return types.Student{}, err
	}

	// IsValidAge already proved this parses.
	age, _ := strconv.Atoi(ageText)

	return types.Student{
		Name:   name,
		Email:  email,
		Age:    age,
		Gender: validate.NormalizeGender(gender),
	}, nil
}

func (c *Console) readID(ctx context.Context) (int64, error) {
	for {
		v, err := c.prompt(ctx, "Please enter student ID: ")
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err == nil && id > 0 {
			return id, nil
		}
		fmt.Fprintln(c.out, "Invalid ID. Please enter a positive number.")
	}
}

func (c *Console) add(ctx context.Context) error {
	student, err := c.readStudent(ctx)
	if err != nil {
		return err
	}

	id, err := c.store.CreateStudent(ctx, student)
	if err != nil {
		c.report("inserting data", err)
		return nil
	}

	fmt.Fprintf(c.out, "Student data inserted successfully (ID: %d)\n", id)
	return nil
}

func (c *Console) list(ctx context.Context) error {
	students, err := c.store.GetStudents(ctx)
	if err != nil {
		c.report("reading students", err)
		return nil
	}

	if len(students) == 0 {
		fmt.Fprintln(c.out, "\nNo students found.")
		return nil
	}

	fmt.Fprintln(c.out, "\nAll Students:")
	for _, s := range students {
		fmt.Fprintf(c.out, "ID: %d, Name: %s, Email: %s, Age: %d, Gender: %s\n",
			s.ID, s.Name, s.Email, s.Age, s.Gender)
	}
	return nil
}

func (c *Console) update(ctx context.Context) error {
	id, err := c.readID(ctx)
	if err != nil {
		return err
	}
	student, err := c.readStudent(ctx)
	if err != nil {
		return err
	}

	if _, err := c.store.UpdateStudentByID(ctx, id, student); err != nil {
		c.report("updating student", err)
		return nil
	}

	fmt.Fprintln(c.out, "Student updated successfully")
	return nil
}

func (c *Console) remove(ctx context.Context) error {
	id, err := c.readID(ctx)
	if err != nil {
		return err
	}

	if err := c.store.DeleteStudentByID(ctx, id); err != nil {
		c.report("deleting student", err)
		return nil
	}

	fmt.Fprintln(c.out, "Student deleted successfully")
	return nil
}

// report prints a store failure for the user. Unclassified errors are
// also logged with their detail.
func (c *Console) report(action string, err error) {
	switch {
	case errors.Is(err, storage.ErrDuplicateEmail):
		fmt.Fprintln(c.out, "Error: Email already exists in database")
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintln(c.out, "Error: Student not found")
	default:
		slog.Error("console operation failed",
			slog.String("action", action),
			slog.String("error", err.Error()))
		fmt.Fprintf(c.out, "Error %s: %s\n", action, err)
	}
}
