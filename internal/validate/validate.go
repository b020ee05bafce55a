// Package validate holds the field rules every student record must pass
// before it is written to storage.
//
// The four Is* predicates are total: they never fail, they only answer
// yes or no. The console uses them one field at a time while prompting.
// The HTTP handlers use Student, which runs the same predicates through
// go-playground/validator so every failing field is reported at once.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/go-playground/validator/v10"
)

// Age bounds, exclusive on both ends: valid ages are 1 through 149.
const (
	ageFloor   = 0
	ageCeiling = 150
)

// Messages shown to users for each failing field.
const (
	MsgName   = "Name must be at least 2 characters long"
	MsgEmail  = "Invalid email format"
	MsgAge    = "Invalid age. Must be between 1 and 149"
	MsgGender = "Invalid gender. Must be M, F, or O"
)

// emailPattern is deliberately permissive: something@something.something
// with no whitespace and a single @. It is not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidName reports whether s has at least two characters.
func IsValidName(s string) bool {
	return utf8.RuneCountInString(s) >= 2
}

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidAge reports whether s parses as an integer in 1..149.
func IsValidAge(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n > ageFloor && n < ageCeiling
}

// IsValidGender reports whether s is one of M, F or O, ignoring case.
func IsValidGender(s string) bool {
	switch strings.ToUpper(s) {
	case "M", "F", "O":
		return true
	}
	return false
}

// NormalizeGender returns the stored form of a gender code.
func NormalizeGender(s string) string {
	return strings.ToUpper(s)
}

// FieldError describes one field that failed its rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by Student when one or more fields are invalid.
// Fields are listed in the order name, email, age, gender.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// IsValidationError reports whether err (or anything it wraps) is an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// rule ties a validator tag to its predicate and user-facing message.
type rule struct {
	tag     string
	check   func(string) bool
	message string
}

var rules = []rule{
	{tag: "studentname", check: IsValidName, message: MsgName},
	{tag: "studentemail", check: IsValidEmail, message: MsgEmail},
	{tag: "studentage", check: IsValidAge, message: MsgAge},
	{tag: "studentgender", check: IsValidGender, message: MsgGender},
}

// structValidator is safe for concurrent use and caches struct metadata,
// so a single instance is shared.
var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON field names ("email") rather than Go names ("Email").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for _, r := range rules {
		check := r.check
		// RegisterValidation only fails on an empty tag or a builtin name,
		// neither of which can happen with the fixed table above.
		if err := v.RegisterValidation(r.tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return v
}

func messageFor(tag string) string {
	for _, r := range rules {
		if r.tag == tag {
			return r.message
		}
	}
	return "invalid value"
}

// Student checks every field of req and, when all pass, returns the record
// ready for storage with gender normalized to uppercase. The returned
// Student has no ID.
func Student(req types.StudentRequest) (types.Student, error) {
	if err := structValidator.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return types.Student{}, err
		}

		verr := &Error{}
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, FieldError{
				Field:   fe.Field(),
				Message: messageFor(fe.Tag()),
			})
		}
		return types.Student{}, verr
	}

	// IsValidAge already proved this parses.
	age, _ := strconv.Atoi(req.Age.String())

	return types.Student{
		Name:   req.Name,
		Email:  req.Email,
		Age:    age,
		Gender: NormalizeGender(req.Gender),
	}, nil
}
