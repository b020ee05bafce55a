package validate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidName(t *testing.T) {
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("A"))
	assert.False(t, IsValidName("é"))
	assert.True(t, IsValidName("Al"))
	assert.True(t, IsValidName("Zoë"))
	assert.True(t, IsValidName(strings.Repeat("x", 100)))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@sub.example.org", "x+y@d.io"}
	for _, s := range valid {
		assert.True(t, IsValidEmail(s), s)
	}

	invalid := []string{"", "plain", "a@b", "@b.com", "a@.com", "a b@c.com", "a@@b.com", "a@b.c om", "a@b."}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestIsValidAge(t *testing.T) {
	for a := -5; a <= 160; a++ {
		want := a >= 1 && a <= 149
		assert.Equal(t, want, IsValidAge(fmt.Sprint(a)), "age %d", a)
	}

	assert.False(t, IsValidAge(""))
	assert.False(t, IsValidAge("twenty"))
	assert.False(t, IsValidAge("20.5"))
	assert.False(t, IsValidAge(" 20"))
}

func TestIsValidGender(t *testing.T) {
	for _, s := range []string{"m", "M", "f", "F", "o", "O"} {
		assert.True(t, IsValidGender(s), s)
	}
	for _, s := range []string{"", "x", "MF", "male", " M", "0"} {
		assert.False(t, IsValidGender(s), s)
	}
}

func TestStudent_NormalizesGender(t *testing.T) {
	s, err := Student(types.StudentRequest{Name: "Ann", Email: "a@b.com", Age: "20", Gender: "f"})
	require.NoError(t, err)

	assert.Equal(t, types.Student{Name: "Ann", Email: "a@b.com", Age: 20, Gender: "F"}, s)
}

func TestStudent_NameTooShort(t *testing.T) {
	_, err := Student(types.StudentRequest{Name: "A", Email: "a@b.com", Age: "20", Gender: "F"})
	require.Error(t, err)
	require.True(t, IsValidationError(err))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{{Field: "name", Message: MsgName}}, verr.Fields)
}

func TestStudent_ReportsAllFieldsInOrder(t *testing.T) {
	_, err := Student(types.StudentRequest{})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 4)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, "email", verr.Fields[1].Field)
	assert.Equal(t, "age", verr.Fields[2].Field)
	assert.Equal(t, "gender", verr.Fields[3].Field)
	assert.Equal(t, strings.Join([]string{MsgName, MsgEmail, MsgAge, MsgGender}, ", "), err.Error())
}

func TestStudent_AgeBounds(t *testing.T) {
	base := types.StudentRequest{Name: "Bob", Email: "b@c.org", Gender: "M"}

	base.Age = "149"
	_, err := Student(base)
	assert.NoError(t, err)

	base.Age = "150"
	_, err = Student(base)
	assert.True(t, IsValidationError(err))

	base.Age = "0"
	_, err = Student(base)
	assert.True(t, IsValidationError(err))
}

func TestIsValidationError_Foreign(t *testing.T) {
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(fmt.Errorf("boom")))
	assert.True(t, IsValidationError(fmt.Errorf("wrap: %w", &Error{})))
}
