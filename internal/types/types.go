// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, console and utils can all import types without
// depending on each other.
package types

import "encoding/json"

// Student represents one row of the STUDENT_DETAILS table.
//
// Struct tags serve two purposes:
//
//  1. json:"..." — controls how the field appears when encoded to JSON
//     (lowercase names match REST API conventions).
//
//  2. db:"..." — the column name sqlx uses when scanning a row into the
//     struct. Columns are selected in lowercase so both SQLite and
//     PostgreSQL return the same names.
type Student struct {
	ID     int64  `json:"id"     db:"id"`
	Name   string `json:"name"   db:"name"`
	Email  string `json:"email"  db:"email"`
	Age    int    `json:"age"    db:"age"`
	Gender string `json:"gender" db:"gender"`
}

// StudentRequest is the JSON body accepted by the create and update
// endpoints. There is no id field: ids are assigned by the store.
//
// Age is a json.Number so that both 20 and "20" decode; the validate
// package decides whether the text is an acceptable age.
//
// validate:"..." tags name the custom rules registered by the validate
// package. Field order here is the order errors are reported in.
type StudentRequest struct {
	Name   string      `json:"name"   validate:"studentname"`
	Email  string      `json:"email"  validate:"studentemail"`
	Age    json.Number `json:"age"    validate:"studentage"`
	Gender string      `json:"gender" validate:"studentgender"`
}
