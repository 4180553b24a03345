// Package repository holds the data access layer: teacher accounts and
// refresh tokens in MySQL, and class records (roster plus saved layouts)
// in the key-value store. Sentinel errors defined here let handlers
// translate failures into the right HTTP responses without inspecting
// error text.
package repository

import "errors"

// ErrClassNotFound is returned when a class code does not resolve to a
// stored class record. Handlers should translate this into a 404.
var ErrClassNotFound = errors.New("class not found")

// ErrClassExists is returned when a generated class code collides with
// an existing record. Creation retries with a fresh code.
var ErrClassExists = errors.New("class already exists")

// ErrStudentNotFound is returned when a roster operation names a student
// that is not in the class.
var ErrStudentNotFound = errors.New("student not found")

// ErrPreferenceNotFound is returned when a preference index is out of
// range for the named student.
var ErrPreferenceNotFound = errors.New("preference not found")
