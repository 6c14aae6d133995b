// Package validate holds the pure input validators. Every command handler
// runs the matching validator before touching storage. Validators collect
// all failing fields at once rather than stopping at the first.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"taskboard/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a validator: OK plus a field -> message map.
type Result struct {
	OK     bool
	Errors map[string]string
}

// Error wraps a failed Result so services can return it through the
// normal error path.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string { return "validation failed" }

// Err converts a failed result into an *Error, or nil when valid.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &Error{Fields: r.Errors}
}

func result(errs map[string]string) Result {
	return Result{OK: len(errs) == 0, Errors: errs}
}

// IsEmail reports whether v looks like an email after trimming and
// lowercasing.
func IsEmail(v string) bool {
	return emailRe.MatchString(NormalizeEmail(v))
}

// NormalizeEmail trims and lowercases an email for storage and lookup.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// NonEmptyString reports whether the trimmed value is within [min, max].
// Bounds count characters, not bytes, so multibyte input is measured the
// same way the client sees it.
func NonEmptyString(v string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	return n >= min && n <= max
}

func validStatus(s string) bool {
	return s == domain.StatusActive || s == domain.StatusDone
}

// Register checks a registration payload.
func Register(name, email, password string) Result {
	errs := map[string]string{}
	if !NonEmptyString(name, 1, 120) {
		errs["name"] = "Name is required"
	}
	if !IsEmail(email) {
		errs["email"] = "Invalid email"
	}
	if !NonEmptyString(password, 6, 200) {
		errs["password"] = "Password must be at least 6 characters"
	}
	return result(errs)
}

// Login checks a login payload.
func Login(email, password string) Result {
	errs := map[string]string{}
	if !IsEmail(email) {
		errs["email"] = "Invalid email"
	}
	if !NonEmptyString(password, 1, 200) {
		errs["password"] = "Password is required"
	}
	return result(errs)
}

// CreateTask checks a task creation payload.
func CreateTask(title, description, category string) Result {
	errs := map[string]string{}
	if !NonEmptyString(title, 1, 120) {
		errs["title"] = "Title is required"
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) > 1000 {
		errs["description"] = "Description is too long"
	}
	if category != "" && !NonEmptyString(category, 1, 120) {
		errs["category"] = "Invalid category"
	}
	return result(errs)
}

// UpdateTask checks a partial patch. Only fields present in the request
// are validated; each present field is checked independently.
func UpdateTask(p domain.TaskPatch) Result {
	errs := map[string]string{}
	if p.Title != nil && !NonEmptyString(*p.Title, 1, 120) {
		errs["title"] = "Invalid title"
	}
	if p.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Description)) > 1000 {
		errs["description"] = "Description is too long"
	}
	if p.Category != nil && !NonEmptyString(*p.Category, 1, 120) {
		errs["category"] = "Invalid category"
	}
	if p.Status != nil && !validStatus(*p.Status) {
		errs["status"] = "Invalid status"
	}
	return result(errs)
}

// ListQuery checks the status and sort query parameters. Empty values
// mean "not supplied" and are fine; page and limit are clamped by the
// service instead of rejected.
func ListQuery(status, sort string) Result {
	errs := map[string]string{}
	if status != "" && !validStatus(status) {
		errs["status"] = "Invalid status"
	}
	if sort != "" && sort != "asc" && sort != "desc" {
		errs["sort"] = "Invalid sort"
	}
	return result(errs)
}
