package booking

import (
	"strconv"
	"strings"

	"pinkmint/models"
)

// Validation reason codes.
const (
	ReasonMissingPackage = "missingPackage"
	ReasonMissingField   = "missingField"
	ReasonInvalidEmail   = "invalidEmail"
	ReasonInvalidNumber  = "invalidNumber"
)

// ValidationReason is one field-level problem found by Validate.
type ValidationReason struct {
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// ValidationResult collects every reason a draft cannot be submitted.
type ValidationResult struct {
	Reasons []ValidationReason `json:"reasons,omitempty"`
}

// Valid reports whether the draft passed all checks.
func (r ValidationResult) Valid() bool {
	return len(r.Reasons) == 0
}

func (r *ValidationResult) add(code, field string) {
	r.Reasons = append(r.Reasons, ValidationReason{Code: code, Field: field})
}

// Validate checks a draft for submission. It never mutates the draft and is
// re-run in full on every submit attempt.
func Validate(d *models.BookingDraft) ValidationResult {
	var res ValidationResult

	required := []struct {
		field string
		value string
	}{
		{"name", d.Name},
		{"email", d.Email},
		{"phone", d.Phone},
		{"homeType", d.HomeType},
		{"floorType", d.FloorType},
		{"bedrooms", d.Bedrooms},
		{"bathrooms", d.Bathrooms},
		{"squareFootage", d.SquareFootage},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			res.add(ReasonMissingField, f.field)
		}
	}

	if strings.TrimSpace(d.Email) != "" && !plausibleEmail(d.Email) {
		res.add(ReasonInvalidEmail, "email")
	}

	for _, f := range []struct {
		field string
		value string
	}{
		{"bedrooms", d.Bedrooms},
		{"bathrooms", d.Bathrooms},
		{"squareFootage", d.SquareFootage},
	} {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue // already reported as missing
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			res.add(ReasonInvalidNumber, f.field)
		}
	}

	if d.Selection.Package == nil {
		res.add(ReasonMissingPackage, "")
	}

	return res
}

// plausibleEmail is the weak syntactic check the form applies: a local part,
// an '@', and a domain segment with a dot. Not an RFC validator.
func plausibleEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	return strings.Contains(domain, ".")
}
