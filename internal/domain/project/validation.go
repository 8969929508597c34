package project

import (
	"math"
	"strings"
	"time"
)

// Validator checks creation payloads before they reach a store.
type Validator struct {
	// ClampSpent lowers Spent to Budget instead of accepting an over-budget project.
	ClampSpent bool
	// Now supplies the default createdAt. Defaults to time.Now.
	Now func() time.Time
}

// Normalize trims text fields, fills defaults, and validates the result.
// The returned request is what should be submitted; on error nothing should be.
func (v Validator) Normalize(req CreateRequest) (CreateRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Owner = strings.TrimSpace(req.Owner)
	req.CreatedAt = strings.TrimSpace(req.CreatedAt)
	if req.Status == "" {
		req.Status = StatusActive
	}
	if req.CreatedAt == "" {
		now := time.Now
		if v.Now != nil {
			now = v.Now
		}
		req.CreatedAt = now().Format(DateLayout)
	}

	if err := ValidateCreateInput(req); err != nil {
		return CreateRequest{}, err
	}

	if v.ClampSpent && req.Spent > req.Budget {
		req.Spent = req.Budget
	}
	return req, nil
}

// ValidateCreateInput validates fields required to create a project.
func ValidateCreateInput(req CreateRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.Owner) == "" {
		fields["owner"] = "owner is required"
	}
	if !req.Status.Valid() {
		fields["status"] = "status must be one of ACTIVE, PAUSED, DONE"
	}
	if !validAmount(req.Budget) {
		fields["budget"] = "budget must be a non-negative number"
	}
	if !validAmount(req.Spent) {
		fields["spent"] = "spent must be a non-negative number"
	}
	if !ValidDate(req.CreatedAt) {
		fields["createdAt"] = "createdAt must be a YYYY-MM-DD date"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
