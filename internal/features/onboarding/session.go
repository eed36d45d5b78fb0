package onboarding

import (
	usermodels "smartclinic-backend/internal/features/user/models"
)

// Step tags the survey question the session is waiting on.
type Step string

const (
	StepSpecialty Step = "specialty"
	StepCity      Step = "city"
	StepEmail     Step = "email"
	StepComplete  Step = "complete"
)

// Answer is an explicit skipped-or-provided value, so merging into the
// profile is a uniform fold rather than repeated skip-token checks.
type Answer struct {
	Provided bool   `json:"provided"`
	Value    string `json:"value,omitempty"`
}

func Skipped() Answer {
	return Answer{}
}

func Provide(value string) Answer {
	return Answer{Provided: true, Value: value}
}

// Ptr returns the value for a COALESCE-style merge: nil when skipped.
func (a Answer) Ptr() *string {
	if !a.Provided {
		return nil
	}
	v := a.Value
	return &v
}

// Session is the transient per-conversation survey state.
type Session struct {
	Step      Step   `json:"step"`
	Specialty Answer `json:"specialty"`
	City      Answer `json:"city"`
	Email     Answer `json:"email"`
}

// Survey folds the accumulated answers into a profile update.
func (s *Session) Survey() usermodels.SurveyUpdate {
	return usermodels.SurveyUpdate{
		Specialty: s.Specialty.Ptr(),
		City:      s.City.Ptr(),
		Email:     s.Email.Ptr(),
	}
}
