package onboarding

import (
	"strings"
	"unicode"
)

// Prompt tells the caller which reply to send after a transition. Every
// transition produces exactly one prompt.
type Prompt string

const (
	PromptSpecialty    Prompt = "specialty"
	PromptCity         Prompt = "city"
	PromptEmail        Prompt = "email"
	PromptEmailInvalid Prompt = "email_invalid"
	PromptComplete     Prompt = "complete"
)

// Input is a resolved onboarding message: free text plus whether the
// user pressed a skip option. Skip detection happens upstream by
// intent, never by comparing display labels here.
type Input struct {
	Text string
	Skip bool
}

// Outcome is the result of one transition.
type Outcome struct {
	Session *Session
	Prompt  Prompt
}

// Start opens a survey session at the specialty step.
func Start() *Session {
	return &Session{Step: StepSpecialty}
}

// Advance applies one input to the session. The sequence is linear:
// specialty → city → email → complete, with skip short-circuiting to
// complete at the specialty and email steps. An invalid email keeps the
// session at the email step untouched.
func Advance(s *Session, in Input) Outcome {
	switch s.Step {
	case StepSpecialty:
		if in.Skip {
			s.Specialty = Skipped()
			s.Step = StepComplete
			return Outcome{Session: s, Prompt: PromptComplete}
		}
		s.Specialty = Provide(SanitizeSpecialty(in.Text))
		s.Step = StepCity
		return Outcome{Session: s, Prompt: PromptCity}

	case StepCity:
		s.City = Provide(in.Text)
		s.Step = StepEmail
		return Outcome{Session: s, Prompt: PromptEmail}

	case StepEmail:
		if in.Skip {
			s.Email = Skipped()
			s.Step = StepComplete
			return Outcome{Session: s, Prompt: PromptComplete}
		}
		if !strings.Contains(in.Text, "@") {
			return Outcome{Session: s, Prompt: PromptEmailInvalid}
		}
		s.Email = Provide(in.Text)
		s.Step = StepComplete
		return Outcome{Session: s, Prompt: PromptComplete}

	default:
		return Outcome{Session: s, Prompt: PromptComplete}
	}
}

// SanitizeSpecialty strips everything outside the Latin and Cyrillic
// alphabets, so a button label like "🏥 Терапия" stores as "Терапия".
func SanitizeSpecialty(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.In(r, unicode.Latin, unicode.Cyrillic) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
