package onboarding

import (
	"context"
	"testing"
)

func TestFullSurveyWalk(t *testing.T) {
	s := Start()
	if s.Step != StepSpecialty {
		t.Fatalf("Start step = %q, want %q", s.Step, StepSpecialty)
	}

	out := Advance(s, Input{Text: "🏥 Терапия"})
	if out.Prompt != PromptCity {
		t.Fatalf("after specialty prompt = %q, want %q", out.Prompt, PromptCity)
	}
	if got := s.Specialty.Value; got != "Терапия" {
		t.Fatalf("specialty sanitized to %q, want %q", got, "Терапия")
	}

	out = Advance(s, Input{Text: "Казань"})
	if out.Prompt != PromptEmail {
		t.Fatalf("after city prompt = %q, want %q", out.Prompt, PromptEmail)
	}

	out = Advance(s, Input{Text: "doc@example.com"})
	if out.Prompt != PromptComplete {
		t.Fatalf("after email prompt = %q, want %q", out.Prompt, PromptComplete)
	}
	if s.Step != StepComplete {
		t.Fatalf("final step = %q, want %q", s.Step, StepComplete)
	}

	survey := s.Survey()
	if survey.Specialty == nil || *survey.Specialty != "Терапия" {
		t.Fatalf("survey specialty = %v", survey.Specialty)
	}
	if survey.City == nil || *survey.City != "Казань" {
		t.Fatalf("survey city = %v", survey.City)
	}
	if survey.Email == nil || *survey.Email != "doc@example.com" {
		t.Fatalf("survey email = %v", survey.Email)
	}
}

func TestSkipAtSpecialtyCompletesImmediately(t *testing.T) {
	s := Start()
	out := Advance(s, Input{Text: "🚀 Пропустить вопрос", Skip: true})
	if out.Prompt != PromptComplete {
		t.Fatalf("prompt = %q, want %q", out.Prompt, PromptComplete)
	}

	survey := s.Survey()
	if survey.Specialty != nil || survey.City != nil || survey.Email != nil {
		t.Fatalf("skipped survey should carry no values: %+v", survey)
	}
}

func TestSkipAtEmailKeepsEarlierAnswers(t *testing.T) {
	s := Start()
	Advance(s, Input{Text: "Кардиология"})
	Advance(s, Input{Text: "Минск"})
	out := Advance(s, Input{Skip: true})
	if out.Prompt != PromptComplete {
		t.Fatalf("prompt = %q, want %q", out.Prompt, PromptComplete)
	}

	survey := s.Survey()
	if survey.Email != nil {
		t.Fatalf("email should be nil after skip, got %v", *survey.Email)
	}
	if survey.City == nil || *survey.City != "Минск" {
		t.Fatalf("city lost on email skip: %v", survey.City)
	}
}

func TestInvalidEmailLeavesStateUntouched(t *testing.T) {
	s := Start()
	Advance(s, Input{Text: "Терапия"})
	Advance(s, Input{Text: "Москва"})

	out := Advance(s, Input{Text: "not-an-email"})
	if out.Prompt != PromptEmailInvalid {
		t.Fatalf("prompt = %q, want %q", out.Prompt, PromptEmailInvalid)
	}
	if s.Step != StepEmail {
		t.Fatalf("step changed on invalid email: %q", s.Step)
	}

	// The retry succeeds.
	out = Advance(s, Input{Text: "doc@clinic.ru"})
	if out.Prompt != PromptComplete {
		t.Fatalf("retry prompt = %q, want %q", out.Prompt, PromptComplete)
	}
}

func TestSanitizeSpecialty(t *testing.T) {
	cases := map[string]string{
		"🏥 Терапия":     "Терапия",
		"Cardiology 101": "Cardiology",
		"💊 Фармакология": "Фармакология",
		"!!!":            "",
	}
	for in, want := range cases {
		if got := SanitizeSpecialty(in); got != want {
			t.Fatalf("SanitizeSpecialty(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if s, err := store.GetSession(ctx, 42); err != nil || s != nil {
		t.Fatalf("missing session = (%v, %v), want (nil, nil)", s, err)
	}

	session := Start()
	session.Specialty = Provide("Терапия")
	if err := store.SaveSession(ctx, 42, session); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	loaded, err := store.GetSession(ctx, 42)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if loaded == nil || loaded.Specialty.Value != "Терапия" {
		t.Fatalf("loaded session = %+v", loaded)
	}

	// Mutating the loaded copy must not leak back into the store.
	loaded.Specialty = Provide("другое")
	again, _ := store.GetSession(ctx, 42)
	if again.Specialty.Value != "Терапия" {
		t.Fatalf("store copy mutated: %+v", again)
	}

	if err := store.DeleteSession(ctx, 42); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if s, _ := store.GetSession(ctx, 42); s != nil {
		t.Fatalf("session survived delete: %+v", s)
	}

	if err := store.SetMode(ctx, 42, ModeAwaitingQuestion); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if mode, _ := store.GetMode(ctx, 42); mode != ModeAwaitingQuestion {
		t.Fatalf("mode = %q", mode)
	}
	if err := store.ClearMode(ctx, 42); err != nil {
		t.Fatalf("ClearMode: %v", err)
	}
	if mode, _ := store.GetMode(ctx, 42); mode != "" {
		t.Fatalf("mode survived clear: %q", mode)
	}
}
