// internal/plan/normalize.go
package plan

import (
	"github.com/akeath18/HPE-assets/internal/domain"
)

// Default field values applied by the normalizer. These match the published
// plan documents, where empty selects fall back to the first option.
const (
	defaultClientName  = "Student"
	defaultTrainerName = "Coach"
	defaultPhase       = "Foundation"
	defaultEnergy      = "OK"
	defaultSoreness    = "Mild"
	defaultNextWeek    = "Continue"

	coachedSessionTitle     = "With Your Trainer"
	independentSessionTitle = "On Your Own"
)

// Normalize canonicalizes a plan document in place. It is a total transform:
// missing sections are created, deficient collections are padded with empty
// templates, excess entries are truncated, and ids are slugified. Applying
// it twice yields the same document as applying it once.
func Normalize(doc *domain.PlanDocument) {
	if doc.Clients == nil {
		doc.Clients = []domain.ClientPlan{}
	}
	for i := range doc.Clients {
		NormalizeClient(&doc.Clients[i])
	}
	for i := range doc.Templates {
		normalizeTemplate(&doc.Templates[i])
	}
}

// NormalizeClient canonicalizes a single client plan in place, forcing the
// fixed 7-week / 3-session / 5-row / 4-assessment shape.
func NormalizeClient(c *domain.ClientPlan) {
	if c.ID == "" {
		c.ID = c.Profile.ClientName
	}
	c.ID = Slugify(c.ID)

	if c.Profile.ClientName == "" {
		c.Profile.ClientName = defaultClientName
	}
	if c.Profile.TrainerName == "" {
		c.Profile.TrainerName = defaultTrainerName
	}
	c.Profile.IndependentSessionDays = padStrings(c.Profile.IndependentSessionDays, domain.IndependentDays)

	if c.ProgramAtAGlance == nil {
		c.ProgramAtAGlance = []domain.GlanceRow{}
	}

	c.Weeks = normalizeWeeks(c.Weeks)
	normalizeAssessment(&c.FinalAssessment)
}

func normalizeTemplate(t *domain.PlanTemplate) {
	if t.Name == "" {
		t.Name = "Template"
	}
	if t.ProgramAtAGlance == nil {
		t.ProgramAtAGlance = []domain.GlanceRow{}
	}
	t.Weeks = normalizeWeeks(t.Weeks)
	normalizeAssessment(&t.FinalAssessment)
}

func normalizeWeeks(weeks []domain.Week) []domain.Week {
	for len(weeks) < domain.WeeksPerPlan {
		weeks = append(weeks, NewWeek(len(weeks)+1))
	}
	weeks = weeks[:domain.WeeksPerPlan]

	for i := range weeks {
		normalizeWeek(&weeks[i], i+1)
	}
	return weeks
}

func normalizeWeek(w *domain.Week, number int) {
	if w.Number <= 0 {
		w.Number = number
	}
	if w.Phase == "" {
		w.Phase = defaultPhase
	}

	for len(w.Sessions) < domain.SessionsPerWeek {
		w.Sessions = append(w.Sessions, NewSession(len(w.Sessions)+1))
	}
	w.Sessions = w.Sessions[:domain.SessionsPerWeek]

	for i := range w.Sessions {
		normalizeSession(&w.Sessions[i], i+1)
	}

	if w.ClientCheckIn.Energy == "" {
		w.ClientCheckIn.Energy = defaultEnergy
	}
	if w.ClientCheckIn.Soreness == "" {
		w.ClientCheckIn.Soreness = defaultSoreness
	}
	if w.ClientCheckIn.NextWeek == "" {
		w.ClientCheckIn.NextWeek = defaultNextWeek
	}
	w.ClientCheckIn.CompletedSessions = clampSessions(w.ClientCheckIn.CompletedSessions)
}

func normalizeSession(s *domain.Session, number int) {
	if s.Number <= 0 {
		s.Number = number
	}
	if s.Title == "" {
		s.Title = sessionTitle(number)
	}

	for len(s.Exercises) < domain.ExerciseRowsPerDay {
		s.Exercises = append(s.Exercises, domain.ExerciseRow{})
	}
	s.Exercises = s.Exercises[:domain.ExerciseRowsPerDay]
}

func normalizeAssessment(a *domain.FinalAssessment) {
	for len(a.Items) < domain.AssessmentRows {
		a.Items = append(a.Items, domain.AssessmentRow{})
	}
	a.Items = a.Items[:domain.AssessmentRows]
}

func sessionTitle(number int) string {
	if number == 1 {
		return coachedSessionTitle
	}
	return independentSessionTitle
}

func clampSessions(count int) int {
	if count < 0 {
		return 0
	}
	if count > domain.SessionsPerWeek {
		return domain.SessionsPerWeek
	}
	return count
}

func padStrings(values []string, size int) []string {
	if len(values) > size {
		values = values[:size]
	}
	for len(values) < size {
		values = append(values, "")
	}
	return values
}
