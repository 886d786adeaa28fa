// internal/plan/template.go
package plan

import (
	"fmt"

	"github.com/akeath18/HPE-assets/internal/domain"
)

// NewWeek builds an empty week in the canonical shape.
func NewWeek(number int) domain.Week {
	sessions := make([]domain.Session, 0, domain.SessionsPerWeek)
	for i := 1; i <= domain.SessionsPerWeek; i++ {
		sessions = append(sessions, NewSession(i))
	}

	return domain.Week{
		Number:   number,
		Phase:    defaultPhase,
		Sessions: sessions,
		ClientCheckIn: domain.CheckIn{
			Energy:   defaultEnergy,
			Soreness: defaultSoreness,
			NextWeek: defaultNextWeek,
		},
	}
}

// NewSession builds an empty session with the full exercise grid.
func NewSession(number int) domain.Session {
	return domain.Session{
		Number:    number,
		Title:     sessionTitle(number),
		Exercises: make([]domain.ExerciseRow, domain.ExerciseRowsPerDay),
	}
}

// NewClient builds a blank client plan for the given display name. The id is
// the slugified name; callers inserting into a document should pass it
// through UniqueClientID first.
func NewClient(name string) domain.ClientPlan {
	client := domain.ClientPlan{
		ID: Slugify(name),
		Profile: domain.ClientProfile{
			ClientName:             name,
			TrainerName:            defaultTrainerName,
			IndependentSessionDays: make([]string, domain.IndependentDays),
		},
		ProgramAtAGlance: []domain.GlanceRow{},
		Weeks:            make([]domain.Week, 0, domain.WeeksPerPlan),
		FinalAssessment: domain.FinalAssessment{
			Items: make([]domain.AssessmentRow, domain.AssessmentRows),
		},
	}
	for i := 1; i <= domain.WeeksPerPlan; i++ {
		client.Weeks = append(client.Weeks, NewWeek(i))
	}
	return client
}

// NewClientFromTemplate stamps a new client out of a template. The template's
// collections are deep-copied so later edits to the client never reach back
// into the template (or into siblings stamped from it).
func NewClientFromTemplate(tpl domain.PlanTemplate, name string) domain.ClientPlan {
	client := NewClient(name)
	client.ProgramAtAGlance = cloneGlance(tpl.ProgramAtAGlance)
	client.Weeks = cloneWeeks(tpl.Weeks)
	client.FinalAssessment = cloneAssessment(tpl.FinalAssessment)
	NormalizeClient(&client)
	return client
}

// CloneClient returns a deep copy of a client plan.
func CloneClient(c domain.ClientPlan) domain.ClientPlan {
	out := c
	out.Profile.IndependentSessionDays = append([]string(nil), c.Profile.IndependentSessionDays...)
	out.ProgramAtAGlance = cloneGlance(c.ProgramAtAGlance)
	out.Weeks = cloneWeeks(c.Weeks)
	out.FinalAssessment = cloneAssessment(c.FinalAssessment)
	return out
}

// UniqueClientID returns base if no client in the document uses it, otherwise
// the first free base-2, base-3, ... suffix.
func UniqueClientID(doc *domain.PlanDocument, base string) string {
	if base == "" {
		base = FallbackSlug
	}

	candidate := base
	for index := 2; idTaken(doc, candidate); index++ {
		candidate = fmt.Sprintf("%s-%d", base, index)
	}
	return candidate
}

func idTaken(doc *domain.PlanDocument, id string) bool {
	for i := range doc.Clients {
		if doc.Clients[i].ID == id {
			return true
		}
	}
	return false
}

func cloneWeeks(weeks []domain.Week) []domain.Week {
	out := make([]domain.Week, len(weeks))
	for i, w := range weeks {
		out[i] = w
		out[i].Sessions = make([]domain.Session, len(w.Sessions))
		for j, s := range w.Sessions {
			out[i].Sessions[j] = s
			out[i].Sessions[j].Exercises = append([]domain.ExerciseRow(nil), s.Exercises...)
		}
	}
	return out
}

func cloneGlance(rows []domain.GlanceRow) []domain.GlanceRow {
	return append([]domain.GlanceRow(nil), rows...)
}

func cloneAssessment(a domain.FinalAssessment) domain.FinalAssessment {
	out := a
	out.Items = append([]domain.AssessmentRow(nil), a.Items...)
	return out
}
