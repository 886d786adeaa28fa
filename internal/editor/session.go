// internal/editor/session.go
package editor

import (
	"time"

	"github.com/akeath18/HPE-assets/internal/domain"
	"github.com/akeath18/HPE-assets/internal/plan"
)

// Session is the editor's working state: the draft document, the current
// client/week selection, and whether there are unpublished edits. It is a
// value object; every interaction takes a Session and returns the updated
// one, so edit sequences are deterministic and easy to test.
type Session struct {
	Doc       *domain.PlanDocument
	ClientID  string
	WeekIndex int
	Dirty     bool
}

// NewSession normalizes the document and opens it with the first client
// selected.
func NewSession(doc *domain.PlanDocument) Session {
	plan.Normalize(doc)

	s := Session{Doc: doc}
	if len(doc.Clients) > 0 {
		s.ClientID = doc.Clients[0].ID
	}
	return s
}

// Client returns the selected client, or nil when the selection is empty.
func (s Session) Client() *domain.ClientPlan {
	for i := range s.Doc.Clients {
		if s.Doc.Clients[i].ID == s.ClientID {
			return &s.Doc.Clients[i]
		}
	}
	return nil
}

// Week returns the selected week of the selected client, or nil.
func (s Session) Week() *domain.Week {
	client := s.Client()
	if client == nil || s.WeekIndex < 0 || s.WeekIndex >= len(client.Weeks) {
		return nil
	}
	return &client.Weeks[s.WeekIndex]
}

// SelectClient switches to another client and resets the week selection.
func (s Session) SelectClient(id string) Session {
	s.ClientID = id
	s.WeekIndex = 0
	return s
}

// SelectWeek switches the week selection, clamping out-of-range indexes.
func (s Session) SelectWeek(index int) Session {
	client := s.Client()
	if client == nil {
		return s
	}
	if index < 0 {
		index = 0
	}
	if index >= len(client.Weeks) {
		index = len(client.Weeks) - 1
	}
	s.WeekIndex = index
	return s
}

// SetWeekField applies a single week-level edit. The second return reports
// whether the key was recognized and the edit applied.
func (s Session) SetWeekField(key, value string) (Session, bool) {
	week := s.Week()
	if week == nil {
		return s, false
	}

	switch key {
	case "dateRange":
		week.DateRange = value
	case "phase":
		week.Phase = value
	case "tagline":
		week.Tagline = value
	case "energy":
		week.ClientCheckIn.Energy = value
	case "soreness":
		week.ClientCheckIn.Soreness = value
	case "winsChallenges":
		week.ClientCheckIn.WinsChallenges = value
	case "trainerNotes":
		week.ClientCheckIn.TrainerNotes = value
	case "nextWeek":
		week.ClientCheckIn.NextWeek = value
	default:
		return s, false
	}
	return s.touch(), true
}

// SetCompletedSessions records the weekly check-in count, clamped to the
// number of sessions in a week.
func (s Session) SetCompletedSessions(count int) (Session, bool) {
	week := s.Week()
	if week == nil {
		return s, false
	}
	if count < 0 {
		count = 0
	}
	if count > domain.SessionsPerWeek {
		count = domain.SessionsPerWeek
	}
	week.ClientCheckIn.CompletedSessions = count
	return s.touch(), true
}

// SetSessionField applies a single edit to one session of the selected week.
func (s Session) SetSessionField(sessionIndex int, key, value string) (Session, bool) {
	week := s.Week()
	if week == nil || sessionIndex < 0 || sessionIndex >= len(week.Sessions) {
		return s, false
	}

	session := &week.Sessions[sessionIndex]
	switch key {
	case "title":
		session.Title = value
	case "date":
		session.Date = value
	case "focus":
		session.Focus = value
	default:
		return s, false
	}
	return s.touch(), true
}

// SetExerciseField applies a single edit to one exercise row.
func (s Session) SetExerciseField(sessionIndex, row int, key, value string) (Session, bool) {
	week := s.Week()
	if week == nil || sessionIndex < 0 || sessionIndex >= len(week.Sessions) {
		return s, false
	}
	exercises := week.Sessions[sessionIndex].Exercises
	if row < 0 || row >= len(exercises) {
		return s, false
	}

	exercise := &exercises[row]
	switch key {
	case "exercise":
		exercise.Exercise = value
	case "equipment":
		exercise.Equipment = value
	case "sets":
		exercise.Sets = value
	case "reps":
		exercise.Reps = value
	case "effort":
		exercise.Effort = value
	case "notes":
		exercise.Notes = value
	default:
		return s, false
	}
	return s.touch(), true
}

// SetAssessmentField applies a single edit to one final-assessment row.
func (s Session) SetAssessmentField(row int, key, value string) (Session, bool) {
	client := s.Client()
	if client == nil || row < 0 || row >= len(client.FinalAssessment.Items) {
		return s, false
	}

	item := &client.FinalAssessment.Items[row]
	switch key {
	case "assessment":
		item.Assessment = value
	case "startingScore":
		item.StartingScore = value
	case "finalScore":
		item.FinalScore = value
	case "change":
		item.Change = value
	default:
		return s, false
	}
	return s.touch(), true
}

// AddClient creates a blank client plan, gives it a document-unique id, and
// selects it.
func (s Session) AddClient(name string) Session {
	client := plan.NewClient(name)
	client.ID = plan.UniqueClientID(s.Doc, client.ID)
	s.Doc.Clients = append(s.Doc.Clients, client)
	s.ClientID = client.ID
	s.WeekIndex = 0
	return s.touch()
}

// AddClientFromTemplate stamps a new client out of a template and selects it.
func (s Session) AddClientFromTemplate(tpl domain.PlanTemplate, name string) Session {
	client := plan.NewClientFromTemplate(tpl, name)
	client.ID = plan.UniqueClientID(s.Doc, client.ID)
	s.Doc.Clients = append(s.Doc.Clients, client)
	s.ClientID = client.ID
	s.WeekIndex = 0
	return s.touch()
}

// DuplicateClient deep-copies the selected client under a fresh unique id
// and selects the copy. Editing the copy never reaches back into the
// original.
func (s Session) DuplicateClient() Session {
	source := s.Client()
	if source == nil {
		return s
	}

	client := plan.CloneClient(*source)
	client.ID = plan.UniqueClientID(s.Doc, client.ID)
	s.Doc.Clients = append(s.Doc.Clients, client)
	s.ClientID = client.ID
	s.WeekIndex = 0
	return s.touch()
}

// RemoveClient deletes the selected client and falls back to the first
// remaining one.
func (s Session) RemoveClient() Session {
	client := s.Client()
	if client == nil {
		return s
	}

	kept := s.Doc.Clients[:0]
	for i := range s.Doc.Clients {
		if s.Doc.Clients[i].ID != s.ClientID {
			kept = append(kept, s.Doc.Clients[i])
		}
	}
	s.Doc.Clients = kept

	s.ClientID = ""
	if len(s.Doc.Clients) > 0 {
		s.ClientID = s.Doc.Clients[0].ID
	}
	s.WeekIndex = 0
	return s.touch()
}

// MarkPublished clears the dirty flag after a successful publish.
func (s Session) MarkPublished() Session {
	s.Dirty = false
	return s
}

func (s Session) touch() Session {
	s.Dirty = true
	s.Doc.LastUpdated = time.Now().UTC().Format("2006-01-02")
	return s
}
