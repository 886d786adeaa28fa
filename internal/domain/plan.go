// internal/domain/plan.go
package domain

// Fixed cardinalities of the published plan shape. Every client plan is
// normalized to exactly these counts before it is edited or published.
const (
	WeeksPerPlan       = 7
	SessionsPerWeek    = 3
	ExerciseRowsPerDay = 5
	AssessmentRows     = 4
	IndependentDays    = 2
)

// PlanDocument is the root aggregate published to the remote store. It holds
// every client's training plan plus any reusable templates the trainer keeps.
type PlanDocument struct {
	Clients     []ClientPlan   `json:"clients"`
	Templates   []PlanTemplate `json:"templates,omitempty"`
	LastUpdated string         `json:"lastUpdated"` // yyyy-mm-dd
}

// ClientPlan is one client's full multi-week program. Owned exclusively by
// the PlanDocument; the id is a stable lowercase slug unique per document.
type ClientPlan struct {
	ID               string          `json:"id"`
	Profile          ClientProfile   `json:"profile"`
	Goals            ClientGoals     `json:"goals"`
	ProgramAtAGlance []GlanceRow     `json:"programAtAGlance"`
	Weeks            []Week          `json:"weeks"`
	FinalAssessment  FinalAssessment `json:"finalAssessment"`
}

type ClientProfile struct {
	ClientName              string   `json:"clientName"`
	TrainerName             string   `json:"trainerName"`
	ProgramStartDate        string   `json:"programStartDate"`
	ProgramEndDate          string   `json:"programEndDate"`
	PrimaryGoal             string   `json:"primaryGoal"`
	WeeklyCoachedSessionDay string   `json:"weeklyCoachedSessionDay"`
	IndependentSessionDays  []string `json:"independentSessionDays"`
}

type ClientGoals struct {
	PrimaryGoalInOwnWords string `json:"primaryGoalInOwnWords"`
	SuccessAfter7Weeks    string `json:"successAfter7Weeks"`
	OneThingToImprove     string `json:"oneThingToImprove"`
}

// GlanceRow is one line of the "program at a glance" overview table.
type GlanceRow struct {
	Phase         string `json:"phase"`
	Weeks         string `json:"weeks"`
	Focus         string `json:"focus"`
	LoadIntensity string `json:"loadIntensity"`
	Notice        string `json:"notice"`
}

// Week holds the three sessions and the client check-in for one program week.
type Week struct {
	Number        int       `json:"number"`
	DateRange     string    `json:"dateRange"`
	Phase         string    `json:"phase"`
	Tagline       string    `json:"tagline"`
	Sessions      []Session `json:"sessions"`
	ClientCheckIn CheckIn   `json:"clientCheckIn"`
}

type Session struct {
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	Date      string        `json:"date"`
	Focus     string        `json:"focus"`
	Exercises []ExerciseRow `json:"exercises"`
}

type ExerciseRow struct {
	Exercise  string `json:"exercise"`
	Equipment string `json:"equipment"`
	Sets      string `json:"sets"`
	Reps      string `json:"reps"`
	Effort    string `json:"effort"`
	Notes     string `json:"notes"`
}

// CheckIn is the client's weekly self-report. CompletedSessions is clamped
// to [0, SessionsPerWeek].
type CheckIn struct {
	Energy            string `json:"energy"`
	Soreness          string `json:"soreness"`
	WinsChallenges    string `json:"winsChallenges"`
	TrainerNotes      string `json:"trainerNotes"`
	CompletedSessions int    `json:"completedSessions"`
	NextWeek          string `json:"nextWeek"`
}

type FinalAssessment struct {
	Date           string          `json:"date"`
	Items          []AssessmentRow `json:"items"`
	ProudOf        string          `json:"proudOf"`
	KeepWorkingOn  string          `json:"keepWorkingOn"`
	TrainerSummary string          `json:"trainerSummary"`
}

// AssessmentRow scores are free text ("12 push-ups", "+4") rather than
// numbers, matching what trainers actually type into the table.
type AssessmentRow struct {
	Assessment    string `json:"assessment"`
	StartingScore string `json:"startingScore"`
	FinalScore    string `json:"finalScore"`
	Change        string `json:"change"`
}

// PlanTemplate is a reusable program skeleton used to stamp out new clients.
// It carries the plan structure without any client identity.
type PlanTemplate struct {
	Name             string          `json:"name"`
	ProgramAtAGlance []GlanceRow     `json:"programAtAGlance"`
	Weeks            []Week          `json:"weeks"`
	FinalAssessment  FinalAssessment `json:"finalAssessment"`
}
