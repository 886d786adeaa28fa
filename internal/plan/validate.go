// internal/plan/validate.go
package plan

import (
	"fmt"

	"github.com/akeath18/HPE-assets/internal/domain"
)

// Validate checks a document against the publish preconditions and returns
// the list of human-readable issues found. An empty slice means publishable.
func Validate(doc *domain.PlanDocument) []string {
	var issues []string

	if len(doc.Clients) == 0 {
		return append(issues, "add at least one client plan")
	}

	seen := make(map[string]bool, len(doc.Clients))
	for i := range doc.Clients {
		client := &doc.Clients[i]

		if client.ID == "" {
			issues = append(issues, fmt.Sprintf("client %d missing id", i+1))
		} else if seen[client.ID] {
			issues = append(issues, fmt.Sprintf("duplicate client id: %s", client.ID))
		}
		seen[client.ID] = true

		if client.Profile.ClientName == "" {
			issues = append(issues, fmt.Sprintf("client %d missing name", i+1))
		}
		if len(client.Weeks) == 0 {
			name := client.Profile.ClientName
			if name == "" {
				name = client.ID
			}
			issues = append(issues, fmt.Sprintf("%s missing weeks", name))
		}
	}

	return issues
}
