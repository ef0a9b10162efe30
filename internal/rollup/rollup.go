// Package rollup groups employees into their teams with a resolved lead name
// and the materialized member list. Member identifiers that do not resolve
// are omitted, never turned into placeholders.
package rollup

import (
	"strings"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

const (
	unnamedTeam = "Unnamed Team"
	unknownLead = "Unknown Lead"
)

// TeamView is one team with its references materialized.
type TeamView struct {
	TeamID      string            `json:"teamId"`
	TeamName    string            `json:"teamName"`
	Description string            `json:"description,omitempty"`
	LeadName    string            `json:"teamLead"`
	Members     []domain.Employee `json:"members"`
}

// Teams builds a view per team. The lead name resolves through the leader
// reference first and the creator reference second; both missing yields
// "Unknown Lead". Duplicate member identifiers are collapsed.
func Teams(teams []domain.Team, employees []domain.Employee) []TeamView {
	byID := make(map[string]domain.Employee, len(employees))
	for _, e := range employees {
		byID[strings.TrimSpace(e.ID)] = e
	}

	views := make([]TeamView, 0, len(teams))
	for _, team := range teams {
		view := TeamView{
			TeamID:      team.ID,
			TeamName:    team.TeamName,
			Description: team.Description,
			LeadName:    leadName(team, byID),
			Members:     members(team, byID),
		}
		if view.TeamName == "" {
			view.TeamName = unnamedTeam
		}
		views = append(views, view)
	}
	return views
}

// TeamOf finds the view containing the given employee. ok is false when the
// employee belongs to no team, which callers treat as a terminal state
// distinct from a team whose members simply failed to resolve.
func TeamOf(views []TeamView, employeeID string) (TeamView, bool) {
	for _, v := range views {
		for _, m := range v.Members {
			if m.ID == employeeID {
				return v, true
			}
		}
	}
	return TeamView{}, false
}

func leadName(team domain.Team, byID map[string]domain.Employee) string {
	for _, ref := range []string{team.Leader, team.CreatedBy} {
		if e, ok := byID[strings.TrimSpace(ref)]; ok && e.Name != "" {
			return e.Name
		}
	}
	return unknownLead
}

func members(team domain.Team, byID map[string]domain.Employee) []domain.Employee {
	out := make([]domain.Employee, 0, len(team.Members))
	seen := make(map[string]struct{}, len(team.Members))
	for _, id := range team.Members {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
