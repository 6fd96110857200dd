package catalog

import "fmt"

// Unassigned is shown when a referenced lookup row is missing.
const Unassigned = "unassigned"

type Teacher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Classroom string `json:"classroom"`
	Building  string `json:"building"`
	CareerID  *int64 `json:"career_id,omitempty"`

	// Account number of the student leading the group
	LeaderAccount *string `json:"leader_account,omitempty"`
}

// Descriptor renders "name (classroom - building)".
func (g Group) Descriptor() string {
	return fmt.Sprintf("%s (%s - %s)", orUnassigned(g.Name), orUnassigned(g.Classroom), orUnassigned(g.Building))
}

type Subject struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Semester int    `json:"semester"`
	CareerID *int64 `json:"career_id,omitempty"`
}

type Career struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Building struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func orUnassigned(s string) string {
	if s == "" {
		return Unassigned
	}
	return s
}
