package dashboard

import (
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/samber/lo"
)

func proj(id, name, owner string, status project.Status, budget, spent float64, createdAt string) project.Project {
	return project.Project{
		ID:        id,
		Name:      name,
		Owner:     owner,
		Status:    status,
		Budget:    budget,
		Spent:     spent,
		CreatedAt: createdAt,
	}
}

// sampleProjects is the seven-project portfolio used across tests:
// 4 active, budgets total 850, spent total 500.
func sampleProjects() []project.Project {
	return []project.Project{
		proj("1", "Website Revamp", "Maria", project.StatusActive, 100, 50, "2024-01-10"),
		proj("2", "Mobile App", "Chen", project.StatusActive, 200, 100, "2024-02-01"),
		proj("3", "Data Lake", "Priya", project.StatusPaused, 300, 150, "2023-11-20"),
		proj("4", "Office Move", "Tom", project.StatusDone, 0, 0, "2023-06-05"),
		proj("5", "Security Audit", "Maria", project.StatusActive, 50, 25, "2024-03-15"),
		proj("6", "CRM Migration", "Lena", project.StatusDone, 75, 75, "2023-09-30"),
		proj("7", "Onboarding Portal", "Chen", project.StatusActive, 125, 100, "2024-01-25"),
	}
}

func numbered(n int) []project.Project {
	out := make([]project.Project, n)
	for i := range out {
		out[i] = proj(fmt.Sprint(i+1), fmt.Sprintf("Project %02d", i+1), "Owner", project.StatusActive, float64(10*(i+1)), 1, "2024-01-01")
	}
	return out
}

func ids(records []project.Project) []string {
	return lo.Map(records, func(p project.Project, _ int) string { return p.ID })
}
