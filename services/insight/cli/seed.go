package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample records for local development",
	Long: `Insert a small set of sample employees, projects, teams and tasks.

Existing records with the same IDs are overwritten. Intended for local
development only; production records arrive through the sync pipeline.`,
	RunE: runSeed,
}

func runSeed(_ *cobra.Command, _ []string) error {
	dsn := viper.GetString("postgres_dsn")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := store.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	pg := store.NewPostgres(pool)

	employees := []domain.Employee{
		{ID: "emp-" + uuid.NewString()[:8], Name: "Priya Nair", Title: "Backend Engineer", Department: "Engineering", Role: "employee"},
		{ID: "emp-" + uuid.NewString()[:8], Name: "Arun Rao", Title: "Engineering Lead", Department: "Engineering", Role: "teamlead"},
		{ID: "emp-" + uuid.NewString()[:8], Name: "Meera Das", Title: "Product Designer", Department: "Design", Role: "employee"},
	}

	project := domain.Project{
		ID:        "proj-" + uuid.NewString()[:8],
		Name:      "Billing Revamp",
		StartDate: time.Now().AddDate(0, -1, 0).Format(domain.DueDateLayout),
		Deadline:  time.Now().AddDate(0, 1, 0).Format(domain.DueDateLayout),
		Status:    domain.ProjectActive,
	}

	team := domain.Team{
		ID:       "team-" + uuid.NewString()[:8],
		TeamName: "Platform",
		Leader:   employees[1].ID,
		Members:  []string{employees[0].ID, employees[1].ID},
	}
	project.TeamID = team.ID

	now := time.Now().UTC()
	updated := now.AddDate(0, 0, -1)
	tasks := []domain.Task{
		{
			ID: uuid.NewString(), TaskID: "TASK-1", Title: "Design invoice schema",
			ProjectID: project.ID, CreatedBy: employees[1].ID, AssignedTo: employees[0].ID,
			DueDate:   now.AddDate(0, 0, 2).Format(domain.DueDateLayout),
			CreatedAt: now.AddDate(0, 0, -5),
			ProgressStatus: domain.ProgressCompleted, Status: domain.ReviewCompleted,
			ProgressUpdatedAt: &updated,
		},
		{
			ID: uuid.NewString(), TaskID: "TASK-2", Title: "Write ledger migration",
			ProjectID: project.ID, CreatedBy: employees[1].ID, AssignedTo: employees[0].ID,
			DueDate:   now.AddDate(0, 0, 5).Format(domain.DueDateLayout),
			CreatedAt: now.AddDate(0, 0, -2),
			ProgressStatus: domain.ProgressInProgress, Status: domain.ReviewPending,
		},
		{
			ID: uuid.NewString(), TaskID: "TASK-3", Title: "Review payment mocks",
			ProjectID: project.ID, CreatedBy: employees[1].ID, AssignedTo: employees[1].ID,
			DueDate:   now.AddDate(0, 0, -3).Format(domain.DueDateLayout),
			CreatedAt: now.AddDate(0, 0, -10),
			ProgressStatus: domain.ProgressPending, Status: domain.ReviewPending,
		},
	}

	count := 0
	for _, e := range employees {
		if err := pg.Put(ctx, store.CollectionEmployees, e.ID, e); err != nil {
			return err
		}
		count++
	}
	if err := pg.Put(ctx, store.CollectionProjects, project.ID, project); err != nil {
		return err
	}
	count++
	if err := pg.Put(ctx, store.CollectionTeams, team.ID, team); err != nil {
		return err
	}
	count++
	for _, t := range tasks {
		if err := pg.Put(ctx, store.CollectionTasks, t.ID, t); err != nil {
			return err
		}
		count++
	}

	fmt.Printf("seeded %d records\n", count)
	return nil
}
