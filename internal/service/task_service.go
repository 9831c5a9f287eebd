package service

import (
	"context"

	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskService pays one-time rewards for checked social tasks.
type TaskService struct {
	db       *pgxpool.Pool
	taskRepo *repository.TaskRepository
	balance  *BalanceService
}

func NewTaskService(db *pgxpool.Pool) *TaskService {
	return &TaskService{
		db:       db,
		taskRepo: repository.NewTaskRepository(db),
		balance:  NewBalanceService(db),
	}
}

// TaskView is a task with the user's completion flag.
type TaskView struct {
	domain.Task
	Completed bool `json:"completed"`
}

// List returns the task board annotated per user.
func (s *TaskService) List(ctx context.Context, userID int64) ([]TaskView, error) {
	tasks, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	done, err := s.taskRepo.CompletedTaskIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{Task: *t, Completed: done[t.ID]})
	}
	return views, nil
}

// Check marks the task complete and credits its reward once.
func (s *TaskService) Check(ctx context.Context, userID, taskID int64) (domain.Money, domain.Money, error) {
	task, err := s.taskRepo.GetActiveByID(ctx, taskID)
	if err != nil {
		return 0, 0, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.taskRepo.CompleteWithTx(ctx, tx, userID, taskID); err != nil {
		return 0, 0, err
	}

	newBalance, err := s.balance.CreditWithTx(ctx, tx, userID, task.Reward, domain.TxTaskReward,
		map[string]interface{}{"task_id": taskID, "task_type": string(task.Type)})
	if err != nil {
		return 0, 0, err
	}

	return task.Reward, newBalance, tx.Commit(ctx)
}
