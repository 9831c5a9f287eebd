package repository

import (
	"context"
	"errors"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListActive returns the current task board.
func (r *TaskRepository) ListActive(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, type, title, url, reward, is_active, created_at
		 FROM tasks WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Type, &t.Title, &t.URL, &t.Reward, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// CompletedTaskIDs returns the IDs the user already checked.
func (r *TaskRepository) CompletedTaskIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT task_id FROM user_tasks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		done[id] = true
	}
	return done, rows.Err()
}

// GetActiveByID resolves one checkable task.
func (r *TaskRepository) GetActiveByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, type, title, url, reward, is_active, created_at
		 FROM tasks WHERE id = $1 AND is_active`,
		taskID).Scan(&t.ID, &t.Type, &t.Title, &t.URL, &t.Reward, &t.IsActive, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CompleteWithTx records completion; the unique constraint makes a repeat
// check fail before any reward is paid.
func (r *TaskRepository) CompleteWithTx(ctx context.Context, tx pgx.Tx, userID, taskID int64) error {
	tag, err := tx.Exec(ctx,
		`INSERT INTO user_tasks (user_id, task_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, task_id) DO NOTHING`,
		userID, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskAlreadyCompleted
	}
	return nil
}
