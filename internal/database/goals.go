package database

import (
	"context"
)

const goalColumns = `id, user_id, goal_type, target_value, current_value, deadline,
is_achieved, achieved_at, created_at`

func scanGoal(row interface{ Scan(dest ...any) error }) (HealthGoal, error) {
	var g HealthGoal
	err := row.Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetValue, &g.CurrentValue,
		&g.Deadline, &g.IsAchieved, &g.AchievedAt, &g.CreatedAt)
	return g, err
}

const createHealthGoal = `
INSERT INTO health_goals (user_id, goal_type, target_value, current_value, deadline)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + goalColumns

func (q *Queries) CreateHealthGoal(ctx context.Context, g HealthGoal) (HealthGoal, error) {
	row := q.db.QueryRow(ctx, createHealthGoal, g.UserID, g.GoalType, g.TargetValue, g.CurrentValue, g.Deadline)
	return scanGoal(row)
}

const listHealthGoals = `
SELECT ` + goalColumns + ` FROM health_goals WHERE user_id = $1 ORDER BY created_at DESC
`

func (q *Queries) ListHealthGoals(ctx context.Context, userID string) ([]HealthGoal, error) {
	rows, err := q.db.Query(ctx, listHealthGoals, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var goals []HealthGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

const markGoalAchieved = `
UPDATE health_goals SET is_achieved = TRUE, achieved_at = now()
WHERE id = $1 AND user_id = $2
`

func (q *Queries) MarkGoalAchieved(ctx context.Context, id int32, userID string) (int64, error) {
	tag, err := q.db.Exec(ctx, markGoalAchieved, id, userID)
	return tag.RowsAffected(), err
}

const deleteHealthGoal = `
DELETE FROM health_goals WHERE id = $1 AND user_id = $2
`

func (q *Queries) DeleteHealthGoal(ctx context.Context, id int32, userID string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteHealthGoal, id, userID)
	return tag.RowsAffected(), err
}
