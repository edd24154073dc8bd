// Package goals tracks patient-set health targets against the current
// profile values.
package goals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/utility"
)

var queries *database.Queries

func InitGoals(dbpool *pgxpool.Pool) {
	queries = database.New(dbpool)
}

// lowerIsBetter holds the goal types where progress means decreasing;
// hdl is the only increasing one.
var lowerIsBetter = map[string]bool{
	"bmi":           true,
	"glucose":       true,
	"weight":        true,
	"triglycerides": true,
}

type GoalRequest struct {
	GoalType    string  `json:"goal_type"`
	TargetValue float64 `json:"target_value"`
	Deadline    *string `json:"deadline"` // YYYY-MM-DD
}

// GoalResponse is a stored goal plus its computed progress.
type GoalResponse struct {
	database.HealthGoal
	ProgressPercent *float64 `json:"progress_percent"`
}

// Progress scores a goal against the current value: 0-100, nil when the
// current value is unknown.
func Progress(goalType string, current *float64, target float64) *float64 {
	if current == nil || *current == 0 || target == 0 {
		return nil
	}
	var p float64
	switch {
	case lowerIsBetter[goalType]:
		p = (1 - (*current-target)/(*current)) * 100
	case goalType == "hdl":
		p = *current / target * 100
	default:
		return nil
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return &p
}

// currentValueFor reads the profile field this goal type tracks.
func currentValueFor(goalType string, p *database.PatientProfile) *float64 {
	if p == nil {
		return nil
	}
	switch goalType {
	case "bmi":
		return p.Bmi
	case "glucose":
		return p.FastingGlucoseMgDl
	case "weight":
		w := p.WeightKg
		return &w
	case "triglycerides":
		return p.TriglyceridesMgDl
	case "hdl":
		return p.HdlCholesterolMgDl
	}
	return nil
}

// CreateGoalHandler stores a goal seeded with the current profile value.
// POST /goals
func CreateGoalHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if !lowerIsBetter[req.GoalType] && req.GoalType != "hdl" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "goal_type must be bmi, glucose, weight, triglycerides, or hdl",
		})
	}
	if req.TargetValue <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "target_value must be positive"})
	}

	ctx := c.Request().Context()
	var current *float64
	profile, err := queries.GetPatientProfileByUserID(ctx, userID)
	if err == nil {
		current = currentValueFor(req.GoalType, &profile)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch profile for goal")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	stored, err := queries.CreateHealthGoal(ctx, database.HealthGoal{
		UserID:       userID,
		GoalType:     req.GoalType,
		TargetValue:  req.TargetValue,
		CurrentValue: current,
		Deadline:     req.Deadline,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to create goal")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, GoalResponse{
		HealthGoal:      stored,
		ProgressPercent: Progress(stored.GoalType, stored.CurrentValue, stored.TargetValue),
	})
}

// ListGoalsHandler lists the caller's goals with progress.
// GET /goals
func ListGoalsHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	stored, err := queries.ListHealthGoals(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list goals")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	out := make([]GoalResponse, len(stored))
	for i, g := range stored {
		out[i] = GoalResponse{
			HealthGoal:      g,
			ProgressPercent: Progress(g.GoalType, g.CurrentValue, g.TargetValue),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// AchieveGoalHandler marks a goal as achieved.
// PUT /goals/:id/achieve
func AchieveGoalHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid goal id"})
	}
	affected, err := queries.MarkGoalAchieved(c.Request().Context(), int32(id), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to mark goal achieved")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Goal not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Goal marked as achieved"})
}

// DeleteGoalHandler removes a goal.
// DELETE /goals/:id
func DeleteGoalHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid goal id"})
	}
	affected, err := queries.DeleteHealthGoal(c.Request().Context(), int32(id), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to delete goal")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Goal not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
