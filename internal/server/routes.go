package server

import (
	"net/http"

	"DiabetesDiet/internal/auth"
	"DiabetesDiet/internal/dietary"
	"DiabetesDiet/internal/goals"
	"DiabetesDiet/internal/patient"
	"DiabetesDiet/internal/plan"
	"DiabetesDiet/internal/research"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", s.healthHandler)

	// Public auth routes
	e.POST("/auth/register", auth.RegisterHandler)
	e.POST("/auth/login", auth.LoginHandler)

	e.Use(LoggerMiddleware)

	// Protected routes
	protected := e.Group("")
	protected.Use(auth.JwtAuthMiddleware)

	// Account routes
	protected.GET("/auth/me", auth.MeHandler)
	protected.PUT("/auth/change-password", auth.ChangePasswordHandler)
	protected.DELETE("/auth/account", auth.DeactivateHandler)

	// Patient intake and anthropometric summary
	protected.POST("/patients/profile", patient.CreateProfileHandler)
	protected.GET("/patients/profile", patient.GetProfileHandler)
	protected.PUT("/patients/profile", patient.UpdateProfileHandler)
	protected.GET("/patients/profile/summary", patient.SummaryHandler)

	// Dietary assessment: 24-hour recalls, FFQ, food reference lookups
	protected.POST("/dietary/recall", dietary.SubmitRecallHandler)
	protected.GET("/dietary/recall", dietary.ListRecallsHandler)
	protected.GET("/dietary/recall/:id", dietary.GetRecallHandler)
	protected.DELETE("/dietary/recall/:id", dietary.DeleteRecallHandler)
	protected.POST("/dietary/ffq", dietary.SubmitFFQHandler)
	protected.GET("/dietary/ffq", dietary.ListFFQHandler)
	protected.GET("/dietary/foods/search", dietary.SearchFoodsHandler)
	protected.GET("/dietary/foods/categories", dietary.FoodCategoriesHandler)

	// Diet plan generation and model comparison
	protected.POST("/diet-plan/generate", plan.GenerateHandler)
	protected.GET("/diet-plan/compare", plan.CompareHandler)
	protected.GET("/diet-plan/history", plan.HistoryHandler)
	protected.GET("/diet-plan/:id", plan.GetHandler)

	// Health goals
	protected.POST("/goals", goals.CreateGoalHandler)
	protected.GET("/goals", goals.ListGoalsHandler)
	protected.PUT("/goals/:id/achieve", goals.AchieveGoalHandler)
	protected.DELETE("/goals/:id", goals.DeleteGoalHandler)

	// Investigator-only routes
	investigator := protected.Group("")
	investigator.Use(auth.RequireInvestigator)

	investigator.GET("/auth/users", auth.ListUsersHandler)
	investigator.GET("/research/stats", research.StatsHandler)
	investigator.GET("/research/patients", research.PatientsHandler)
	investigator.GET("/research/patients/:user_id/summary", research.PatientSummaryHandler)
	investigator.GET("/research/patients/:user_id/recalls", research.PatientRecallsHandler)
	investigator.GET("/research/patients/:user_id/plans", research.PatientPlansHandler)
	investigator.GET("/research/export/patients", research.ExportPatientsHandler)
	investigator.GET("/research/export/dietary-timeseries", research.ExportDietaryTimeseriesHandler)
	investigator.GET("/research/model-performance", research.ModelPerformanceHandler)
	investigator.GET("/research/system-info", research.SystemInfoHandler)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.Health())
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set("logger", &logger)

		return next(c)
	}
}
