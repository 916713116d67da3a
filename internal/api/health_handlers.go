package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/service"
)

func GetDashboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		dash, err := service.LoadDashboard(c.Request.Context(), app.Store(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load dashboard")
			return
		}

		HandleSuccess(c, app.Logger(), dash, nil)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profile, ok := app.Store().Profile(c.Request.Context(), user.ID)
		if !ok {
			HandleError(c, app.Logger(), service.ErrNoProfile, 409, "No health profile")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

type dailyUpdateBody struct {
	Date string `json:"date,omitempty"` // RFC 3339, defaults to now
	service.DailyUpdateRequest
}

func PostDaily(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body dailyUpdateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateDailyUpdate(&body.DailyUpdateRequest); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		date := time.Now()
		if body.Date != "" {
			parsed, err := time.Parse(time.RFC3339, body.Date)
			if err != nil {
				HandleError(c, app.Logger(), err, 400, "Invalid date")
				return
			}
			date = parsed
		}

		score, err := service.SubmitDailyUpdate(c.Request.Context(), app.Store(), user.ID, date, &body.DailyUpdateRequest)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save daily update")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"score": score}, nil)
	}
}

func GetDailyStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := map[string]any{
			"needsUpdate": service.NeedsDailyUpdate(c.Request.Context(), app.Store()),
		}
		HandleSuccess(c, app.Logger(), nil, meta)
	}
}

func GetDailyGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profile, _ := app.Store().Profile(c.Request.Context(), user.ID)
		goal, err := service.DailyGoalFor(c.Request.Context(), app.Store(), profile, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load daily goal")
			return
		}

		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func GetWeekly(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		HandleSuccess(c, app.Logger(), app.Store().WeeklyData(c.Request.Context(), user.ID), nil)
	}
}

func GetReminders(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		HandleSuccess(c, app.Logger(), app.Store().Reminders(c.Request.Context(), user.ID), nil)
	}
}

func GetGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		HandleSuccess(c, app.Logger(), app.Store().CustomGoals(c.Request.Context(), user.ID), nil)
	}
}

func GetAchievements(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		achievements, _, err := app.Store().EnsureDashboardDefaults(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load achievements")
			return
		}

		HandleSuccess(c, app.Logger(), achievements, nil)
	}
}

func GetRecommendations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		_, recommendations, err := app.Store().EnsureDashboardDefaults(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load recommendations")
			return
		}

		HandleSuccess(c, app.Logger(), recommendations, nil)
	}
}

func GetCountries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		countries, err := app.Backend().Countries(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch countries")
			return
		}
		HandleSuccess(c, app.Logger(), countries, nil)
	}
}
