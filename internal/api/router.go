package api

import "github.com/gin-gonic/gin"

// NewRouter assembles the HTTP surface. Auth routes are open; the rest
// sit behind the session middleware.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.POST("/auth/signup", PostSignUp(app))
	r.POST("/auth/signin", PostSignIn(app))

	authed := r.Group("/")
	authed.Use(AuthMiddleware(app))
	{
		authed.GET("/dashboard", GetDashboard(app))
		authed.GET("/profile", GetProfile(app))
		authed.POST("/daily", PostDaily(app))
		authed.GET("/daily/status", GetDailyStatus(app))
		authed.GET("/daily-goal", GetDailyGoal(app))
		authed.GET("/weekly", GetWeekly(app))
		authed.POST("/chat", PostChat(app))
		authed.GET("/reminders", GetReminders(app))
		authed.GET("/goals", GetGoals(app))
		authed.GET("/achievements", GetAchievements(app))
		authed.GET("/recommendations", GetRecommendations(app))
		authed.GET("/countries", GetCountries(app))

		authed.POST("/onboarding/start", PostOnboardingStart(app))
		authed.POST("/onboarding/answer", PostOnboardingAnswer(app))
		authed.POST("/onboarding/complete", PostOnboardingComplete(app))
		authed.GET("/onboarding/messages", GetOnboardingMessages(app))
	}

	return r
}
