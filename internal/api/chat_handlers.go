package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/chat"
)

type chatBody struct {
	Message string `json:"message" binding:"required"`
}

func PostChat(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body chatBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		reply, err := app.Assistant().HandleMessage(c.Request.Context(), user.ID, body.Message)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Chat failed")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"reply": reply}, nil)
	}
}

func PostOnboardingStart(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		messages := app.Onboarding().Start(user.ID)
		HandleSuccess(c, app.Logger(), messages, nil)
	}
}

func PostOnboardingAnswer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body chatBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		reply, done, err := app.Onboarding().Answer(c.Request.Context(), user.ID, body.Message)
		if err != nil {
			var vErr *chat.ValidationError
			switch {
			case errors.As(err, &vErr):
				HandleError(c, app.Logger(), err, 400, "Invalid answer")
			case errors.Is(err, chat.ErrFlowComplete):
				HandleError(c, app.Logger(), err, 409, "Onboarding already complete")
			default:
				HandleError(c, app.Logger(), err, 500, "Failed to process answer")
			}
			return
		}

		meta := map[string]any{"done": done}
		HandleSuccess(c, app.Logger(), reply, meta)
	}
}

func GetOnboardingMessages(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		messages, err := app.Onboarding().Messages(user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 404, "No onboarding session")
			return
		}

		HandleSuccess(c, app.Logger(), messages, nil)
	}
}

func PostOnboardingComplete(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		analysis, err := app.Onboarding().Complete(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to complete onboarding")
			return
		}

		HandleSuccess(c, app.Logger(), analysis, nil)
	}
}
