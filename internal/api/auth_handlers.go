package api

import (
	"github.com/gin-gonic/gin"

	"github.com/JoelCyril/Pulso.ai/internal/service"
)

func PostSignUp(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.CredentialsRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateCredentials(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, session, err := service.SignUp(c.Request.Context(), app.Store(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Sign up failed")
			return
		}

		meta := map[string]any{"token": session.Token}
		HandleSuccess(c, app.Logger(), gin.H{"id": user.ID, "email": user.Email}, meta)
	}
}

func PostSignIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.CredentialsRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateCredentials(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, session, err := service.SignIn(c.Request.Context(), app.Store(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Sign in failed")
			return
		}

		meta := map[string]any{
			"token":     session.Token,
			"onboarded": app.Store().Onboarded(c.Request.Context(), user.ID),
		}
		HandleSuccess(c, app.Logger(), gin.H{"id": user.ID, "email": user.Email}, meta)
	}
}
