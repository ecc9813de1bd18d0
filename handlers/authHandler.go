package handlers

import (
	"net/http"
	"strings"
	"time"

	"cardroom/database"
	"cardroom/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var signUpMessages = bindMessages{
	"Nickname": {
		"required": "nickname is required",
		"min":      "nickname is required",
		"max":      "nickname must be 64 characters or fewer",
	},
	"Email": {
		"required": "email is required",
		"email":    "email is not a valid address",
		"max":      "email must be 100 characters or fewer",
	},
	"Password": {
		"required": "password is required",
		"min":      "password must be at least 6 characters",
		"max":      "password must be 100 characters or fewer",
	},
	"RepeatedPassword": {
		"required": "repeated_password is required",
		"min":      "repeated_password must be at least 6 characters",
		"max":      "repeated_password must be 100 characters or fewer",
	},
}

var signInMessages = bindMessages{
	"Email": {
		"required": "email is required",
		"email":    "email is not a valid address",
	},
	"Password": {
		"required": "password is required",
	},
}

func normalizeLogin(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a user whose login is the given email.
func SignUp(c *gin.Context, store *database.Store, logger *zap.Logger) {
	var request models.SignUpRequest
	if !bindJSON(c, &request, signUpMessages) {
		return
	}
	if request.Password != request.RepeatedPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	login := normalizeLogin(request.Email)
	userID, err := store.CreateUser(c.Request.Context(), login, request.Nickname, request.Password)
	if err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email is already registered"})
			return
		}
		logger.Error("Failed to create user", zap.String("login", login), zap.Error(err))
		internalError(c)
		return
	}

	logger.Info("user signed up", zap.Uint("user_id", userID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"user_id": userID,
	})
}

// SignIn checks the credentials and records the visit.
func SignIn(c *gin.Context, store *database.Store, logger *zap.Logger) {
	var request models.SignInRequest
	if !bindJSON(c, &request, signInMessages) {
		return
	}

	ctx := c.Request.Context()
	user, err := store.SearchUserByLogin(ctx, normalizeLogin(request.Email))
	if err != nil {
		logger.Error("Failed to search user", zap.Error(err))
		internalError(c)
		return
	}
	if user == nil || user.Password != request.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := store.TouchUser(ctx, user.ID, time.Now()); err != nil {
		// sign-in still succeeds, only the visit time is stale
		logger.Warn("Failed to update last visit", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in",
		"user_id": user.ID,
	})
}
