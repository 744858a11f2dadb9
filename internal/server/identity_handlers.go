package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/devhive-app/devhive/internal/store"
	"github.com/devhive-app/devhive/internal/tasks"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a freshly issued session token
type TokenResponse struct {
	Token string `json:"token"`
}

// FieldError is one human-readable validation message
type FieldError struct {
	Msg string `json:"msg"`
}

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a password with 8 or more characters",
}

var loginMessages = map[string]string{
	"Email":    "Please include a valid email",
	"Password": "Password required",
}

// fieldErrors maps validator failures onto the wire shape the client expects
func fieldErrors(err error, messages map[string]string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Msg: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value for " + fe.Field()
		}
		out = append(out, FieldError{Msg: msg})
	}
	return out
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "Invalid request body"}}})
		return
	}

	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err, registerMessages)})
		return
	}

	user, err := s.users.Create(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "User already exists"}}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Welcome task is best effort; registration must not fail on queue trouble
	if task, err := tasks.NewIdentityWelcomeTask(user.ID); err == nil {
		if _, err := s.asynqClient.Enqueue(task); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to enqueue welcome task")
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "Invalid request body"}}})
		return
	}

	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err, loginMessages)})
		return
	}

	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message whether the email or the password was wrong
			c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "Invalid username / password"}}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if err := s.users.VerifyPassword(user, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "Invalid username / password"}}})
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User logged in")

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (s *Server) currentUser(c *gin.Context) {
	userID, ok := PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	// The token only proves the id; everything else comes from the store
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token not valid"})
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
