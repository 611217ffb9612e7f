package handlers

import (
	"errors"
	"net/http"

	"healthoffice_backend/internal/auth"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/repositories"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler issues bearer tokens for the admin console.
type AuthHandler struct {
	*BaseHandler
	users  repositories.UserRepository
	issuer *auth.TokenIssuer
}

func NewAuthHandler(base *BaseHandler, users repositories.UserRepository, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{BaseHandler: base, users: users, issuer: issuer}
}

func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewUnauthorizedError("Invalid username or password"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "auth"))
		}
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Invalid username or password"))
		return
	}

	token, err := h.issuer.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
