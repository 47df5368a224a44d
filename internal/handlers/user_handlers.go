package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/suburbia-storefront/internal/middleware"
	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/01moynul/suburbia-storefront/internal/users"
	"github.com/gin-gonic/gin"
)

// --- Signup & Login ---

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup is the handler for POST /api/auth/signup.
func (h *Handlers) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": signupError(err)})
		return
	}

	user := &models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     normalizeEmail(input.Email),
		CreatedAt: h.now(),
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		h.logError(c, "hash password failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.PasswordHash = password.Hash

	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		h.logError(c, "create user failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login is the handler for POST /api/auth/login. Unknown emails and wrong
// passwords get the same answer.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logError(c, "find user failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		h.logError(c, "check password failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID)
	if err != nil {
		h.logError(c, "generate token failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me is the handler for GET /api/auth/me.
func (h *Handlers) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logError(c, "find user failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func signupError(err error) string {
	switch firstInvalidField(err) {
	case "Name":
		return "Name is required"
	case "Email":
		return "A valid email is required"
	case "Password":
		return "Password must be at least 6 characters long"
	default:
		return "Invalid request body"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
