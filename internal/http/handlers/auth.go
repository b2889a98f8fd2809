package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/dedekindkali/FFF/internal/http/middleware"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/utils"
	"github.com/gin-gonic/gin"
)

// PhoneRegion is the default region for normalizing contact numbers,
// set from the environment at startup.
var PhoneRegion = "IT"

type loginRequest struct {
	Username string `json:"username" binding:"required"`
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// POST /api/auth/login — login-or-create by handle.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		RespondError(c, http.StatusBadRequest, "invalid username", nil)
		return
	}

	repo := repositories.UserRepository{}
	user, err := repo.GetByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		user, err = repo.Create(username, "", "")
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not log in", err)
		return
	}

	token, err := middleware.SignToken(user.ID, user.IsAdmin)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// POST /api/auth/signup — explicit account creation with contact fields.
func Signup(c *gin.Context) {
	var req signupRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		RespondError(c, http.StatusBadRequest, "invalid username", nil)
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" {
		normalized, err := utils.NormalizePhoneNumber(phone, PhoneRegion)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid phone number", err)
			return
		}
		phone = normalized
	}

	repo := repositories.UserRepository{}
	if _, err := repo.GetByUsername(username); err == nil {
		RespondError(c, http.StatusConflict, "username already taken", nil)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		RespondError(c, http.StatusInternalServerError, "could not sign up", err)
		return
	}

	user, err := repo.Create(username, strings.TrimSpace(req.Email), phone)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not sign up", err)
		return
	}

	token, err := middleware.SignToken(user.ID, user.IsAdmin)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// POST /api/auth/logout — the token is client-held, so logout is an
// acknowledgement; clients drop the token.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	user, err := repositories.UserRepository{}.GetByID(rc.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "user not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
