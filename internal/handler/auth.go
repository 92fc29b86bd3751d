package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	jwt   config.JWTConfig
	auth  config.AuthConfig
	users UserStore
	log   *zap.Logger
}

func NewAuthHandler(cfg config.Config, users UserStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{jwt: cfg.JWT, auth: cfg.Auth, users: users, log: log}
}

// ----- DTOs -----

type signupReq struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

const missingFields = "Missing required fields"

// Signup registers a regular user.  No token is issued.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if ok, err := bindAndValidate(c, &req, missingFields); !ok {
		return err
	}
	req.Email = strings.TrimSpace(req.Email)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return message(c, http.StatusBadRequest, "User already exists")
	case !errors.Is(err, repository.ErrUserNotFound):
		h.log.Error("signup: lookup user", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error registering user")
	}

	hash, err := utils.HashPassword(req.Password, h.auth.BcryptCost)
	if err != nil {
		h.log.Error("signup: hash password", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error registering user")
	}

	_, err = h.users.Create(ctx, model.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hash,
		Role:     model.RoleUser,
	})
	if errors.Is(err, repository.ErrEmailExists) {
		return message(c, http.StatusBadRequest, "User already exists")
	}
	if err != nil {
		h.log.Error("signup: create user", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error registering user")
	}
	return message(c, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and returns the user record with a token that
// carries only the user id.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req, missingFields); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return message(c, http.StatusBadRequest, "User does not exist")
	}
	if err != nil {
		h.log.Error("login: lookup user", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error logging in user")
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return message(c, http.StatusBadRequest, "Invalid credentials")
	}

	tok, err := utils.IssueToken(h.jwt.Secret, u.ID, "", h.jwt.TTL)
	if err != nil {
		h.log.Error("login: issue token", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error logging in user")
	}
	if h.auth.HidePasswordHash {
		u.Password = ""
	}
	return c.JSON(http.StatusOK, echo.Map{"result": u, "token": tok.Token})
}

// AdminLogin issues a token carrying the admin role.  Unknown and non-admin
// accounts are rejected before the password is checked.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req, missingFields); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		h.log.Error("admin login: lookup user", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error logging in admin")
	}
	if err != nil || !u.IsAdmin() {
		return message(c, http.StatusBadRequest, "Invalid credentials or not an admin")
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return message(c, http.StatusBadRequest, "Invalid credentials")
	}

	tok, err := utils.IssueToken(h.jwt.Secret, u.ID, u.Role, h.jwt.TTL)
	if err != nil {
		h.log.Error("admin login: issue token", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error logging in admin")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": tok.Token})
}

// ProtectedRoute echoes the claims that the JWT middleware verified.
func (h *AuthHandler) ProtectedRoute(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Token is valid",
		"decoded": c.Get("claims"),
	})
}
