package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/config"
	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// UserHandler serves admin user management plus self-service profile
// endpoints.
type UserHandler struct {
	Cfg   config.Config
	Store repository.Store
}

func NewUserHandler(cfg config.Config, store repository.Store) *UserHandler {
	return &UserHandler{Cfg: cfg, Store: store}
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type updateProfileReq struct {
	Name          *string `json:"name"`
	Bio           *string `json:"bio"`
	AvatarURL     *string `json:"avatarUrl"`
	NameIsPublic  *bool   `json:"nameIsPublic"`
	EmailIsPublic *bool   `json:"emailIsPublic"`
}

// List returns all users (admin only).
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Store.Users().List(ctx)
	if err != nil {
		return storeErr(c, err, "list users failed")
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user by id (admin only).
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Store.Users().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load user failed")
	}
	return c.JSON(http.StatusOK, u)
}

// Create adds a user with an explicit role (admin only).
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleAttendee
	}
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	now := time.Now().UTC()
	u := model.User{
		ID:           utils.NewID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		NameIsPublic: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Store.Users().Create(ctx, &u); err != nil {
		return storeErr(c, err, "create user failed")
	}
	return c.JSON(http.StatusCreated, u)
}

// Update changes a user's name, email or role (admin only).
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Store.Users().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load user failed")
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !model.ValidRole(role) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
		u.Role = role
	}
	u.UpdatedAt = time.Now().UTC()

	if err := h.Store.Users().Update(ctx, &u); err != nil {
		return storeErr(c, err, "update user failed")
	}
	return c.JSON(http.StatusOK, u)
}

// Delete removes a user and, via cascade, their tickets, votes and
// refresh tokens (admin only).
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Users().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete user failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile lets the authenticated user edit their own profile
// fields. Role and email changes go through the admin endpoints.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Store.Users().GetByID(ctx, userID(c))
	if err != nil {
		return storeErr(c, err, "load user failed")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		u.AvatarURL = req.AvatarURL
	}
	if req.NameIsPublic != nil {
		u.NameIsPublic = *req.NameIsPublic
	}
	if req.EmailIsPublic != nil {
		u.EmailIsPublic = *req.EmailIsPublic
	}
	u.UpdatedAt = time.Now().UTC()

	if err := h.Store.Users().Update(ctx, &u); err != nil {
		return storeErr(c, err, "update profile failed")
	}
	return c.JSON(http.StatusOK, u)
}

// PublicProfile returns another attendee's profile, honouring their
// visibility flags.
func (h *UserHandler) PublicProfile(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Store.Users().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load user failed")
	}

	resp := echo.Map{
		"id":        u.ID,
		"bio":       u.Bio,
		"avatarUrl": u.AvatarURL,
	}
	if u.NameIsPublic {
		resp["name"] = u.Name
	}
	if u.EmailIsPublic {
		resp["email"] = u.Email
	}
	return c.JSON(http.StatusOK, resp)
}
