package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/config"
	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository/memory"
	"github.com/cphva/cphva-connect/internal/utils"
)

func testCfg() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // cheap for tests
	}
}

func TestRegisterLoginRefresh_RotatesToken(t *testing.T) {
	store := memory.NewStore()
	h := NewAuthHandler(testCfg(), store)
	e := echo.New()

	// Register.
	c, rec := post(e, "", `{"name":"Sarah Jones","email":"Sarah@Example.com","password":"hunter2"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, model.RoleAttendee, reg.User.Role)
	assert.Equal(t, "sarah@example.com", reg.User.Email)
	require.NotEmpty(t, reg.Refresh.Token)

	// Self-registration stores a bcrypt hash, never the plaintext.
	u, err := store.Users().GetByEmail(context.Background(), "sarah@example.com")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "hunter2"))

	// Login with the wrong password is rejected.
	c, rec = post(e, "", `{"email":"sarah@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Refresh rotates: the new pair works, the old token is dead.
	c, rec = post(e, "", `{"refresh_token":"`+reg.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rotated authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rotated))
	assert.NotEqual(t, reg.Refresh.Token, rotated.Refresh.Token)

	c, rec = post(e, "", `{"refresh_token":"`+reg.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	store := memory.NewStore()
	h := NewAuthHandler(testCfg(), store)
	e := echo.New()

	c, rec := post(e, "", `{"name":"A","email":"a@example.com","password":"pw"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = post(e, "", `{"name":"B","email":"a@example.com","password":"pw"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	store := memory.NewStore()
	h := NewAuthHandler(testCfg(), store)
	e := echo.New()

	c, rec := post(e, "", `{"name":"A","email":"a@example.com","password":"pw"}`)
	require.NoError(t, h.Register(c))
	var reg authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))

	c, rec = post(e, "", `{"refresh_token":"`+reg.Refresh.Token+`"}`)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = post(e, "", `{"refresh_token":"`+reg.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
