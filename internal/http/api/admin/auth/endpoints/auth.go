package endpoints

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api/admin/auth/packets"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

// Credentials identify the single site administrator.
type Credentials struct {
	JWTSecret    string
	Email        string
	PasswordHash string
}

// AuthPublicModule mounts public auth endpoints (/auth/login)
func AuthPublicModule(creds Credentials) api.Module {
	ctl := newAccountManager(creds)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.adminLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required)
func AuthSessionModule(creds Credentials) api.Module {
	ctl := newAccountManager(creds)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
	})
}

type AccountManager struct {
	creds Credentials
	now   func() time.Time
}

func newAccountManager(creds Credentials) *AccountManager {
	return &AccountManager{creds: creds, now: time.Now}
}

// POST /api/admin/auth/login
func (a *AccountManager) adminLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	passwordOK := middleware.CheckPassword(a.creds.PasswordHash, request.Password)
	if !strings.EqualFold(request.Email, a.creds.Email) || !passwordOK {
		log.Warn().Str("email", request.Email).Str("ip", ctx.ClientIP()).Msg("[admin] failed login")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(a.creds.Email, a.creds.JWTSecret, middleware.TokenTTL)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	log.Info().Str("email", a.creds.Email).Msg("[admin] logged in")
	return packets.LoginResponse{
		Token:     token,
		ExpiresAt: a.now().Add(middleware.TokenTTL).UTC().Format(time.RFC3339),
	}, nil
}

// GET /api/admin/auth/current_profile
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	return packets.ProfileResponse{Email: admin.Email, Role: "admin"}, nil
}
