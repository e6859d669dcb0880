package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/request"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/middleware"
	"github.com/clubhouse-hq/clubhouse-api/internal/config"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

var errMissingRefreshToken = errors.New("missing refresh token")

type AuthService interface {
	Signup(ctx context.Context, user domain.User) (service.Session, error)
	Login(ctx context.Context, login, password string) (service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (service.Session, error)
	Logout(ctx context.Context, userID uint) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSignup godoc
// @Summary      Signup a new member
// @Description  Creates a member account (role user, score 0) and sets the access_token and refresh_token cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.SignupRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=response.AuthSession}
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	session, err := h.svc.Signup(ctx.Request.Context(), domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
			return
		}
		if errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUsernameExists))
			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.setSessionCookies(ctx, session)
	response.Render(ctx, http.StatusCreated, "User registered successfully", response.AuthSession{
		User:        session.User,
		AccessToken: session.AccessToken,
	})
}

// HandleLogin godoc
// @Summary      Login with email or username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=response.AuthSession}
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	session, err := h.svc.Login(ctx.Request.Context(), req.Login(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.setSessionCookies(ctx, session)
	response.Render(ctx, http.StatusOK, "Login successful", response.AuthSession{
		User:        session.User,
		AccessToken: session.AccessToken,
	})
}

// HandleLogout godoc
// @Summary      Logout
// @Description  Forgets the stored refresh token and clears both auth cookies.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), userID); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.clearSessionCookies(ctx)
	response.Render(ctx, http.StatusOK, "Logged out successfully", nil)
}

// HandleRefreshToken godoc
// @Summary      Mint a new access token
// @Description  Reads the refresh_token cookie and, when it is still the stored one, sets a fresh access_token cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=response.AccessToken}
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/refreshToken [post]
func (h *AuthHandler) HandleRefreshToken(ctx *gin.Context) {
	refreshToken, err := ctx.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		response.RenderErr(ctx, response.ErrUnauthorized(errMissingRefreshToken))
		return
	}

	session, err := h.svc.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.RenderErr(ctx, response.ErrInvalidToken(err))
			return
		}

		err = fmt.Errorf("v1.HandleRefreshToken -> h.svc.Refresh -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.setCookie(ctx, middleware.AccessTokenCookie, session.AccessToken, int(h.conf.AccessTokenTTL.Seconds()))
	response.Render(ctx, http.StatusOK, "Token refreshed", response.AccessToken{
		AccessToken: session.AccessToken,
	})
}

// HandleVerifyJWT godoc
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /auth/verifyJWT [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleVerifyJWT(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	response.Render(ctx, http.StatusOK, "Token is valid", user)
}

func (h *AuthHandler) setSessionCookies(ctx *gin.Context, session service.Session) {
	h.setCookie(ctx, middleware.AccessTokenCookie, session.AccessToken, int(h.conf.AccessTokenTTL.Seconds()))
	h.setCookie(ctx, middleware.RefreshTokenCookie, session.RefreshToken, int(h.conf.RefreshTokenTTL.Seconds()))
}

func (h *AuthHandler) clearSessionCookies(ctx *gin.Context) {
	h.setCookie(ctx, middleware.AccessTokenCookie, "", -1)
	h.setCookie(ctx, middleware.RefreshTokenCookie, "", -1)
}

func (h *AuthHandler) setCookie(ctx *gin.Context, name, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(name, value, maxAge, "/", "", h.conf.SecureCookies(), true)
}
