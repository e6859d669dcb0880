package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/jwthelper"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	userIDKey = "userID"
	userKey   = "user"
)

var errMissingToken = errors.New("missing access token")

type TokenVerifier interface {
	VerifyAccessToken(token string) (*jwthelper.Claims, error)
}

type Authenticator struct {
	tokens TokenVerifier
}

func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{
		tokens: tokens,
	}
}

// VerifyJWT reads the access token from the Authorization header, falling back
// to the access_token cookie. No token is a 401, a bad one a 403. Only the
// user id is kept from the claims.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := accessToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := a.tokens.VerifyAccessToken(token)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken(fmt.Errorf("a.tokens.VerifyAccessToken -> %w", err)))
			return
		}

		ctx.Set(userIDKey, claims.UserID)
		ctx.Next()
	}
}

func accessToken(ctx *gin.Context) string {
	if header := ctx.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}

	cookie, err := ctx.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie
}

// UserID returns the id attached by VerifyJWT.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
