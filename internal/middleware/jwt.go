package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/config"
	"fleethvac/internal/logger"
	"fleethvac/internal/models"
	"fleethvac/internal/services"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHeader lets a super-admin act on another tenant
const TenantHeader = "X-Tenant-ID"

// Authenticator validates bearer tokens and resolves the caller's tenant
type Authenticator struct {
	keyfunc  jwt.Keyfunc
	jwks     *keyfunc.JWKS
	options  []jwt.ParserOption
	resolver *services.TenantResolver
	logger   *zap.Logger
}

// NewAuthenticator verifies tokens against the identity provider's JWKS, or against
// the HMAC dev secret when no JWKS URL is configured
func NewAuthenticator(cfg config.AuthConfig, resolver *services.TenantResolver, log *zap.Logger) (*Authenticator, error) {
	a := &Authenticator{resolver: resolver, logger: log}

	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				log.Warn("jwks refresh failed", zap.Error(err))
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load jwks: %w", err)
		}
		a.jwks = jwks
		a.keyfunc = jwks.Keyfunc
		a.options = append(a.options, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384"}))
	case cfg.DevSecret != "":
		secret := []byte(cfg.DevSecret)
		a.keyfunc = func(*jwt.Token) (any, error) { return secret, nil }
		a.options = append(a.options, jwt.WithValidMethods([]string{"HS256"}))
		log.Warn("jwt verification uses the development secret")
	default:
		return nil, errors.New("either auth jwks url or dev secret must be configured")
	}

	if cfg.Issuer != "" {
		a.options = append(a.options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		a.options = append(a.options, jwt.WithAudience(cfg.Audience))
	}
	a.options = append(a.options, jwt.WithExpirationRequired(), jwt.WithLeeway(30*time.Second))

	return a, nil
}

// Close stops the background JWKS refresh
func (a *Authenticator) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

// verifiedIdentity is what a successfully parsed token resolves to
type verifiedIdentity struct {
	actor      models.Actor
	resolution services.Resolution
}

// JWTMiddleware handles token validation and tenant resolution
func (a *Authenticator) JWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     identityContextKey,
		ParseTokenFunc: a.parseToken,
		SuccessHandler: a.attachIdentity,
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return common.Unauthorized("missing token")
			}
			var appErr *common.AppError
			if errors.As(err, &appErr) {
				return appErr
			}
			a.logger.Debug("token rejected", zap.Error(err))
			return common.Unauthorized("invalid token")
		},
	})
}

const identityContextKey = "identity"

func (a *Authenticator) parseToken(c echo.Context, auth string) (any, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(auth, claims, a.keyfunc, a.options...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	actor := models.Actor{
		Email:   firstClaim(claims, "preferred_username", "email", "upn"),
		Name:    firstClaim(claims, "name"),
		Subject: firstClaim(claims, "oid", "sub"),
	}
	if actor.Email == "" && actor.Subject == "" {
		return nil, common.Unauthorized("token carries no identity")
	}

	requested := c.Request().Header.Get(TenantHeader)
	if requested == "" {
		requested = c.QueryParam("tenant_id")
	}
	return &verifiedIdentity{
		actor:      actor,
		resolution: a.resolver.Resolve(firstClaim(claims, "tid"), actor.Email, requested),
	}, nil
}

func (a *Authenticator) attachIdentity(c echo.Context) {
	id, ok := c.Get(identityContextKey).(*verifiedIdentity)
	if !ok {
		return
	}
	res := id.resolution

	ctx := common.WithIdentity(c.Request().Context(), res.TenantID, id.actor, res.SuperAdmin)
	reqLogger := logger.FromContext(ctx, a.logger).With(
		zap.String("tenant_id", res.TenantID),
		zap.String("actor", id.actor.Email))
	ctx = logger.WithContext(ctx, reqLogger)
	c.SetRequest(c.Request().WithContext(ctx))
}

func firstClaim(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		if v, ok := claims[name].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
