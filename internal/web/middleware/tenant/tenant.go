package tenant

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	// LocalsTenantID is the fiber locals key of the tenant id.
	LocalsTenantID = "tenant_id"
	// LocalsUserID is the fiber locals key of the user id.
	LocalsUserID = "user_id"

	// HeaderTenantID names the tenant in dev mode.
	HeaderTenantID = "X-Tenant-ID"
	// HeaderUserID names the user in dev mode.
	HeaderUserID = "X-User-ID"

	bearerPrefix = "Bearer "
)

var (
	// ErrMissingToken is returned when no bearer token was sent.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when the token can not be verified.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingTenant is returned when a verified token names no tenant or user.
	ErrMissingTenant = errors.New("token carries no tenant or user")
)

// Claims are the token claims the service relies on.
type Claims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Config of the middleware.
type Config struct {
	// Secret verifies HS256 tokens.
	Secret string
	// Issuer is checked when set.
	Issuer string
	// DevMode enables the header fallback.
	DevMode bool
}

// New verifies the caller and stores tenant and user in the request locals.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, userID, err := resolve(c, cfg)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("request not authenticated")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
				"kind":  "unauthorized",
			})
		}

		c.Locals(LocalsTenantID, tenantID)
		c.Locals(LocalsUserID, userID)

		return c.Next()
	}
}

func resolve(c *fiber.Ctx, cfg Config) (string, string, error) {
	header := c.Get(fiber.HeaderAuthorization)

	if header == "" {
		if cfg.DevMode && c.Get(HeaderTenantID) != "" && c.Get(HeaderUserID) != "" {
			return c.Get(HeaderTenantID), c.Get(HeaderUserID), nil
		}

		return "", "", ErrMissingToken
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return "", "", ErrMissingToken
	}

	claims, err := Parse(strings.TrimPrefix(header, bearerPrefix), cfg)
	if err != nil {
		return "", "", err
	}

	return claims.TenantID, claims.Subject, nil
}

// Parse verifies a token and returns its claims.
func Parse(token string, cfg Config) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TenantID == "" || claims.Subject == "" {
		return nil, ErrMissingTenant
	}

	return claims, nil
}

// Sign issues a token for a tenant user. Used by the CLI and tests.
func Sign(cfg Config, tenantID, userID string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// ID returns the tenant of the request, or "" outside the middleware.
func ID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalsTenantID).(string)

	return v
}

// UserID returns the user of the request, or "" outside the middleware.
func UserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalsUserID).(string)

	return v
}
