package identity

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultAdminEmail is the fallback when ADMIN_EMAIL is unset, matching
// the address the dashboard seeded its admin profile with.
const DefaultAdminEmail = "admin@company.com"

// User is the authenticated caller as seen by the feature services.
type User struct {
	Email      string
	Department string
	Admin      bool
}

// Provider answers who the current caller is and whether an address holds
// the admin role. Injected everywhere so no package hardcodes the email.
//
//go:generate mockgen -source=identity.go -destination=mock/identity_mock.go -package=mock
type Provider interface {
	IsAdmin(email string) bool
	FromGinContext(c *gin.Context) User
}

type provider struct {
	adminEmail string
}

// NewProvider builds a Provider around a single designated admin address.
// Blank falls back to DefaultAdminEmail.
func NewProvider(adminEmail string) Provider {
	if strings.TrimSpace(adminEmail) == "" {
		adminEmail = DefaultAdminEmail
	}
	return &provider{adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

func (p *provider) IsAdmin(email string) bool {
	return strings.ToLower(strings.TrimSpace(email)) == p.adminEmail
}

// FromGinContext reads the claims the auth middleware validated.
func (p *provider) FromGinContext(c *gin.Context) User {
	email := c.GetString("user_email")
	return User{
		Email:      email,
		Department: c.GetString("user_department"),
		Admin:      p.IsAdmin(email),
	}
}
