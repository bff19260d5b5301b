package identity_test

import (
	"testing"

	"skillboard/internal/identity"

	"github.com/stretchr/testify/assert"
)

func TestProvider_IsAdmin(t *testing.T) {
	p := identity.NewProvider("boss@dyehouse.example")

	assert.True(t, p.IsAdmin("boss@dyehouse.example"))
	assert.True(t, p.IsAdmin("Boss@Dyehouse.Example"))
	assert.True(t, p.IsAdmin("  boss@dyehouse.example "))
	assert.False(t, p.IsAdmin("john.doe@company.com"))
	assert.False(t, p.IsAdmin(""))
}

func TestProvider_DefaultAdminEmail(t *testing.T) {
	p := identity.NewProvider("")

	assert.True(t, p.IsAdmin(identity.DefaultAdminEmail))
	assert.False(t, p.IsAdmin("someone.else@company.com"))
}
