package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalActor(t *testing.T) {
	var p *Principal
	assert.Equal(t, "admin", p.Actor())

	p = &Principal{Email: "ops@example.com"}
	assert.Equal(t, "admin:ops@example.com", p.Actor())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ops@example.com", normalizeEmail("  Ops@Example.COM "))
}
