package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pax/internal/core/domain"
)

func TestDiagnostics_HasErrors(t *testing.T) {
	d := domain.NewDiagnostics()
	assert.False(t, d.HasErrors())

	d.Warning("deprecated field", "Package.yaml")
	assert.False(t, d.HasErrors())

	d.Error(errors.New("checkout failed"), "https://example.com/dep.git")
	assert.True(t, d.HasErrors())

	all := d.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "Package.yaml: warning: deprecated field", all[0].String())
	assert.Equal(t, "https://example.com/dep.git: error: checkout failed", all[1].String())
}
