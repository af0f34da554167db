package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

func profile() domain.Profile {
	return domain.Profile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		HouseNumber: "12",
		Street:      "St James's Square",
		PostalCode:  "SW1Y 4JH",
	}
}

func TestPatron_Register(t *testing.T) {
	patron := domain.NewPatron(half)
	require.NoError(t, patron.Hold(performance(1, "10", 5, 5), 1, 0))
	assert.False(t, patron.IsRegistered())

	require.NoError(t, patron.Register(42, profile()))

	id, ok := patron.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.True(t, patron.IsRegistered())
	assert.Equal(t, "Ada", patron.Profile().FirstName)
	assert.Equal(t, 1, patron.Basket().Len(), "basket persists across registration")
}

func TestPatron_Register_NegativeIDLeavesIdentityUnset(t *testing.T) {
	patron := domain.NewPatron(half)

	err := patron.Register(-1, profile())

	assert.ErrorIs(t, err, domain.ErrRegistrationFailed)
	assert.False(t, patron.IsRegistered())
	assert.Empty(t, patron.Profile().FirstName)
	_, ok := patron.ID()
	assert.False(t, ok)
}

func TestProfile_Validate(t *testing.T) {
	p := profile()
	p.LastName = " "
	p.PostalCode = ""

	err := p.Validate()

	assert.ErrorIs(t, err, domain.ErrRegistrationFailed)
	assert.Contains(t, err.Error(), "last name is required")
	assert.Contains(t, err.Error(), "postal code is required")
}

func TestPatron_RemoveFromBasketByID(t *testing.T) {
	patron := domain.NewPatron(half)
	require.NoError(t, patron.Hold(performance(1, "10", 5, 5), 1, 0))

	patron.RemoveFromBasketByID(1)

	assert.True(t, patron.Basket().IsEmpty())
}
