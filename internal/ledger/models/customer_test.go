package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teller/internal/ledger"
)

func TestValidateName(t *testing.T) {
	valid := []string{"John", "Mary Ann", "John Smith", "A", "Jean Luc Picard"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), "name %q", name)
	}

	invalid := []string{
		"john",        // lowercase first letter
		"John  Smith", // double space
		"John3",       // digit
		" John",       // leading space
		"John ",       // trailing space
		"JOhn",        // capital mid-word
		"",
	}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateName(name), ledger.ErrInvalidName, "name %q", name)
	}
}

func TestValidateExternalID(t *testing.T) {
	valid := []string{"john1", "MARY2", "a", "0", "abc123XYZ"}
	for _, id := range valid {
		assert.NoError(t, ValidateExternalID(id), "id %q", id)
	}

	invalid := []string{"", "john 1", "john-1", "john_1", "jöhn", "john!"}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateExternalID(id), ledger.ErrInvalidID, "id %q", id)
	}
}

func TestNewCustomer(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("derives account number from sequence", func(t *testing.T) {
		c, err := NewCustomer("John Smith", "john1", 1, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), c.Sequence)
		assert.Equal(t, int64(1001), c.AccountNumber())
		assert.Equal(t, now, c.CreatedAt)
		require.NotNil(t, c.Account())
		assert.True(t, c.Account().Balance().IsZero())
	})

	t.Run("same account instance for the customer's lifetime", func(t *testing.T) {
		c, err := NewCustomer("Mary Ann", "mary2", 2, now)
		require.NoError(t, err)
		assert.Same(t, c.Account(), c.Account())
	})

	t.Run("rejects invalid name", func(t *testing.T) {
		_, err := NewCustomer("john", "john1", 1, now)
		assert.ErrorIs(t, err, ledger.ErrInvalidName)
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		_, err := NewCustomer("John", "john 1", 1, now)
		assert.ErrorIs(t, err, ledger.ErrInvalidID)
	})
}
