package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"sarah@alumni.edu",
		"rohit.kumar@university.ac.in",
		"first+tag@example.co",
	}
	for _, email := range valid {
		assert.Truef(t, IsValidEmail(email), "%q should be accepted", email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local-part.com",
		"missing-domain@",
		"spaces in@address.com",
		"no-tld@domain",
	}
	for _, email := range invalid {
		assert.Falsef(t, IsValidEmail(email), "%q should be rejected", email)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"9876543210",
		"+919876543210",
		"6123456789",
	}
	for _, phone := range valid {
		assert.Truef(t, IsValidPhone(phone), "%q should be accepted", phone)
	}

	invalid := []string{
		"",
		"12345",
		"5876543210",    // must start 6-9
		"98765432101",   // too long
		"+9198765",      // too short
		"98765-43210",   // separators not allowed
	}
	for _, phone := range invalid {
		assert.Falsef(t, IsValidPhone(phone), "%q should be rejected", phone)
	}
}
