// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationFields struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,strong_password"`
	UserType string `validate:"required,user_type"`
}

func validFields() registrationFields {
	return registrationFields{
		Username: "ada_lovelace",
		Password: "Str0ng!pass",
		UserType: "researcher",
	}
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, ValidateStruct(validFields()))
}

func TestValidateUserType(t *testing.T) {
	for _, role := range []string{"researcher", "reader", "operator"} {
		f := validFields()
		f.UserType = role
		assert.NoError(t, ValidateStruct(f), role)
	}

	f := validFields()
	f.UserType = "admin"
	err := ValidateStruct(f)
	require.Error(t, err)

	details := GetValidationErrors(err)
	require.Len(t, details, 1)
	assert.Equal(t, "usertype", details[0].Field)
	assert.Equal(t, "user_type", details[0].Tag)
	assert.Equal(t, "User type must be researcher, reader, or operator", details[0].Message)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{"letters and underscore", "jane_doe", true},
		{"minimum length", "abc", true},
		{"too short", "ab", false},
		{"spaces rejected", "jane doe", false},
		{"punctuation rejected", "jane.doe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			f.Username = tt.username
			err := ValidateStruct(f)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"all classes", "Str0ng!pass", true},
		{"too short", "S0r!t", false},
		{"no uppercase", "str0ng!pass", false},
		{"no digit", "Strong!pass", false},
		{"no special", "Str0ngpass1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			f.Password = tt.password
			err := ValidateStruct(f)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
