package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name    string `json:"customerName" validate:"required"`
	Phone   string `json:"phone" validate:"required,phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"required"`
}

func TestIsPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01712345678", true},
		{"+8801712345678", true},
		{"", false},
		{"+", false},
		{"017-1234", false},
		{"88+017", false},
		{"০১৭১২", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPhone(tt.in))
		})
	}
}

func TestStruct_FieldErrors(t *testing.T) {
	v := New()

	err := v.Struct(form{Name: "Rahim", Phone: "abc", Email: "nope"})
	require.Error(t, err)

	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "must be a valid phone number", fe.Fields["phone"])
	assert.Equal(t, "must be a valid email address", fe.Fields["email"])
	assert.Equal(t, "is required", fe.Fields["address"])
	assert.NotContains(t, fe.Fields, "customerName")
	assert.Contains(t, err.Error(), "address is required")
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, New().Struct(form{Name: "Rahim", Phone: "+880", Address: "Dhaka"}))
}

func TestFieldErrors_Err(t *testing.T) {
	var fe FieldErrors
	assert.NoError(t, fe.Err())
	fe.Add("address", "is required")
	fe.Add("address", "ignored")
	assert.Equal(t, "is required", fe.Fields["address"])
	assert.Error(t, fe.Err())
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("book-V1StGXR8_Z5jdHi6B"))
	assert.True(t, errors.Is(ValidateID(""), ErrEmptyString))
	assert.True(t, errors.Is(ValidateID("../etc"), ErrInvalidID))
}
