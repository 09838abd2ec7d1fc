package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePinFormat(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{name: "Valid", pin: "0427", wantErr: false},
		{name: "Too short", pin: "123", wantErr: true},
		{name: "Too long", pin: "12345", wantErr: true},
		{name: "Letters", pin: "12a4", wantErr: true},
		{name: "Empty", pin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePinFormat(tt.pin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndVerifyPin(t *testing.T) {
	hash, err := HashPin("4321")
	assert.NoError(t, err)
	assert.NotEqual(t, "4321", hash)

	assert.True(t, VerifyPin("4321", hash))
	assert.False(t, VerifyPin("1234", hash))
	assert.False(t, VerifyPin("4321", "not-a-hash"))
}

func TestHashPinRejectsBadFormat(t *testing.T) {
	_, err := HashPin("nope")
	assert.Error(t, err)
}
