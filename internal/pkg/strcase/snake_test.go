package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"Email":       "email",
		"FirstName":   "first_name",
		"NewPassword": "new_password",
		"OTP":         "otp",
		"UserID":      "user_id",
		"HTTPServer":  "http_server",
		"Field2Name":  "field2_name",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ToLowerSnake(in))
		})
	}
}
