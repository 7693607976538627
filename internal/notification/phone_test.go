package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0987654321", "+91987654321"},
		{"whatsapp:+1415555000", "+1415555000"},
		{"9876543210", "+919876543210"},
		{"WhatsApp:9876543210", "+919876543210"},
		{"  +919876543210 ", "+919876543210"},
		{"14155238886", "+14155238886"},
		{"whatsapp: 0987654321", "+91987654321"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in, "91"), tc.in)
	}
}

func TestNormalizePhone_CountryCodeWithPlus(t *testing.T) {
	assert.Equal(t, "+449876543210", NormalizePhone("9876543210", "+44"))
}
