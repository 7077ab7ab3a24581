package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mug", "mug"},
		{"Crème Brûlée Mug", "creme-brulee-mug"},
		{"  Hello,   World!  ", "hello-world"},
		{"T-Shirt (XL) 100%", "t-shirt-xl-100"},
		{"Ångström", "angstrom"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}
