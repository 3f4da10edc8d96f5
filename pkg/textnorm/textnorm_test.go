package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

func TestKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Tomate Roma", "tomate roma"},
		{"  Tomáte   ROMA ", "tomate roma"},
		{"Jalapeño", "jalapeno"},
		{"CEBOLLA\tblanca", "cebolla blanca"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textnorm.Key(tc.in), "entrada %q", tc.in)
	}
}

func TestKey_MismaClave(t *testing.T) {
	assert.Equal(t, textnorm.Key("Chile Poblano"), textnorm.Key("chile  POBLANO"))
	assert.NotEqual(t, textnorm.Key("Chile Poblano"), textnorm.Key("Chile Serrano"))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Tomáte ROMA", textnorm.Clean("  Tomáte   ROMA "))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Aguacate Hass México", "mexico"))
	assert.True(t, textnorm.Contains("Aguacate Hass México", ""))
	assert.False(t, textnorm.Contains("Aguacate Hass", "limon"))
}
