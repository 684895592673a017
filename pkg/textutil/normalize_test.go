package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/pkg/textutil"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Café Añejo", "cafe anejo"},
		{"AZÚCAR", "azucar"},
		{"  Jabón líquido  ", "jabon liquido"},
		{"pingüino", "pinguino"},
		{"sin tildes", "sin tildes"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, textutil.Fold(c.in), "Fold(%q)", c.in)
	}
}
