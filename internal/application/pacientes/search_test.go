package pacientes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renacer/clinica-api/internal/application/pacientes"
)

func TestNormalizar(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Pérez", "perez"},
		{"  GARCÍA  ", "garcia"},
		{"Muñoz", "munoz"},
		{"José Andrés", "jose andres"},
		{"1020304050", "1020304050"},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, pacientes.Normalizar(c.in), "Normalizar(%q)", c.in)
	}
}
