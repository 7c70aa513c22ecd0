package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/donaciones-api/internal/application/catalog"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests NormalizeLabel — clave canónica de etiquetas de categoría
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeLabel_MinusculasYEspacios(t *testing.T) {
	assert.Equal(t, "ropa", catalog.NormalizeLabel("Ropa"), "mayúsculas deben bajar a minúsculas")
	assert.Equal(t, "ropa", catalog.NormalizeLabel("  ROPA  "), "espacios exteriores deben eliminarse")
	assert.Equal(t, "ropa de invierno", catalog.NormalizeLabel("Ropa   de\tInvierno"),
		"espacios internos repetidos deben colapsar a uno")
}

func TestNormalizeLabel_SinAcentos(t *testing.T) {
	assert.Equal(t, "alimentacion", catalog.NormalizeLabel("Alimentación"))
	assert.Equal(t, "utiles escolares", catalog.NormalizeLabel("Útiles Escolares"))
	assert.Equal(t, "higiene y aseo", catalog.NormalizeLabel("Higiene y Aseo"))
}

func TestNormalizeLabel_Determinista(t *testing.T) {
	variantes := []string{"Ropa", "ropa", " ROPA ", "RoPa"}
	for _, v := range variantes {
		assert.Equal(t, "ropa", catalog.NormalizeLabel(v),
			"toda variante de la misma etiqueta debe producir la misma clave: %q", v)
	}
}

func TestNormalizeLabel_Vacia(t *testing.T) {
	assert.Equal(t, "", catalog.NormalizeLabel(""))
	assert.Equal(t, "", catalog.NormalizeLabel("   "))
}
