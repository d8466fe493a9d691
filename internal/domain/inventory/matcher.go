package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

var folder = cases.Fold()

// NameKey clave de comparación de nombres de producto: sin espacios en los extremos y con
// plegado Unicode completo ("Straße" y "STRASSE" dan "strasse"). Se persiste junto al producto.
func NameKey(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// SameName compara nombres sin distinguir mayúsculas (incluye acentos en mayúscula: "AÇÚCAR" == "açúcar").
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// MatchProduct elige el producto al que se aplica una línea de la nota.
// Primero por nombre, después por código (solo si la línea trae código).
// Nombres repetidos en el catálogo se resuelven con el primer candidato.
func MatchProduct(candidates []*entity.Product, name, code string) *entity.Product {
	for _, p := range candidates {
		if SameName(p.Name, name) {
			return p
		}
	}
	if code == "" {
		return nil
	}
	for _, p := range candidates {
		if p.Code == code {
			return p
		}
	}
	return nil
}
