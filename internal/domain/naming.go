package domain

import "strings"

// NamePolicy define cómo se comparan nombres al verificar unicidad.
type NamePolicy int

const (
	// NameCaseSensitive compara exactamente (comportamiento observado en catálogo y usuarios).
	NameCaseSensitive NamePolicy = iota
	// NameCaseInsensitive compara sin distinguir mayúsculas ni espacios externos.
	NameCaseInsensitive
)

// Same indica si dos nombres colisionan bajo la política.
func (p NamePolicy) Same(a, b string) bool {
	if p == NameCaseInsensitive {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return a == b
}
