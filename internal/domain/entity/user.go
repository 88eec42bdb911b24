package entity

import "strings"

// AccessLevel nivel de acceso plano del sistema.
type AccessLevel string

// Niveles válidos para User.
const (
	LevelManager  AccessLevel = "MANAGER"  // gerente
	LevelOperator AccessLevel = "OPERATOR" // operador
	LevelViewer   AccessLevel = "VIEWER"   // visualizador
)

// Valid indica si el nivel es uno de los tres conocidos.
func (l AccessLevel) Valid() bool {
	switch l {
	case LevelManager, LevelOperator, LevelViewer:
		return true
	}
	return false
}

// ParseAccessLevel interpreta el nombre canónico del nivel (sin distinguir mayúsculas).
func ParseAccessLevel(s string) (AccessLevel, bool) {
	l := AccessLevel(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}

// User cuenta de acceso (hoja "usuarios"). Password se guarda tal cual está en la planilla
// (texto plano o hash bcrypt si AUTH_HASH_PASSWORDS está activo).
type User struct {
	Username string
	Password string
	Level    AccessLevel
}
