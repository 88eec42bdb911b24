// Package access implementa la puerta de acceso: autenticación contra la hoja de usuarios,
// altas y ediciones de usuarios y la matriz de autorización por nivel.
package access

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// Columnas obligatorias de la hoja de usuarios.
var RequiredUserColumns = []string{"username", "senha", "nivel_acesso"}

// Authenticate valida usuario y contraseña. El usuario se compara sin mayúsculas y sin espacios
// externos; la contraseña se compara exacta tras recortar espacios (o contra el hash bcrypt guardado).
// missingColumns son las columnas obligatorias ausentes reportadas por el almacén.
func Authenticate(users []entity.User, missingColumns []string, username, password string) (entity.User, error) {
	if len(missingColumns) > 0 {
		return entity.User{}, domain.ErrMalformedUserTable
	}
	wanted := strings.ToLower(strings.TrimSpace(username))
	if wanted == "" {
		return entity.User{}, domain.ErrNoSuchUser
	}
	password = strings.TrimSpace(password)

	matched := false
	for _, u := range users {
		if strings.ToLower(strings.TrimSpace(u.Username)) != wanted {
			continue
		}
		matched = true
		if PasswordMatches(u.Password, password) {
			return u, nil
		}
	}
	if matched {
		return entity.User{}, domain.ErrWrongPassword
	}
	return entity.User{}, domain.ErrNoSuchUser
}

// PasswordMatches compara la contraseña recortada con el valor guardado (texto plano o bcrypt).
func PasswordMatches(stored, password string) bool {
	stored = strings.TrimSpace(stored)
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(strings.TrimSpace(password))) == nil
	}
	return stored == strings.TrimSpace(password)
}

// HashPassword genera el hash bcrypt de la contraseña recortada.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// AddUser agrega un usuario verificando unicidad del username según policy.
func AddUser(users []entity.User, u entity.User, policy domain.NamePolicy) ([]entity.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	for _, existing := range users {
		if policy.Same(existing.Username, u.Username) {
			return nil, domain.ErrDuplicateName
		}
	}
	out := append(append([]entity.User(nil), users...), u)
	return out, nil
}

// EditUser reemplaza el usuario oldUsername (coincidencia exacta, como el selector del formulario).
// El nuevo username puede ser el mismo; si cambia no debe colisionar con otro usuario.
func EditUser(users []entity.User, oldUsername string, u entity.User, policy domain.NamePolicy) ([]entity.User, error) {
	idx := -1
	for i, existing := range users {
		if existing.Username == oldUsername {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNoSuchUser
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	for i, existing := range users {
		if i != idx && policy.Same(existing.Username, u.Username) {
			return nil, domain.ErrDuplicateName
		}
	}
	out := append([]entity.User(nil), users...)
	out[idx] = u
	return out, nil
}

func validateUser(u entity.User) error {
	if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Password) == "" || !u.Level.Valid() {
		return domain.ErrInvalidInput
	}
	return nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
