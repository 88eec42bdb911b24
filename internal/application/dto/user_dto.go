package dto

// CreateUserRequest alta de usuario. AccessLevel acepta MANAGER, OPERATOR o VIEWER.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,max=200"`
	AccessLevel string `json:"access_level" validate:"required"`
}

// UpdateUserRequest reemplaza los datos del usuario seleccionado.
type UpdateUserRequest struct {
	Username    string `json:"username" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,max=200"`
	AccessLevel string `json:"access_level" validate:"required"`
}

// UserResponse usuario en respuestas (nunca incluye la contraseña).
type UserResponse struct {
	Username    string `json:"username"`
	AccessLevel string `json:"access_level"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y usuario autenticado con las acciones que puede ejecutar.
type LoginResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}
