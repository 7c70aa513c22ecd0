package dto

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"` // admin | voluntario
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario en respuestas (nunca incluye el hash).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ToUserResponse mapea la entidad al DTO.
func ToUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
