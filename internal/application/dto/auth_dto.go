package dto

// RegisterRequest alta de una empresa con su usuario administrador.
type RegisterRequest struct {
	CompanyName  string `json:"company_name" validate:"required,max=200"`
	CompanyEmail string `json:"company_email" validate:"required,email"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser datos del usuario autenticado (sin password).
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
}

// AuthCompany datos mínimos de la empresa del usuario.
type AuthCompany struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse respuesta de register y login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        AuthUser     `json:"user"`
	Company     *AuthCompany `json:"company,omitempty"`
}
