package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SessionResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type RevalidateRequest struct {
	Path string `json:"path" validate:"required,startswith=/"`
}

type RevalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Path        string `json:"path,omitempty"`
	Error       string `json:"error,omitempty"`
}
