package authapi

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// meResponse exposes the resolved identity only. The password digest is
// deliberately absent from every response model in this package.
type meResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
