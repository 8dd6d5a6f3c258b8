package auth

type (
	RegisterRequest struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		IsAdmin     bool   `json:"is_admin"`
		AdminSecret string `json:"admin_secret"`
	}
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)
