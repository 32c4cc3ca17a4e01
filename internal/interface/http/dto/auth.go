package dto

// LoginRequest carries the shared admin password.
type LoginRequest struct {
	Password string `json:"senha" binding:"required" example:"********"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in" example:"7200"` // seconds
}

// VerifyCourtesyRequest carries the courtesy password the terminal asks
// for before a zero-total sale.
type VerifyCourtesyRequest struct {
	Password string `json:"senha" binding:"required" example:"********"`
}
