package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	GroupID     string `json:"group_id"`
}

type SyncRequest struct {
	GroupID string `json:"group_id" validate:"required,uuid"`
}
