package responses

import (
	"time"

	"benishangul-police/idregistry/internal/constants"
)

type PrincipalInfo struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Role     constants.Role `json:"role"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      PrincipalInfo `json:"user"`
}

type IssueResponse struct {
	IDNumber string `json:"id_number"`
}
