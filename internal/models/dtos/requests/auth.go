package requests

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateAccountRoleRequest struct {
	Role string `json:"role"`
}

type UpsertAssetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
