package identity_client

// DTO для запроса на вход.
type signInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// DTO для успешного ответа провайдера.
type signInResponse struct {
	Status           string `json:"status"`
	CreatedSessionID string `json:"created_session_id"`
}

// DTO для проекции пользователя: GET /api/user/current.
type userDataResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// DTO для тела ошибки провайдера.
type providerErrorResponse struct {
	Errors []providerError `json:"errors"`
}

type providerError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
