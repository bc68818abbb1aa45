package domain

// Identity - нормализованная проекция сессии от внешнего identity-провайдера.
// Создается ровно один раз на границе (в identity-клиенте), чтобы остальной
// код не разбирал "сырые" объекты пользователя разной формы.
type Identity struct {
	UserID   string
	Email    string
	Username string
	SignedIn bool
}

// SignInResult - результат попытки входа через провайдера.
type SignInResult struct {
	Status     string // "complete" или "needs_verification"
	SessionID  string // createdSessionId от провайдера, если Status == "complete"
	RedirectTo string // куда отправить пользователя после успеха
	Message    string // сообщение для пользователя (например, "проверьте почту")
}

const (
	SignInComplete          = "complete"
	SignInNeedsVerification = "needs_verification"
	SignInRedirecting       = "redirecting"
)
