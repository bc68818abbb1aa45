package domain

import "errors"

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases
// и адаптеров. Классификация выполняется через errors.Is на границе REST.
var (
	// ErrNotAuthenticated - нет активной сессии; пользователя нужно
	// отправить на страницу входа, не делая сетевых вызовов.
	ErrNotAuthenticated = errors.New("user is not authenticated")

	// ErrValidation - не заполнено обязательное поле формы.
	ErrValidation = errors.New("validation failed")

	// ErrAuthNotReady - identity-провайдер еще не инициализирован.
	ErrAuthNotReady = errors.New("authentication service is not ready")

	// ErrAlreadyAuthenticated - провайдер сообщил, что сессия уже существует.
	// Считается успехом, а не ошибкой.
	ErrAlreadyAuthenticated = errors.New("session already exists")

	// ErrProviderConfig - OAuth-провайдер не настроен.
	ErrProviderConfig = errors.New("oauth provider is not configured")

	// ErrRemoteWrite / ErrRemoteRead - не-2xx ответ от удаленного хранилища.
	ErrRemoteWrite = errors.New("remote write failed")
	ErrRemoteRead  = errors.New("remote read failed")

	// ErrFavoriteNotFound - удаленное хранилище не нашло запись по id.
	ErrFavoriteNotFound = errors.New("favorite record not found")

	// ErrToggleInProgress - по этой паре (пользователь, вещь) уже идет
	// переключение; повторный вызов не должен делать сетевых вызовов.
	ErrToggleInProgress = errors.New("favorite toggle already in progress")
)
