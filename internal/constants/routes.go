package constants

// Навигационные цели. Пути совпадают с маршрутами фронтенда.
const (
	RouteSignIn        = "/auth/signin"
	RouteSignUp        = "/auth/signup"
	RouteResetPassword = "/auth/reset-password"
	RouteHome          = "/home"
	RouteSSOCallback   = "/auth/sso-callback"
)

// Поддерживаемые OAuth-провайдеры.
const (
	OAuthGoogle   = "google"
	OAuthFacebook = "facebook"
)
