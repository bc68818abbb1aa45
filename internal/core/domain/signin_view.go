package domain

import (
	"net/url"
	"time"
)

// Сколько показывается баннер об успешном сбросе пароля.
const SuccessBannerTTL = 5 * time.Second

// SignInViewState - состояние страницы входа, вычисленное из query-параметров.
// ErrorBanner показывается один раз: параметр error вырезается из
// CanonicalURL, чтобы обновление страницы не показало ошибку повторно.
type SignInViewState struct {
	ErrorBanner      string
	SuccessBanner    bool
	SuccessExpiresAt time.Time
	CanonicalURL     string
}

// NewSignInViewState читает боковой канал страницы входа: ?error= от
// OAuth-редиректа и ?reset=success после сброса пароля.
func NewSignInViewState(path string, query url.Values, now time.Time) SignInViewState {
	state := SignInViewState{CanonicalURL: path}

	if oauthError := query.Get("error"); oauthError != "" {
		state.ErrorBanner = oauthError
	}

	if query.Get("reset") == "success" {
		state.SuccessBanner = true
		state.SuccessExpiresAt = now.Add(SuccessBannerTTL)
	}

	// Канонический URL сохраняет остальные параметры, но без error:
	// история браузера заменяется именно на него.
	canonical := url.Values{}
	for key, values := range query {
		if key == "error" {
			continue
		}
		canonical[key] = values
	}
	if encoded := canonical.Encode(); encoded != "" {
		state.CanonicalURL = path + "?" + encoded
	}

	return state
}

// SuccessVisible сообщает, виден ли еще баннер успеха в момент now.
func (s SignInViewState) SuccessVisible(now time.Time) bool {
	return s.SuccessBanner && now.Before(s.SuccessExpiresAt)
}
