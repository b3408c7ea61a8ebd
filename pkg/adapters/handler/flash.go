package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const flashCookie = "flash"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string // success, warning, danger, info
	Message  string
}

type flashClaims struct {
	Category string `json:"cat"`
	Message  string `json:"msg"`
	jwt.RegisteredClaims
}

// Flasher stores notices in a signed cookie so they survive a redirect.
type Flasher struct {
	secret       []byte
	method       jwt.SigningMethod
	isProduction bool
	now          func() time.Time
}

func NewFlasher(secret string, isProduction bool) *Flasher {
	return &Flasher{
		secret:       []byte(secret),
		method:       jwt.SigningMethodHS256,
		isProduction: isProduction,
		now:          time.Now,
	}
}

// Set signs the notice into the flash cookie. No cookie is written when
// signing fails.
func (f *Flasher) Set(w http.ResponseWriter, category, message string) error {
	expires := f.now().Add(time.Minute)
	claims := &flashClaims{
		Category: category,
		Message:  message,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(f.method, claims).SignedString(f.secret)
	if err != nil {
		return fmt.Errorf("sign flash: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending notice, if any, and clears it. Invalid or
// expired cookies are dropped silently.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{f.method.Alg()}), jwt.WithTimeFunc(f.now))
	if err != nil || !token.Valid {
		return nil
	}
	return &Flash{Category: claims.Category, Message: claims.Message}
}
