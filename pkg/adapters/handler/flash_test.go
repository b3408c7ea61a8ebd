package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, set, get *Flasher) *Flash {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, set.Set(rr, "success", "Question added."))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	req.AddCookie(cookies[0])
	return get.Pop(httptest.NewRecorder(), req)
}

func TestFlash_RoundTrip(t *testing.T) {
	f := NewFlasher("secret", false)

	got := roundTrip(t, f, f)
	require.NotNil(t, got)
	assert.Equal(t, Flash{Category: "success", Message: "Question added."}, *got)
}

func TestFlash_WrongSecret(t *testing.T) {
	assert.Nil(t, roundTrip(t, NewFlasher("secret", false), NewFlasher("other", false)))
}

func TestFlash_Expired(t *testing.T) {
	set := NewFlasher("secret", false)
	get := NewFlasher("secret", false)
	get.now = func() time.Time { return time.Now().Add(time.Hour) }

	assert.Nil(t, roundTrip(t, set, get))
}

func TestFlash_PopClearsCookie(t *testing.T) {
	f := NewFlasher("secret", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "garbage"})
	rr := httptest.NewRecorder()

	assert.Nil(t, f.Pop(rr, req))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestFlash_SigningFailure(t *testing.T) {
	f := NewFlasher("secret", false)
	f.method = jwt.SigningMethodRS256 // an HMAC secret is not an RSA key

	rr := httptest.NewRecorder()
	assert.Error(t, f.Set(rr, "success", "Question added."))
	assert.Empty(t, rr.Result().Cookies())
}

func TestFlash_NoCookie(t *testing.T) {
	f := NewFlasher("secret", false)
	assert.Nil(t, f.Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}
