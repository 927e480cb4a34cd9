package special

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/gorilla/securecookie"
)

const formTokenCookie = "createpage_token"

// FormTokens implements double-submit form tokens: a random nonce is stored
// in a signed cookie and echoed in a hidden form field, and a submission is
// accepted only when both match.
type FormTokens struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
}

// NewFormTokens creates FormTokens signed with hashKey. Tokens older than
// maxAge are rejected.
func NewFormTokens(hashKey []byte, maxAge time.Duration) *FormTokens {
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(int(maxAge / time.Second))
	return &FormTokens{codec: codec, maxAge: maxAge}
}

// Issue returns the token the form must echo, setting the cookie when the
// request does not already carry a valid one. Call before writing the header.
func (t *FormTokens) Issue(rw http.ResponseWriter, req *http.Request) (string, error) {
	if nonce, err := t.fromCookie(req); err == nil {
		return nonce, nil
	}

	nonce := base64.RawURLEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	encoded, err := t.codec.Encode(formTokenCookie, nonce)
	if err != nil {
		return "", err
	}

	http.SetCookie(rw, &http.Cookie{
		Name:     formTokenCookie,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(t.maxAge / time.Second),
		HttpOnly: true,
		Secure:   req.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nonce, nil
}

// Verify checks a submitted token against the request cookie.
func (t *FormTokens) Verify(req *http.Request, submitted string) error {
	nonce, err := t.fromCookie(req)
	if err != nil || submitted == "" {
		return wiki.ErrBadFormToken
	}
	if subtle.ConstantTimeCompare([]byte(nonce), []byte(submitted)) != 1 {
		return wiki.ErrBadFormToken
	}
	return nil
}

func (t *FormTokens) fromCookie(req *http.Request) (string, error) {
	cookie, err := req.Cookie(formTokenCookie)
	if err != nil {
		return "", err
	}
	var nonce string
	if err := t.codec.Decode(formTokenCookie, cookie.Value, &nonce); err != nil {
		return "", err
	}
	return nonce, nil
}
