package theme

import (
	"net/http"
	"strings"
	"time"
)

// ClientHintHeader carries the visitor's operating-system color scheme.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStore persists theme keys as cookies on an HTTP exchange. Writes are visible to
// later reads within the same request.
type CookieStore struct {
	r       *http.Request
	w       http.ResponseWriter
	Secure  bool
	pending map[string]*string
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w, pending: map[string]*string{}}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) {
	v := value
	s.pending[key] = &v
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieMaxAge),
	})
}

func (s *CookieStore) Remove(key string) {
	if _, present := s.Get(key); !present {
		return
	}
	s.pending[key] = nil
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SystemFromRequest reads the color scheme client hint, defaulting to light.
func SystemFromRequest(r *http.Request) Theme {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(ClientHintHeader)), `"`)
	if strings.EqualFold(v, string(Dark)) {
		return Dark
	}
	return Light
}
