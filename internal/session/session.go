// Package session holds the per-request view of who is calling the gateway.
// Authentication itself belongs to the backend: credentials are read from the
// request, decoded for display and capability purposes, and relayed untouched.
package session

import "strings"

// TokenCookieNames lists the cookies that may carry the bearer token, in lookup order.
var TokenCookieNames = []string{"userToken", "token", "auth", "jwt"}

// CSRFCookieName is the cookie holding the backend CSRF token.
const CSRFCookieName = "XSRF-TOKEN"

// User is the caller identity decoded from the token.
type User struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject,omitempty"`
	Role    string `json:"role,omitempty"`
	// Verified is set when the token signature was checked against the configured secret.
	Verified bool `json:"verified"`
}

// IsAdmin reports whether the user holds an administrative role.
func (u User) IsAdmin() bool {
	r := strings.ToUpper(u.Role)
	return r == "ADMIN" || r == "ROLE_ADMIN" || r == "RH" || r == "ROLE_RH"
}

// Capabilities parameterize the document management screens for admin and
// self-service use.
type Capabilities struct {
	CanChangeStatus  bool `json:"canChangeStatus"`
	CanDeleteOthers  bool `json:"canDeleteOthers"`
	CanViewAllOwners bool `json:"canViewAllOwners"`
}

var (
	AdminCapabilities       = Capabilities{CanChangeStatus: true, CanDeleteOthers: true, CanViewAllOwners: true}
	SelfServiceCapabilities = Capabilities{}
)

// Credentials are the raw values found on the incoming request.
type Credentials struct {
	// AuthorizationHeader is the incoming Authorization header, verbatim.
	AuthorizationHeader string
	// Token is the bearer token, from the header or the first non-empty token cookie.
	Token string
	// Source names where Token came from: "header" or the cookie name.
	Source    string
	CSRFToken string
	// Cookie is the incoming Cookie header, relayed as is.
	Cookie string
}

// CookieGetter returns the value of the named cookie, or "".
type CookieGetter func(name string) string

// ExtractCredentials applies the lookup order: explicit Authorization header,
// then the token cookies in TokenCookieNames order.
func ExtractCredentials(authorization string, cookie CookieGetter, rawCookie string) Credentials {
	c := Credentials{Cookie: rawCookie}
	if cookie != nil {
		c.CSRFToken = cookie(CSRFCookieName)
	}

	if authorization = strings.TrimSpace(authorization); authorization != "" {
		c.AuthorizationHeader = authorization
		c.Token = bearerToken(authorization)
		c.Source = "header"
		return c
	}
	if cookie == nil {
		return c
	}
	for _, name := range TokenCookieNames {
		if v := strings.TrimSpace(cookie(name)); v != "" {
			c.Token = v
			c.Source = name
			return c
		}
	}
	return c
}

func bearerToken(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

// Session is the request-scoped session context.
type Session struct {
	creds       Credentials
	user        *User
	invalidated bool
}

// New returns a session for creds. user is nil for anonymous callers or
// undecodable tokens.
func New(creds Credentials, user *User) *Session {
	return &Session{creds: creds, user: user}
}

// CurrentUser returns the decoded caller, if any.
func (s *Session) CurrentUser() (User, bool) {
	if s == nil || s.invalidated || s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Token returns the bearer token, or "" when none was presented.
func (s *Session) Token() string {
	if s == nil || s.invalidated {
		return ""
	}
	return s.creds.Token
}

// Authorization returns the Authorization header value to relay to the backend.
func (s *Session) Authorization() string {
	if s == nil || s.invalidated {
		return ""
	}
	switch {
	case s.creds.AuthorizationHeader != "":
		return s.creds.AuthorizationHeader
	case s.creds.Token != "":
		return "Bearer " + s.creds.Token
	}
	return ""
}

// CSRFToken returns the CSRF token to relay, or "".
func (s *Session) CSRFToken() string {
	if s == nil || s.invalidated {
		return ""
	}
	return s.creds.CSRFToken
}

// Cookie returns the raw Cookie header to relay, or "".
func (s *Session) Cookie() string {
	if s == nil || s.invalidated {
		return ""
	}
	return s.creds.Cookie
}

// Capabilities returns what the caller may do on document screens. Admin
// capabilities require a verified token; an unverified admin role is self-service.
func (s *Session) Capabilities() Capabilities {
	u, ok := s.CurrentUser()
	if ok && u.Verified && u.IsAdmin() {
		return AdminCapabilities
	}
	return SelfServiceCapabilities
}

// Invalidate ends the session. Subsequent accessors behave as anonymous.
func (s *Session) Invalidate() {
	if s == nil {
		return
	}
	s.invalidated = true
}
