// Package keycloak implements the admin port against a Keycloak server
// using the gocloak admin client. Authentication uses the admin-cli
// password grant on the master realm; the obtained bearer token is attached
// to every subsequent call and refreshed when it nears expiry.
package keycloak

import (
	"context"
	"sync"
	"time"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/go-resty/resty/v2"
)

// loginRealm is the realm the admin credential lives in.
const loginRealm = "master"

// tokenSlack is subtracted from the token lifetime so a token is never used
// right at its expiry boundary.
const tokenSlack = 10 * time.Second

// Admin is a credentialed admin API session.
type Admin struct {
	gc       *gocloak.GoCloak
	username string
	password string

	mu     sync.Mutex
	token  *gocloak.JWT
	expiry time.Time
}

// New returns an Admin session for the server at baseURL. No network call
// is made until Login.
func New(baseURL, username, password string) *Admin {
	gc := gocloak.NewClient(baseURL)
	rc := gc.RestyClient()
	rc.SetTimeout(30 * time.Second)
	rc.SetRetryCount(2)
	// Retry transport failures and 5xx; 4xx carries reconcile semantics
	// (409, 404) and must reach the caller untouched.
	rc.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= 500
	})
	return &Admin{gc: gc, username: username, password: password}
}

// Login authenticates the admin credential. Any failure is an AuthError;
// callers treat it as fatal.
func (a *Admin) Login(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loginLocked(ctx)
}

func (a *Admin) loginLocked(ctx context.Context) error {
	jwt, err := a.gc.LoginAdmin(ctx, a.username, a.password, loginRealm)
	if err != nil {
		return &model.AuthError{Err: err}
	}
	a.token = jwt
	a.expiry = time.Now().Add(time.Duration(jwt.ExpiresIn)*time.Second - tokenSlack)
	return nil
}

// accessToken returns a valid bearer token, re-authenticating when the
// current one has expired.
func (a *Admin) accessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == nil || !time.Now().Before(a.expiry) {
		if err := a.loginLocked(ctx); err != nil {
			return "", err
		}
	}
	return a.token.AccessToken, nil
}

var _ model.AdminPort = (*Admin)(nil)
