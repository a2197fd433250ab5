package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/session"
)

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	user string

	regUser, regPass, regName string
	regRet                    string
	regErr                    error

	loginUser, loginPass string
	loginRet             string
	loginErr             error

	meRet *client.Profile
	meErr error

	restoreRet *session.Session
	restoreErr error

	logoutCalled bool
	logoutErr    error

	pingErr error
}

func (f *fakeAuth) Register(_ context.Context, u string, p []byte, n string) (string, error) {
	f.regUser, f.regPass, f.regName = u, string(p), n
	if f.regErr == nil {
		f.user = u
	}
	return f.regRet, f.regErr
}
func (f *fakeAuth) Login(_ context.Context, u string, p []byte) (string, error) {
	f.loginUser, f.loginPass = u, string(p)
	if f.loginErr == nil {
		f.user = u
	}
	return f.loginRet, f.loginErr
}
func (f *fakeAuth) Me(context.Context) (*client.Profile, error) { return f.meRet, f.meErr }
func (f *fakeAuth) Restore(context.Context) (*session.Session, error) {
	if f.restoreRet != nil {
		f.user = f.restoreRet.UserName
	}
	return f.restoreRet, f.restoreErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr == nil {
		f.user = ""
	}
	return f.logoutErr
}
func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }
func (f *fakeAuth) CurrentUser() string        { return f.user }

func TestRegister_GreetsByName(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"alice", "Alice"}, []byte("secret"))

	f := &fakeAuth{regRet: "Alice"}
	a := &App{authService: f}

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", f.regUser)
	assert.Equal(t, "secret", f.regPass)
	assert.Equal(t, "Alice", f.regName)
	assert.Contains(t, *out, "Hello, Alice!")
	assert.True(t, a.isLoggedIn())
}

func TestRegister_Failure(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"demo", ""}, []byte("pw"))

	f := &fakeAuth{regErr: &client.APIError{StatusCode: 400, Message: "Username already exists"}}
	a := &App{authService: f}

	err := a.Register(context.Background())
	require.ErrorIs(t, err, client.ErrRejected)
	assert.Contains(t, *out, "Registration failed: Username already exists")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_InputError(t *testing.T) {
	captureOutput(t)
	stubInputs(t, nil, []byte("pw"))

	f := &fakeAuth{}
	a := &App{authService: f}

	require.ErrorIs(t, a.Register(context.Background()), io.EOF)
	assert.Empty(t, f.regUser)
}

func TestLogin_WipesPasswordAndGreets(t *testing.T) {
	out := captureOutput(t)
	pw := []byte("password")
	stubInputs(t, []string{"demo"}, pw)

	f := &fakeAuth{loginRet: "Demo User"}
	a := &App{authService: f}

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "demo", f.loginUser)
	assert.Equal(t, "password", f.loginPass)
	assert.Contains(t, *out, "Hello, Demo User!")
	assert.Equal(t, make([]byte, len(pw)), pw, "password must be wiped")
}

func TestLogin_Failure(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"demo"}, []byte("bad"))

	f := &fakeAuth{loginErr: errors.New("Invalid credentials")}
	a := &App{authService: f}

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, *out, "Login failed: Invalid credentials")
}

func TestMe(t *testing.T) {
	out := captureOutput(t)

	f := &fakeAuth{meRet: &client.Profile{ID: "7", Username: "demo", Name: "Demo User"}}
	a := &App{authService: f}

	require.NoError(t, a.Me(context.Background()))
	assert.Contains(t, *out, "ID: 7\nUsername: demo\nName: Demo User")

	f.meErr = errors.New("not logged in")
	require.Error(t, a.Me(context.Background()))
	assert.Contains(t, *out, "Error: not logged in")
}

func TestLogout(t *testing.T) {
	captureOutput(t)

	f := &fakeAuth{user: "demo"}
	a := &App{authService: f}

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, a.isLoggedIn())

	f.logoutErr = errors.New("clean-fail")
	assert.Error(t, a.Logout(context.Background()))
}

func TestHealth_SetsMode(t *testing.T) {
	out := captureOutput(t)

	f := &fakeAuth{}
	a := &App{authService: f}

	require.NoError(t, a.Health(context.Background()))
	assert.Equal(t, ModeOnline, a.mode())
	assert.Contains(t, *out, "Server is up")

	f.pingErr = client.ErrUnavailable
	require.Error(t, a.Health(context.Background()))
	assert.Equal(t, ModeOffline, a.mode())
}
