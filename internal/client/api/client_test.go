package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Email == "k@x.com" && req.Password == "longenough1" {
			json.NewEncoder(w).Encode(tokenResponse{Token: "tok-1"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"msg":"Invalid username / password"}]}`))
	})
	mux.HandleFunc("POST /identity/register", func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Email == "taken@x.com" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors":[{"msg":"User already exists"}]}`))
			return
		}
		json.NewEncoder(w).Encode(tokenResponse{Token: "tok-new"})
	})
	mux.HandleFunc("GET /identity/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("x-auth-token") {
		case "":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"No token, authorization denied"}`))
		case "tok-1":
			json.NewEncoder(w).Encode(Identity{ID: "u1", Name: "Kevin", Email: "k@x.com"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"Token not valid"}`))
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginSuccess(t *testing.T) {
	c := New(identityServer(t).URL)

	token, err := c.Login(context.Background(), "k@x.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestLoginBadCredentials(t *testing.T) {
	c := New(identityServer(t).URL)

	_, err := c.Login(context.Background(), "k@x.com", "wrong")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Invalid username / password"}, verr.Messages)
}

func TestRegister(t *testing.T) {
	c := New(identityServer(t).URL)

	token, err := c.Register(context.Background(), "Kevin", "k@x.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)

	_, err = c.Register(context.Background(), "Kevin", "taken@x.com", "longenough1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"User already exists"}, verr.Messages)
}

func TestMe(t *testing.T) {
	c := New(identityServer(t).URL)

	me, err := c.Me(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Kevin", me.Name)

	_, err = c.Me(context.Background(), "garbage")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Token not valid", aerr.Msg)
}

func TestNetworkErrorWraps(t *testing.T) {
	// Closed immediately; requests must fail with a transport error
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "k@x.com", "longenough1")
	require.Error(t, err)

	var verr *ValidationError
	var aerr *AuthError
	assert.False(t, errors.As(err, &verr), "transport failures must not look like validation errors")
	assert.False(t, errors.As(err, &aerr), "transport failures must not look like auth errors")
}
