package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
)

func TestStubEndpoint_Authenticate_Defaults(t *testing.T) {
	stub := NewStubEndpoint()
	ctx := context.Background()

	sess, err := stub.Authenticate(ctx, domainauth.Credentials{Username: "eve", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleEditor, sess.Role)
	assert.Equal(t, "sess-eve", sess.ID)

	_, err = stub.Authenticate(ctx, domainauth.Credentials{Username: "eve", Password: "nope"})
	var failure *domainauth.RemoteFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, http.StatusUnauthorized, failure.StatusCode)
	assert.Equal(t, 2, stub.Calls())
}

func TestStubEndpoint_CustomFuncAndAccounts(t *testing.T) {
	stub := &StubEndpoint{}
	stub.AddAccount("zed", Account{Password: "x", Session: domainauth.Session{ID: "s", UserID: "zed", Role: domainauth.RoleAdmin}})

	sess, err := stub.Authenticate(context.Background(), domainauth.Credentials{Username: "zed", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "zed", sess.UserID)

	stub.AuthenticateFunc = func(context.Context, domainauth.Credentials) (domainauth.Session, error) {
		return domainauth.Session{}, errors.New("boom")
	}
	_, err = stub.Authenticate(context.Background(), domainauth.Credentials{Username: "zed", Password: "x"})
	require.EqualError(t, err, "boom")
}

func TestStubEndpoint_Revoke(t *testing.T) {
	stub := NewStubEndpoint()
	stub.RevokeErr = errors.New("offline")

	err := stub.Revoke(context.Background(), "sess-ada")
	require.EqualError(t, err, "offline")
	assert.Equal(t, []string{"sess-ada"}, stub.Revoked())
}
