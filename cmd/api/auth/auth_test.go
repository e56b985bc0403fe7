package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/matryer/is"
)

var ctx context.Context = context.Background()

const secret = "catalog-test-secret"

func TestAuthorize(t *testing.T) {
	policy, err := auth.NewDefaultPolicy()
	if err != nil {
		t.Fatal(err)
	}

	employee := &auth.Identity{Username: "isabelle", Roles: []string{auth.RoleEmployee}}
	customer := &auth.Identity{Username: "bjorn", Roles: []string{"customer"}}
	noRoles := &auth.Identity{Username: "john"}

	writes := []auth.Operation{auth.OperationCreate, auth.OperationUpdate, auth.OperationDelete}

	t.Run("everybody can read the catalog", func(t *testing.T) {
		is := is.New(t)
		for _, caller := range []*auth.Identity{nil, employee, customer, noRoles} {
			is.NoErr(policy.Authorize(caller, auth.OperationRead))
		}
	})

	t.Run("anonymous writes are unauthenticated", func(t *testing.T) {
		is := is.New(t)
		for _, op := range writes {
			err := policy.Authorize(nil, op)
			is.True(errors.Is(err, pkgerrors.ErrResponseUnauthenticated))
		}
	})

	t.Run("writes without the employee role are forbidden", func(t *testing.T) {
		is := is.New(t)
		for _, caller := range []*auth.Identity{customer, noRoles} {
			for _, op := range writes {
				err := policy.Authorize(caller, op)
				is.True(errors.Is(err, pkgerrors.ErrResponseForbidden))
			}
		}
	})

	t.Run("employees can write", func(t *testing.T) {
		is := is.New(t)
		for _, op := range writes {
			is.NoErr(policy.Authorize(employee, op))
		}
	})
}

func TestAuthorizeEmptyPolicy(t *testing.T) {
	is := is.New(t)
	policy, err := auth.NewPolicy(nil)
	is.NoErr(err)

	err = policy.Authorize(nil, auth.OperationRead)
	is.True(errors.Is(err, pkgerrors.ErrResponseUnauthenticated))
}

func TestIdentityContext(t *testing.T) {
	is := is.New(t)

	is.True(auth.FromContext(ctx) == nil)

	id := &auth.Identity{Username: "john"}
	is.Equal(auth.FromContext(auth.NewContext(ctx, id)), id)
	is.Equal(auth.Principal(id), "john")
	is.Equal(auth.Principal(nil), "")
}

func TestJWTVerifier(t *testing.T) {
	verifier := auth.NewJWTVerifier(secret)

	t.Run("verifies a token without errors", func(t *testing.T) {
		is := is.New(t)
		token := signToken(t, secret, jwt.MapClaims{
			"sub":                "b7c1",
			"preferred_username": "isabelle",
			"roles":              []string{"employee", "customer"},
			"exp":                time.Now().Add(time.Minute).Unix(),
		})

		id, err := verifier.Verify(ctx, token)
		is.NoErr(err)
		is.Equal(id.Username, "isabelle")
		is.Equal(id.Roles, []string{"employee", "customer"})
		is.True(id.HasRole(auth.RoleEmployee))
	})

	t.Run("falls back to the subject when there is no username", func(t *testing.T) {
		is := is.New(t)
		token := signToken(t, secret, jwt.MapClaims{"sub": "john"})

		id, err := verifier.Verify(ctx, token)
		is.NoErr(err)
		is.Equal(id.Username, "john")
		is.Equal(len(id.Roles), 0)
	})

	t.Run("expected error for a token signed with another secret", func(t *testing.T) {
		is := is.New(t)
		token := signToken(t, "another-secret", jwt.MapClaims{"sub": "john"})

		_, err := verifier.Verify(ctx, token)
		is.True(err != nil)
	})

	t.Run("expected error for an expired token", func(t *testing.T) {
		is := is.New(t)
		token := signToken(t, secret, jwt.MapClaims{
			"sub": "john",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		_, err := verifier.Verify(ctx, token)
		is.True(err != nil)
	})

	t.Run("expected error for a token without subject", func(t *testing.T) {
		is := is.New(t)
		token := signToken(t, secret, jwt.MapClaims{"roles": []string{"employee"}})

		_, err := verifier.Verify(ctx, token)
		is.True(errors.Is(err, auth.ErrTokenMissingSubject))
	})

	t.Run("expected error for garbage", func(t *testing.T) {
		is := is.New(t)
		_, err := verifier.Verify(ctx, "not-a-token")
		is.True(err != nil)
	})
}

func TestExtractBearerToken(t *testing.T) {
	is := is.New(t)

	token, ok := auth.ExtractBearerToken("Bearer abc.def.ghi")
	is.True(ok)
	is.Equal(token, "abc.def.ghi")

	token, ok = auth.ExtractBearerToken("bearer abc")
	is.True(ok)
	is.Equal(token, "abc")

	_, ok = auth.ExtractBearerToken("Basic am9objpwYXNz")
	is.True(!ok)

	_, ok = auth.ExtractBearerToken("")
	is.True(!ok)
}

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return token
}
