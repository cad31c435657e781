package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func runAuth(ctx *fasthttp.RequestCtx) (called bool) {
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})
	handler(ctx)
	return called
}

func TestJWTAuthSetsUserIDFromClaims(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "user-1"}))

	if !runAuth(ctx) {
		t.Fatal("valid token must reach the handler")
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "user-1" {
		t.Fatalf("X-User-ID = %q, want user-1", got)
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	if runAuth(ctx) {
		t.Fatal("handler reached without a token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestJWTAuthRejectsForgedToken(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-1"}).
		SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}
	ctx.Request.Header.Set("Authorization", "Bearer "+token)

	if runAuth(ctx) {
		t.Fatal("handler reached with a forged token")
	}
}

func TestJWTAuthStripsSpoofedUserIDHeader(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-User-ID", "victim")
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{}))

	if !runAuth(ctx) {
		t.Fatal("valid token must reach the handler")
	}
	// A token without a user_id claim must not let the caller's own header
	// survive as the identity.
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "" {
		t.Fatalf("X-User-ID = %q, want empty", got)
	}
}

func TestJWTAuthOverridesSpoofedUserIDHeader(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-User-ID", "victim")
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "user-1"}))

	if !runAuth(ctx) {
		t.Fatal("valid token must reach the handler")
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "user-1" {
		t.Fatalf("X-User-ID = %q, want the claim value", got)
	}
}
