package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := CompareHashAndPassword(hash, "Passw0rd!"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CompareHashAndPassword(hash, "WrongPass1"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestJwtRoundTrip(t *testing.T) {
	key := GetJwtKey()
	token, err := CreateJwtToken(7, "aina@example.com", "Aina", "Rahman", "tenant", key, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateJwtToken failed: %v", err)
	}

	claims, err := VerifyToken(token, key)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.ID != 7 || claims.Email != "aina@example.com" || claims.Role != "tenant" {
		t.Errorf("claims round trip mismatch: %+v", claims)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	key := GetJwtKey()
	token, err := CreateJwtToken(7, "aina@example.com", "Aina", "Rahman", "tenant", key, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("CreateJwtToken failed: %v", err)
	}
	if _, err := VerifyToken(token, key); err == nil {
		t.Error("expired token accepted")
	}
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	token, err := CreateJwtToken(7, "aina@example.com", "Aina", "Rahman", "tenant", GetJwtKey(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateJwtToken failed: %v", err)
	}
	if _, err := VerifyToken(token, []byte("another-secret-key-entirely....")); err == nil {
		t.Error("token verified with the wrong key")
	}
}

func TestContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetUserIdFromContext(ctx); id != 0 {
		t.Errorf("user id = %d on an empty context, want 0", id)
	}
	if role := GetUserRoleFromContext(ctx); role != "" {
		t.Errorf("role = %q on an empty context, want empty", role)
	}

	ctx.Set("user_id", uint(7))
	ctx.Set("user_role", "tenant")

	if id := GetUserIdFromContext(ctx); id != 7 {
		t.Errorf("user id = %d, want 7", id)
	}
	if role := GetUserRoleFromContext(ctx); role != "tenant" {
		t.Errorf("role = %q, want %q", role, "tenant")
	}

	ctx.Set("user_id", "not-a-uint")
	ctx.Set("user_role", 42)

	if id := GetUserIdFromContext(ctx); id != 0 {
		t.Errorf("user id = %d for a mistyped value, want 0", id)
	}
	if role := GetUserRoleFromContext(ctx); role != "" {
		t.Errorf("role = %q for a mistyped value, want empty", role)
	}
}
