package security

import (
	"errors"
	"testing"
)

func TestAward_缺少密钥应报错(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Award(1)
	if !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("期望 ErrJWTSecretMissing, got=%v", err)
	}
}

func TestAward_ParseToken往返(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award(42)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if claims.PlayerID != 42 {
		t.Fatalf("期望 uid=42, got=%d", claims.PlayerID)
	}
}

func TestParseToken_密钥不匹配应拒绝(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := Award(7)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("期望签名校验失败")
	}
}
