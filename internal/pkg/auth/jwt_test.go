package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	tokenStr, err := GenerateToken("user1", secret, time.Hour)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := ParseToken(tokenStr, secret)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.UserID != "user1" {
		t.Errorf("UserID = %q, 期望 user1", claims.UserID)
	}
	if claims.Issuer != "lanyu-blog" {
		t.Errorf("Issuer = %q, 期望 lanyu-blog", claims.Issuer)
	}
}

func TestParseTokenFailures(t *testing.T) {
	secret := []byte("test-secret")
	tokenStr, err := GenerateToken("user1", secret, time.Hour)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	t.Run("密钥不匹配", func(t *testing.T) {
		if _, err := ParseToken(tokenStr, []byte("wrong-secret")); err == nil {
			t.Error("期望解析失败")
		}
	})

	t.Run("令牌已过期", func(t *testing.T) {
		expired, err := GenerateToken("user1", secret, -time.Minute)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}
		if _, err := ParseToken(expired, secret); err == nil {
			t.Error("期望解析失败")
		}
	})

	t.Run("非法字符串", func(t *testing.T) {
		if _, err := ParseToken("not-a-token", secret); err == nil {
			t.Error("期望解析失败")
		}
	})

	t.Run("空密钥", func(t *testing.T) {
		if _, err := GenerateToken("user1", nil, time.Hour); err == nil {
			t.Error("期望签发失败")
		}
	})
}
