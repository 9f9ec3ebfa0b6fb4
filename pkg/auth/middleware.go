package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const isAdminKey contextKey = "is_admin"

// WithAdmin は context に管理者フラグをセットする
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, isAdminKey, true)
}

// IsAdminFromContext はリクエストが RequireAdmin を通過したかを返す。未設定なら false
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// BearerToken は "Authorization: Bearer <token>" ヘッダからトークンを取り出す
func BearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	return h[len(prefix):], true
}

// ValidToken は token と secret を定数時間で比較する。secret が空なら常に false
func ValidToken(token, secret string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

// RequireAdmin は管理者トークン必須ミドルウェア。Bearer トークンを共有シークレットと照合し、
// 一致しない場合は next を呼ばずに 401 を返す
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok || !ValidToken(token, secret) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
		})
	}
}
