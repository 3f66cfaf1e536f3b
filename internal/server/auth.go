package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sngm3741/storefinder/api/internal/config"
	commonhttp "github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
)

type authClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// authVerifier は HS256 で署名されたアクセストークンを検証する。
type authVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func newAuthVerifier(cfg config.AuthConfig) *authVerifier {
	return &authVerifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   strings.TrimSpace(cfg.JWTIssuer),
		audience: strings.TrimSpace(cfg.JWTAudience),
	}
}

// middleware は Authorization ヘッダーから JWT を検証し、認証済みユーザーをコンテキストへ詰める。
func (v *authVerifier) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			unauthorized(w, "Authorization ヘッダーがありません")
			return
		}
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			unauthorized(w, "Bearer トークンを指定してください")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			unauthorized(w, "アクセストークンが空です")
			return
		}

		claims, err := v.parse(tokenString)
		if err != nil {
			unauthorized(w, err.Error())
			return
		}

		user := commonhttp.AuthenticatedUser{ID: claims.Subject, Name: claims.Name}
		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parse は署名・有効期限・Issuer/Audience を検証する。
func (v *authVerifier) parse(tokenString string) (*authClaims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("認証設定が構成されていません")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("アクセストークンが無効です")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("アクセストークンに subject がありません")
	}
	return claims, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	commonhttp.WriteJSON(nil, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: message})
}
