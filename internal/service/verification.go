// File: internal/service/verification.go
package service

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"annuary/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// 驗證連結的失敗原因，handler 據此回覆具體訊息
var (
	ErrVerificationExpired = errors.New("the verification link has expired")
	ErrVerificationInvalid = errors.New("the verification link is not valid")
)

// VerificationTTL 是驗證連結的有效期間
const VerificationTTL = 24 * time.Hour

type verificationClaims struct {
	UserID int    `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IssueVerificationToken 為使用者簽發限時的 email 驗證令牌
// 令牌綁定 id 與 email，信箱變更後舊連結即失效
func IssueVerificationToken(user model.User, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}

	now := time.Now()
	claims := verificationClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateVerificationToken 驗證令牌並確認與使用者相符
// 過期與其他簽章問題分別對應 ErrVerificationExpired / ErrVerificationInvalid
func ValidateVerificationToken(tokenString string, user model.User) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &verificationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrVerificationExpired
		}
		return ErrVerificationInvalid
	}

	claims, ok := token.Claims.(*verificationClaims)
	if !ok || !token.Valid {
		return ErrVerificationInvalid
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		return ErrVerificationInvalid
	}
	return nil
}

// BuildVerificationURL 組出寄給使用者的簽名連結
func BuildVerificationURL(baseURL string, user model.User, token string) string {
	values := url.Values{}
	values.Set("id", strconv.Itoa(user.ID))
	values.Set("token", token)
	return baseURL + "/api/verify/email?" + values.Encode()
}
