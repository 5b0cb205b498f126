// Пакет token. Работа с JWT bearer-токенами
package token

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExp время жизни токена, который выдает сервис
const TokenExp = time.Hour * 3

// ExpiresAt читает claim "exp" без проверки подписи: ключа у клиента нет.
// Для непрозрачных токенов и токенов без "exp" возвращает false
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false
	}

	var exp float64
	switch v := claims["exp"].(type) {
	case float64:
		exp = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		exp = f
	default:
		return time.Time{}, false
	}

	return time.Unix(int64(exp), 0), true
}

// Expired - токен с истекшим "exp"
func Expired(tokenString string, now time.Time) bool {
	exp, ok := ExpiresAt(tokenString)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// BuildJWTString выпускает токен HS256 с "sub" и "exp"
func BuildJWTString(secret []byte, subject string, now time.Time, ttl time.Duration) (string, error) {
	// создаём новый токен с алгоритмом подписи HS256 и утверждениями - Claims
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return t.SignedString(secret)
}

// GetSubject проверяет подпись и срок и возвращает "sub"
func GetSubject(secret []byte, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
	if err != nil {
		return "", err
	}

	if !t.Valid {
		return "", fmt.Errorf("token is not valid")
	}

	return claims.Subject, nil
}
