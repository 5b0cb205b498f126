// Пакет rand
package rand

import (
	"math/rand/v2"
)

// Наборы символов
const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	charset   = lowercase + "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Получить случайную строку из определенного набора символов
func StringWithCharset(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}

// Получить случайную строку из набора по умолчанию
func String(length int) string {
	return StringWithCharset(length, charset)
}

// Получить случайную строку из строчных латинских букв
func Lower(length int) string {
	return StringWithCharset(length, lowercase)
}
