// Пакет username. Получение имени пользователя из полного имени или email
package username

import (
	"regexp"
	"strings"
)

const (
	maxLen = 30
	minLen = 3
)

var (
	spaceRe      = regexp.MustCompile(`[\s\p{Z}]+`)
	disallowedRe = regexp.MustCompile(`[^a-z0-9_]`)
)

// Derive формирует имя пользователя: полное имя в нижнем регистре, пробелы -> "_",
// только [a-z0-9_], не длиннее 30 символов. Если получилось короче 3 символов,
// берется локальная часть email. Может вернуть пустую строку
func Derive(fullName, email string) string {
	name := strings.ToLower(fullName)
	name = spaceRe.ReplaceAllString(name, "_")
	name = disallowedRe.ReplaceAllString(name, "")
	name = truncate(name)
	if len(name) >= minLen {
		return name
	}

	local, _, _ := strings.Cut(email, "@")
	local = disallowedRe.ReplaceAllString(strings.ToLower(local), "")
	return truncate(local)
}

func truncate(s string) string {
	// после фильтрации остается только ASCII
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
