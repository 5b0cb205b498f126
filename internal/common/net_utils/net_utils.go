// Пакет netutils. Сетевые инструменты для тестов
package netutils

import (
	"net"
	"strconv"
)

// GetFreePort - получить свободный порт localhost
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// UnreachableURL - адрес на свободном порту, где никто не принимает соединения.
// Запрос на него завершается ошибкой соединения
func UnreachableURL() (string, error) {
	port, err := GetFreePort()
	if err != nil {
		return "", err
	}
	return "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), nil
}
