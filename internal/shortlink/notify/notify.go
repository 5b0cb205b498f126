// Пакет notify. Уведомления пользователя
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Level - вид уведомления
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification - одно видимое пользователю сообщение
type Notification struct {
	Level Level
	Text  string
}

// Notifier доставляет уведомления до пользователя
type Notifier interface {
	Notify(n Notification)
}

// Writer печатает уведомления построчно
type Writer struct {
	mux *sync.Mutex
	w   io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{mux: &sync.Mutex{}, w: w}
}

func (w *Writer) Notify(n Notification) {
	w.mux.Lock()
	defer w.mux.Unlock()

	var mark string
	switch n.Level {
	case LevelSuccess:
		mark = "✓"
	case LevelError:
		mark = "✗"
	default:
		mark = "•"
	}
	fmt.Fprintf(w.w, "%s %s\n", mark, n.Text)
}

// Recorder запоминает уведомления. Используется в тестах
type Recorder struct {
	mux   sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mux.Lock()
	defer r.mux.Unlock()

	r.items = append(r.items, n)
}

// All - все уведомления в порядке поступления
func (r *Recorder) All() []Notification {
	r.mux.Lock()
	defer r.mux.Unlock()

	return append([]Notification(nil), r.items...)
}

// Last - последнее уведомление
func (r *Recorder) Last() (Notification, bool) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
