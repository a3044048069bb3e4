package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// orDiscard returns l, or a logger that drops everything when l is nil
func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
