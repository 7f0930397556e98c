//go:build nosdl

package sdlreader

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Reader is the stand-in for builds without SDL.
type Reader struct {
	AfterInit func()
}

func NewReader(Sink, logrus.FieldLogger) *Reader {
	return &Reader{}
}

// Run returns ErrUnavailable right away.
func (r *Reader) Run(context.Context) error {
	return ErrUnavailable
}
