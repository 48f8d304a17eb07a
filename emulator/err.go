package emulator

import (
	"errors"

	"github.com/ezrec/tinycore/translate"
)

var f = translate.From

var (
	ErrTickLimit    = errors.New(f("tick limit reached"))
	ErrLoadWord     = errors.New(f("word sets the load flag bit"))
	ErrModeMismatch = errors.New(f("program mode does not match emulator"))
	ErrImageSize    = errors.New(f("image exceeds program store"))
)

// ErrRuntime indicates the tick of a runtime error.
type ErrRuntime struct {
	Tick int
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d %v", err.Tick, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
