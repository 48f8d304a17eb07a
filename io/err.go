package io

import (
	"errors"

	"github.com/ezrec/tinycore/translate"
)

var f = translate.From

var (
	// Port and ROM errors
	ErrRomFull    = errors.New(f("rom full"))
	ErrPortOutput = errors.New(f("port output missing"))
)
