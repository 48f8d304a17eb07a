package io

import (
	"io"
)

// Rom holds a program image.
type Rom struct {
	Capacity int // Capacity in bytes, or 0 for unlimited.
	Data     []byte
}

// Unmarshal loads the image from a reader, replacing any existing data.
// Returns ErrRomFull if the image exceeds the capacity.
func (rom *Rom) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	if rom.Capacity > 0 && len(data) > rom.Capacity {
		err = ErrRomFull
		return
	}

	rom.Data = data

	return
}

// Marshal writes the image to a writer.
func (rom *Rom) Marshal(file io.Writer) (err error) {
	_, err = file.Write(rom.Data)

	return
}
