// Package record implements the fixed-width row frame stored in leaf
// cells: a 32-bit id followed by two null-terminated text fields.
package record

import (
	"encoding/binary"
	"fmt"
)

const (
	IDSize       = 4
	UsernameSize = 33 // 32 data bytes + 1 terminator
	EmailSize    = 256 // 255 data bytes + 1 terminator

	UsernameMaxLen = UsernameSize - 1
	EmailMaxLen    = EmailSize - 1

	// Size is the total on-disk width of a Row.
	Size = IDSize + UsernameSize + EmailSize
)

const (
	idOffset       = 0
	usernameOffset = idOffset + IDSize
	emailOffset    = usernameOffset + UsernameSize
)

// Row is the single record type this engine stores. Field order on
// disk is id, username, email — see Encode/Decode.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Validate checks the length constraints the REPL contract
// (spec.md §6.3) reports as "String is too long."
func (r Row) Validate() error {
	if len(r.Username) > UsernameMaxLen {
		return fmt.Errorf("username exceeds %d bytes", UsernameMaxLen)
	}
	if len(r.Email) > EmailMaxLen {
		return fmt.Errorf("email exceeds %d bytes", EmailMaxLen)
	}
	return nil
}

// Encode serializes r into dst, which must be at least Size bytes.
// Text fields are null-terminated and zero-padded; Encode panics if
// dst is too small, since that indicates a layout bug, not bad input
// (input length is enforced by Validate before this is ever called).
func Encode(r Row, dst []byte) {
	if len(dst) < Size {
		panic("record: destination buffer too small")
	}
	binary.LittleEndian.PutUint32(dst[idOffset:], r.ID)

	u := dst[usernameOffset : usernameOffset+UsernameSize]
	clear(u)
	copy(u, r.Username)

	e := dst[emailOffset : emailOffset+EmailSize]
	clear(e)
	copy(e, r.Email)
}

// Decode deserializes a Row from src, which must be at least Size
// bytes. Text fields are read up to their null terminator (or full
// capacity if none is present).
func Decode(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[idOffset:])
	username := cString(src[usernameOffset : usernameOffset+UsernameSize])
	email := cString(src[emailOffset : emailOffset+EmailSize])
	return Row{ID: id, Username: username, Email: email}
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
