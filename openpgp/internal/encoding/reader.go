// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"strconv"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
)

// Reader is a bounds-checked cursor over a byte slice. Every length check in
// the packet decoders happens here.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining reports how many bytes are left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Offset reports how many bytes have been consumed.
func (r *Reader) Offset() int {
	return r.off
}

// Take returns the next n bytes and advances past them. The returned slice
// aliases the underlying buffer and has its capacity clipped to n.
func (r *Reader) Take(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.New(errors.Truncated, "need "+strconv.Itoa(n)+" bytes, have "+strconv.Itoa(r.Remaining()))
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

// Skip advances past n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.Take(n)
	return err
}

// Sub returns a Reader bounded to the next n bytes and advances past them.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.Take(n)
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}

func (r *Reader) Byte() (byte, error) {
	b, err := r.Take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a big-endian two-octet value.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Uint32 reads a big-endian four-octet value.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
