// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"math/bits"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
)

// MaxMPIBits is the largest bit count the two-octet length can hold.
const MaxMPIBits = 0xffff

// An MPI is a multi-precision integer as it appears in a packet body: a
// two-octet bit count followed by ceil(bits/8) big-endian magnitude octets.
// A decoded MPI borrows from the body it was read from; use Clone to keep it.
type MPI struct {
	bitLength uint16
	bytes     []byte
}

// ReadMPI decodes the next MPI from r.
func ReadMPI(r *Reader) (MPI, error) {
	bitLength, err := r.Uint16()
	if err != nil {
		return MPI{}, err
	}
	b, err := r.Take((int(bitLength) + 7) / 8)
	if err != nil {
		return MPI{}, err
	}
	return MPI{bitLength: bitLength, bytes: b}, nil
}

// NewMPI returns an MPI for the big-endian magnitude b. Leading zero octets
// are dropped and the bit count is exact. Magnitudes longer than MaxMPIBits
// cannot be encoded.
func NewMPI(b []byte) (MPI, error) {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	bitLength := 0
	if len(b) > 0 {
		bitLength = 8*(len(b)-1) + bits.Len8(b[0])
	}
	if bitLength > MaxMPIBits {
		return MPI{}, errors.InvalidArgumentError("integer too long for an MPI")
	}
	return MPI{bitLength: uint16(bitLength), bytes: b}, nil
}

// Bytes returns the magnitude octets.
func (m MPI) Bytes() []byte {
	return m.bytes
}

// BitLength is the bit count stored in the encoding.
func (m MPI) BitLength() uint16 {
	return m.bitLength
}

// Size is the number of magnitude octets.
func (m MPI) Size() int {
	return len(m.bytes)
}

// Clone returns an owned copy of the magnitude octets.
func (m MPI) Clone() []byte {
	out := make([]byte, len(m.bytes))
	copy(out, m.bytes)
	return out
}

// EncodedLength is the size in bytes of the encoded data.
func (m MPI) EncodedLength() int {
	return 2 + len(m.bytes)
}

// EncodedBytes returns the wire encoding of m.
func (m MPI) EncodedBytes() []byte {
	out := make([]byte, 0, m.EncodedLength())
	out = append(out, byte(m.bitLength>>8), byte(m.bitLength))
	return append(out, m.bytes...)
}

// Checksum returns the sum of the encoded octets modulo 65536, as used by
// unprotected secret key material.
func (m MPI) Checksum() uint16 {
	sum := uint16(m.bitLength>>8) + uint16(m.bitLength&0xff)
	for _, b := range m.bytes {
		sum += uint16(b)
	}
	return sum
}
