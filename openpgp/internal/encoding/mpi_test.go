// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"bytes"
	goerrors "errors"
	"math/big"
	"testing"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"pgregory.net/rapid"
)

var mpiTests = []struct {
	encoded   []byte
	bytes     []byte
	bitLength uint16
}{
	{[]byte{0x00, 0x00}, []byte{}, 0},
	{[]byte{0x00, 0x01, 0x01}, []byte{0x01}, 1},
	{[]byte{0x00, 0x09, 0x01, 0xff}, []byte{0x01, 0xff}, 9},
	{[]byte{0x00, 0x11, 0x01, 0x00, 0x01}, []byte{0x01, 0x00, 0x01}, 17},
	{[]byte{0x00, 0x10, 0x80, 0x00}, []byte{0x80, 0x00}, 16},
}

func TestMPIDecode(t *testing.T) {
	for i, test := range mpiTests {
		r := NewReader(append(test.encoded, 0xaa))
		m, err := ReadMPI(r)
		if err != nil {
			t.Errorf("#%d: ReadMPI: %v", i, err)
			continue
		}
		if !bytes.Equal(m.Bytes(), test.bytes) || m.BitLength() != test.bitLength || m.Size() != len(test.bytes) {
			t.Errorf("#%d: got %x/%d, want %x/%d", i, m.Bytes(), m.BitLength(), test.bytes, test.bitLength)
		}
		if r.Remaining() != 1 {
			t.Errorf("#%d: MPI decoder left %d bytes, want 1", i, r.Remaining())
		}
		n, err := NewMPI(test.bytes)
		if err != nil {
			t.Errorf("#%d: NewMPI: %v", i, err)
			continue
		}
		if got := n.EncodedBytes(); !bytes.Equal(got, test.encoded) {
			t.Errorf("#%d: encoded %x, want %x", i, got, test.encoded)
		}
	}
}

func TestMPITruncated(t *testing.T) {
	for _, in := range [][]byte{
		{},
		{0x00},
		{0x00, 0x09, 0x01},
		{0x08, 0x00, 0x01, 0x02},
	} {
		if _, err := ReadMPI(NewReader(in)); !goerrors.Is(err, errors.ErrTruncated) {
			t.Errorf("ReadMPI(%x) = %v, want truncation", in, err)
		}
	}
}

func TestMPICloneOwnsBytes(t *testing.T) {
	buf := []byte{0x00, 0x08, 0x7f}
	m, err := ReadMPI(NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	c := m.Clone()
	buf[2] = 0
	if c[0] != 0x7f {
		t.Errorf("clone aliases the source buffer")
	}
}

func TestNewMPIStripsLeadingZeros(t *testing.T) {
	m, err := NewMPI([]byte{0x00, 0x00, 0x03})
	if err != nil {
		t.Fatal(err)
	}
	if m.BitLength() != 2 || !bytes.Equal(m.Bytes(), []byte{0x03}) {
		t.Errorf("got %x/%d", m.Bytes(), m.BitLength())
	}
}

func TestNewMPILimit(t *testing.T) {
	// 8192 octets hold exactly 65535 bits when the top bit is clear.
	largest := bytes.Repeat([]byte{0xff}, 8192)
	largest[0] = 0x7f
	m, err := NewMPI(largest)
	if err != nil {
		t.Fatalf("NewMPI(%d bits): %v", MaxMPIBits, err)
	}
	if enc := m.EncodedBytes(); enc[0] != 0xff || enc[1] != 0xff {
		t.Errorf("bit count %x, want ffff", enc[:2])
	}

	for _, b := range [][]byte{
		bytes.Repeat([]byte{0xff}, 8192),
		append([]byte{0x00, 0x01}, make([]byte, 8192)...),
	} {
		if _, err := NewMPI(b); !goerrors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("NewMPI(%d octets) = %v, want an invalid argument error", len(b), err)
		}
	}
	// Leading zeros do not count towards the limit.
	if _, err := NewMPI(append(make([]byte, 16), largest...)); err != nil {
		t.Errorf("NewMPI with leading zeros: %v", err)
	}
}

func TestMPIChecksum(t *testing.T) {
	m, err := NewMPI([]byte{0x01, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	// 0x00 + 0x09 + 0x01 + 0xff
	if got := m.Checksum(); got != 0x109 {
		t.Errorf("checksum = %#x, want 0x109", got)
	}
}

func TestMPIRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mag := rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(t, "magnitude")
		want := new(big.Int).SetBytes(mag)
		n, err := NewMPI(mag)
		if err != nil {
			t.Fatalf("NewMPI: %v", err)
		}
		m, err := ReadMPI(NewReader(n.EncodedBytes()))
		if err != nil {
			t.Fatalf("ReadMPI: %v", err)
		}
		if int(m.BitLength()) != want.BitLen() {
			t.Fatalf("bit length %d, want %d", m.BitLength(), want.BitLen())
		}
		if m.Size() != (want.BitLen()+7)/8 {
			t.Fatalf("size %d, want %d", m.Size(), (want.BitLen()+7)/8)
		}
		if new(big.Int).SetBytes(m.Bytes()).Cmp(want) != 0 {
			t.Fatalf("magnitude %x, want %x", m.Bytes(), want.Bytes())
		}
	})
}
