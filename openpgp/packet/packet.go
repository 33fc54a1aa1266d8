// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package packet implements parsing and serialization of the subset of
// OpenPGP packets needed to verify RSA/SHA-1 detached signatures: v4 public
// keys, unprotected v4 secret keys and v4 signatures, framed with old-format
// headers. See RFC 4880, section 4.
package packet // import "github.com/pgpsig/go-rfc4880/openpgp/packet"

import (
	"io"
	"strconv"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/internal/encoding"
)

// PacketType is the tag of an OpenPGP packet. See RFC 4880, section 4.3.
type PacketType uint8

const (
	PacketTypeSignature  PacketType = 2
	PacketTypePrivateKey PacketType = 5
	PacketTypePublicKey  PacketType = 6
	PacketTypeUserId     PacketType = 13
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeSignature:
		return "signature"
	case PacketTypePrivateKey:
		return "secret key"
	case PacketTypePublicKey:
		return "public key"
	case PacketTypeUserId:
		return "user id"
	}
	return "packet type " + strconv.Itoa(int(t))
}

// PublicKeyAlgorithm represents the different public key system specified for
// OpenPGP. See
// http://www.iana.org/assignments/pgp-parameters/pgp-parameters.xhtml#pgp-parameters-12
type PublicKeyAlgorithm uint8

const (
	PubKeyAlgoRSA            PublicKeyAlgorithm = 1
	PubKeyAlgoRSAEncryptOnly PublicKeyAlgorithm = 2
	PubKeyAlgoRSASignOnly    PublicKeyAlgorithm = 3
)

func (pka PublicKeyAlgorithm) String() string {
	switch pka {
	case PubKeyAlgoRSA:
		return "RSA"
	case PubKeyAlgoRSAEncryptOnly:
		return "RSA (encrypt only)"
	case PubKeyAlgoRSASignOnly:
		return "RSA (sign only)"
	}
	return "algorithm " + strconv.Itoa(int(pka))
}

func (pka PublicKeyAlgorithm) isRSA() bool {
	switch pka {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		return true
	}
	return false
}

// hashAlgoSHA1 is the only hash algorithm identifier accepted in signatures.
const hashAlgoSHA1 = 2

const (
	tagMandatoryBit = 0x80
	tagNewFormatBit = 0x40
)

// Packet is a single old-format packet. Body aliases the buffer the packet
// was read from.
type Packet struct {
	Tag    PacketType
	Length int
	Body   []byte
}

// readPacket reads one old-format header from r and returns the packet body
// as a bounded slice, leaving r positioned after it. See RFC 4880, section
// 4.2.1.
func readPacket(r *encoding.Reader) (p Packet, err error) {
	tag, err := r.Byte()
	if err != nil {
		return
	}
	if tag&tagMandatoryBit == 0 {
		err = errors.New(errors.InvalidHeader, "tag byte 0x"+strconv.FormatUint(uint64(tag), 16))
		return
	}
	if tag&tagNewFormatBit != 0 {
		err = errors.New(errors.UnsupportedFormat, "new-format header 0x"+strconv.FormatUint(uint64(tag), 16))
		return
	}
	p.Tag = PacketType((tag >> 2) & 0x0f)
	switch lengthType := tag & 3; lengthType {
	case 0:
		var l byte
		if l, err = r.Byte(); err != nil {
			return
		}
		p.Length = int(l)
	case 1:
		var l uint16
		if l, err = r.Uint16(); err != nil {
			return
		}
		p.Length = int(l)
	default:
		err = errors.New(errors.UnsupportedLengthType, "length type "+strconv.Itoa(int(lengthType)))
		return
	}
	p.Body, err = r.Take(p.Length)
	return
}

// ReadPacket splits the first packet off data and returns it along with the
// bytes that follow it.
func ReadPacket(data []byte) (p Packet, rest []byte, err error) {
	r := encoding.NewReader(data)
	if p, err = readPacket(r); err != nil {
		return Packet{}, nil, err
	}
	return p, data[r.Offset():], nil
}

// maxOldFormatLength is the largest body an old-format header without the
// four-octet length type can describe.
const maxOldFormatLength = 0xffff

// serializeHeader writes an old-format packet header for a body of the given
// length, using the shortest supported length type.
func serializeHeader(w io.Writer, ptype PacketType, length int) (err error) {
	var buf [3]byte
	var n int
	switch {
	case length < 0 || length > maxOldFormatLength:
		return errors.InvalidArgumentError("packet body of " + strconv.Itoa(length) + " bytes does not fit an old-format header")
	case length < 256:
		buf[0] = tagMandatoryBit | byte(ptype)<<2
		buf[1] = byte(length)
		n = 2
	default:
		buf[0] = tagMandatoryBit | byte(ptype)<<2 | 1
		buf[1] = byte(length >> 8)
		buf[2] = byte(length)
		n = 3
	}
	_, err = w.Write(buf[:n])
	return
}
