// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/internal/encoding"
)

// PublicKey represents a v4 RSA public key. See RFC 4880, section 5.5.2.
// N and E are big-endian magnitudes owned by the key.
type PublicKey struct {
	CreationTime time.Time
	PubKeyAlgo   PublicKeyAlgorithm
	N            []byte
	E            []byte
	Fingerprint  [20]byte
	KeyId        uint64
}

// NewRSAPublicKey returns a PublicKey that wraps the given rsa.PublicKey.
// A modulus too long to encode leaves the fingerprint and key ID zero, and
// Serialize reports it.
func NewRSAPublicKey(creationTime time.Time, pub *rsa.PublicKey) *PublicKey {
	pk := &PublicKey{
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoRSA,
		N:            pub.N.Bytes(),
		E:            big.NewInt(int64(pub.E)).Bytes(),
	}
	if body, err := pk.serializeBody(); err == nil {
		pk.setFingerprintAndKeyId(body)
	}
	return pk
}

// parse decodes the public portion of a key body from r. body is the whole
// packet body r reads from, which the fingerprint is computed over.
func (pk *PublicKey) parse(r *encoding.Reader, body []byte) (err error) {
	start := r.Offset()
	version, err := r.Byte()
	if err != nil {
		return fmt.Errorf("key version: %w", err)
	}
	if version != 4 {
		return errors.New(errors.UnsupportedVersion, "public key version "+strconv.Itoa(int(version)))
	}
	created, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("key creation time: %w", err)
	}
	pk.CreationTime = time.Unix(int64(created), 0)
	algo, err := r.Byte()
	if err != nil {
		return fmt.Errorf("key algorithm: %w", err)
	}
	pk.PubKeyAlgo = PublicKeyAlgorithm(algo)
	if !pk.PubKeyAlgo.isRSA() {
		return errors.New(errors.UnsupportedAlgorithm, "public key type: "+strconv.Itoa(int(algo)))
	}
	if err = pk.parseRSA(r); err != nil {
		return err
	}
	pk.setFingerprintAndKeyId(body[start:r.Offset()])
	return nil
}

// parseRSA parses RSA public key material from the given Reader. See RFC 4880,
// section 5.5.2.
func (pk *PublicKey) parseRSA(r *encoding.Reader) error {
	n, err := encoding.ReadMPI(r)
	if err != nil {
		return fmt.Errorf("RSA modulus: %w", err)
	}
	e, err := encoding.ReadMPI(r)
	if err != nil {
		return fmt.Errorf("RSA exponent: %w", err)
	}
	pk.N = n.Clone()
	pk.E = e.Clone()
	return nil
}

func (pk *PublicKey) setFingerprintAndKeyId(body []byte) {
	fingerprint := sha1.New()
	fingerprint.Write([]byte{0x99, byte(len(body) >> 8), byte(len(body))})
	fingerprint.Write(body)
	copy(pk.Fingerprint[:], fingerprint.Sum(nil))
	pk.KeyId = binary.BigEndian.Uint64(pk.Fingerprint[12:20])
}

func (pk *PublicKey) serializeBody() ([]byte, error) {
	n, err := encoding.NewMPI(pk.N)
	if err != nil {
		return nil, err
	}
	e, err := encoding.NewMPI(pk.E)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	var created [4]byte
	binary.BigEndian.PutUint32(created[:], uint32(pk.CreationTime.Unix()))
	buf.WriteByte(4)
	buf.Write(created[:])
	buf.WriteByte(byte(pk.PubKeyAlgo))
	buf.Write(n.EncodedBytes())
	buf.Write(e.EncodedBytes())
	return buf.Bytes(), nil
}

// Serialize writes pk as an old-format public key packet.
func (pk *PublicKey) Serialize(w io.Writer) (err error) {
	body, err := pk.serializeBody()
	if err != nil {
		return
	}
	if err = serializeHeader(w, PacketTypePublicKey, len(body)); err != nil {
		return
	}
	_, err = w.Write(body)
	return
}

// KeyIdString returns the public key's fingerprint in capital hex
// (e.g. "6C7EE1B8621CC013").
func (pk *PublicKey) KeyIdString() string {
	return fmt.Sprintf("%016X", pk.KeyId)
}

// BitLength returns the bit length of the modulus.
func (pk *PublicKey) BitLength() int {
	return new(big.Int).SetBytes(pk.N).BitLen()
}
