// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rsa provides the RSASSA-PKCS1-v1_5 operations over raw big-endian
// key material, as it is stored in OpenPGP key packets.
package rsa // import "github.com/pgpsig/go-rfc4880/openpgp/rsa"

import (
	"crypto"
	gorsa "crypto/rsa"
	"math/big"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
)

// Primitive signs and verifies digests with RSA keys given as magnitudes.
type Primitive interface {
	// Verify reports whether sig is a valid signature of digest under the
	// public key (n, e).
	Verify(n, e []byte, hash crypto.Hash, digest, sig []byte) bool
	// Sign returns the signature of digest under the private key (n, d),
	// padded to the size of n.
	Sign(n, d []byte, hash crypto.Hash, digest []byte) ([]byte, error)
}

// PKCS1v15 is the default Primitive.
var PKCS1v15 Primitive = pkcs1v15{}

type pkcs1v15 struct{}

// maxPublicExponent is the largest exponent crypto/rsa accepts.
const maxPublicExponent = 1<<31 - 1

func (pkcs1v15) Verify(n, e []byte, hash crypto.Hash, digest, sig []byte) bool {
	exponent := new(big.Int).SetBytes(e)
	if !exponent.IsInt64() || exponent.Int64() > maxPublicExponent {
		return false
	}
	pub := &gorsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(exponent.Int64()),
	}
	return gorsa.VerifyPKCS1v15(pub, hash, digest, padToKeySize(pub, sig)) == nil
}

// Sign computes s = EM^d mod n directly, since a key decoded from a packet
// carries no CRT parameters for crypto/rsa to use.
func (pkcs1v15) Sign(n, d []byte, hash crypto.Hash, digest []byte) ([]byte, error) {
	modulus := new(big.Int).SetBytes(n)
	k := (modulus.BitLen() + 7) / 8
	em, err := encodePKCS1v15(k, hash, digest)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).SetBytes(em)
	if m.Cmp(modulus) >= 0 {
		return nil, errors.InvalidArgumentError("message representative out of range")
	}
	s := new(big.Int).Exp(m, new(big.Int).SetBytes(d), modulus)
	out := make([]byte, k)
	return s.FillBytes(out), nil
}

// hashPrefixes are the DER encoded DigestInfo prefixes. See RFC 8017,
// section 9.2.
var hashPrefixes = map[crypto.Hash][]byte{
	crypto.SHA1:   {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14},
	crypto.SHA256: {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20},
}

// encodePKCS1v15 builds EM = 0x00 || 0x01 || PS || 0x00 || DigestInfo.
func encodePKCS1v15(k int, hash crypto.Hash, digest []byte) ([]byte, error) {
	prefix, ok := hashPrefixes[hash]
	if !ok {
		return nil, errors.New(errors.UnsupportedHashAlgorithm, hash.String())
	}
	if len(digest) != hash.Size() {
		return nil, errors.InvalidArgumentError("digest length does not match hash")
	}
	tLen := len(prefix) + len(digest)
	if k < tLen+11 {
		return nil, errors.InvalidArgumentError("key too short for PKCS#1 v1.5 signature")
	}
	em := make([]byte, k)
	em[1] = 1
	for i := 2; i < k-tLen-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-tLen:], prefix)
	copy(em[k-len(digest):], digest)
	return em, nil
}

// padToKeySize left-pads a signature MPI with zeros to the length of the
// modulus, since OpenPGP strips leading zero octets.
func padToKeySize(pub *gorsa.PublicKey, b []byte) []byte {
	k := (pub.N.BitLen() + 7) / 8
	if len(b) >= k {
		return b
	}
	bb := make([]byte, k)
	copy(bb[len(bb)-len(b):], b)
	return bb
}
