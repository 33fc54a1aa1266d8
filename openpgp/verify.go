// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package openpgp verifies and creates detached RSA/SHA-1 OpenPGP signatures
// (RFC 4880) over in-memory messages.
package openpgp // import "github.com/pgpsig/go-rfc4880/openpgp"

import (
	"crypto"
	_ "crypto/sha1"
	"hash"

	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	"github.com/pgpsig/go-rfc4880/openpgp/rsa"
)

// Verifier checks signatures against public keys. The zero value is ready to
// use and verifies with RSA PKCS#1 v1.5.
type Verifier struct {
	Primitive rsa.Primitive
	Config    *packet.Config
}

func (v *Verifier) primitive() rsa.Primitive {
	if v == nil || v.Primitive == nil {
		return rsa.PKCS1v15
	}
	return v.Primitive
}

func (v *Verifier) config() *packet.Config {
	if v == nil {
		return nil
	}
	return v.Config
}

// Verify reports whether sig is a signature by pub over message. It hashes
// message followed by sig.HashSuffix and hands the digest to the RSA
// primitive. A mismatch is a normal false result; Verify never parses and
// never modifies its arguments.
func (v *Verifier) Verify(message []byte, pub *packet.PublicKey, sig *packet.Signature) bool {
	if pub == nil || sig == nil || sig.Hash != crypto.SHA1 {
		return false
	}
	digest := Digest(message, sig, v.config())
	if v.config().HashTag() && (digest[0] != sig.HashTag[0] || digest[1] != sig.HashTag[1]) {
		v.config().Log().WithField("issuer", pub.KeyIdString()).Debug("openpgp: hash tag mismatch")
		return false
	}
	return v.primitive().Verify(pub.N, pub.E, sig.Hash, digest, sig.RSASignature)
}

// Digest returns the hash of message followed by the signature's hash
// suffix. With config.CanonicalText set, text signatures hash the message
// with canonical line endings.
func Digest(message []byte, sig *packet.Signature, config *packet.Config) []byte {
	return digest(message, sig, config.Canonical() && sig.SigType == packet.SigTypeText)
}

func digest(message []byte, sig *packet.Signature, canonical bool) []byte {
	h := sig.Hash.New()
	var w hash.Hash = h
	if canonical {
		w = NewCanonicalTextHash(h)
	}
	w.Write(message)
	h.Write(sig.HashSuffix)
	return h.Sum(nil)
}

// Verify checks sig against pub and message with the default Verifier.
func Verify(message []byte, pub *packet.PublicKey, sig *packet.Signature) bool {
	return (*Verifier)(nil).Verify(message, pub, sig)
}

// VerifyDetached parses a signature and a public key and checks the
// signature over message. Malformed or unsupported input is reported as an
// error; a well-formed signature that does not match returns false, nil.
func VerifyDetached(message, signature, publicKey []byte, config *packet.Config) (bool, error) {
	sig, err := packet.ReadSignature(signature, config)
	if err != nil {
		return false, err
	}
	pub, err := packet.ReadPublicKey(publicKey, config)
	if err != nil {
		return false, err
	}
	v := &Verifier{Config: config}
	return v.Verify(message, pub, sig), nil
}
