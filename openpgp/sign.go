// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"io"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	"github.com/pgpsig/go-rfc4880/openpgp/rsa"
)

// Signer creates detached signatures. The zero value makes binary
// signatures with RSA PKCS#1 v1.5.
type Signer struct {
	Primitive rsa.Primitive
	Config    *packet.Config
	// SigType is either packet.SigTypeBinary or packet.SigTypeText. Text
	// signatures are always computed over canonical line endings.
	SigType packet.SignatureType
}

// Sign returns a v4 signature by priv over message.
func (s *Signer) Sign(message []byte, priv *packet.PrivateKey) (*packet.Signature, error) {
	if priv == nil {
		return nil, errors.InvalidArgumentError("no signing key")
	}
	var config *packet.Config
	primitive := rsa.PKCS1v15
	sigType := packet.SigTypeBinary
	if s != nil {
		config = s.Config
		sigType = s.SigType
		if s.Primitive != nil {
			primitive = s.Primitive
		}
	}
	if sigType != packet.SigTypeBinary && sigType != packet.SigTypeText {
		return nil, errors.InvalidArgumentError("cannot create detached signatures of this type")
	}

	keyId := priv.KeyId
	sig := packet.NewDetachedSignature(sigType, config.Now(), &keyId)
	hashed := digest(message, sig, sigType == packet.SigTypeText)
	value, err := primitive.Sign(priv.N, priv.D, sig.Hash, hashed)
	if err != nil {
		return nil, err
	}
	copy(sig.HashTag[:], hashed[:2])
	sig.RSASignature = value
	return sig, nil
}

// DetachSign signs message with priv and writes the signature to w as an
// old-format signature packet.
func DetachSign(w io.Writer, priv *packet.PrivateKey, message []byte, config *packet.Config) error {
	s := &Signer{Config: config}
	sig, err := s.Sign(message, priv)
	if err != nil {
		return err
	}
	return sig.Serialize(w)
}
