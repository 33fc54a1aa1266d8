// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/internal/encoding"
)

// SignatureType represents the different semantic meanings of an OpenPGP
// signature. See RFC 4880, section 5.2.1.
type SignatureType uint8

const (
	SigTypeBinary        SignatureType = 0x00
	SigTypeText          SignatureType = 0x01
	SigTypeGenericCert   SignatureType = 0x10
	SigTypePositiveCert  SignatureType = 0x13
	SigTypeSubkeyBinding SignatureType = 0x18
)

func (t SignatureType) String() string {
	switch t {
	case SigTypeBinary:
		return "binary document"
	case SigTypeText:
		return "canonical text document"
	case SigTypeGenericCert:
		return "generic certification"
	case SigTypePositiveCert:
		return "positive certification"
	case SigTypeSubkeyBinding:
		return "subkey binding"
	}
	return fmt.Sprintf("signature type 0x%02x", uint8(t))
}

// Subpacket types used by the signer and decoded informationally by the
// parser.
const (
	subpacketCreationTime = 2
	subpacketIssuer       = 16
)

// signatureHeaderLen is the fixed prefix of a v4 signature body: version,
// type, public key algorithm, hash algorithm and hashed subpacket length.
const signatureHeaderLen = 6

// Signature represents a v4 RSA signature. See RFC 4880, section 5.2.3.
type Signature struct {
	SigType    SignatureType
	PubKeyAlgo PublicKeyAlgorithm
	Hash       crypto.Hash

	// HashSuffix is the trailer appended to the message before hashing:
	// the signature header, the hashed subpackets and the final six-octet
	// length footer.
	HashSuffix []byte
	// HashTag contains the first two bytes of the digest, as stored by the
	// signer.
	HashTag [2]byte
	// RSASignature is the signature value s.
	RSASignature []byte

	HashedSubpackets   []byte
	UnhashedSubpackets []byte

	// CreationTime and IssuerKeyId are decoded from the subpackets when
	// present. They are informational and do not influence verification.
	CreationTime time.Time
	IssuerKeyId  *uint64
}

// parse is the signature codec. It needs the whole packet body because the
// hash suffix reproduces a prefix of it.
func (sig *Signature) parse(body []byte) (err error) {
	r := encoding.NewReader(body)
	header, err := r.Take(signatureHeaderLen)
	if err != nil {
		return fmt.Errorf("signature header: %w", err)
	}
	if header[0] != 4 {
		return errors.New(errors.UnsupportedVersion, "signature packet version "+strconv.Itoa(int(header[0])))
	}
	sig.SigType = SignatureType(header[1])
	sig.PubKeyAlgo = PublicKeyAlgorithm(header[2])
	if !sig.PubKeyAlgo.isRSA() {
		return errors.New(errors.UnsupportedAlgorithm, "public key algorithm "+strconv.Itoa(int(header[2])))
	}
	if header[3] != hashAlgoSHA1 {
		return errors.New(errors.UnsupportedHashAlgorithm, "hash function "+strconv.Itoa(int(header[3])))
	}
	sig.Hash = crypto.SHA1

	hashedLength := int(header[4])<<8 | int(header[5])
	hashed, err := r.Take(hashedLength)
	if err != nil {
		return fmt.Errorf("hashed subpackets: %w", err)
	}
	unhashedLength, err := r.Uint16()
	if err != nil {
		return fmt.Errorf("unhashed subpacket length: %w", err)
	}
	unhashed, err := r.Take(int(unhashedLength))
	if err != nil {
		return fmt.Errorf("unhashed subpackets: %w", err)
	}
	tag, err := r.Take(2)
	if err != nil {
		return fmt.Errorf("hash tag: %w", err)
	}
	s, err := encoding.ReadMPI(r)
	if err != nil {
		return fmt.Errorf("RSA signature: %w", err)
	}

	copy(sig.HashTag[:], tag)
	sig.RSASignature = s.Clone()
	sig.HashedSubpackets = append([]byte(nil), hashed...)
	sig.UnhashedSubpackets = append([]byte(nil), unhashed...)
	sig.HashSuffix = buildHashSuffix(body[:signatureHeaderLen+hashedLength])
	sig.decodeSubpackets()
	return nil
}

// buildHashSuffix appends the v4 trailer footer to the hashed prefix of a
// signature. See RFC 4880, section 5.2.4.
func buildHashSuffix(prefix []byte) []byte {
	suffix := make([]byte, len(prefix)+6)
	n := copy(suffix, prefix)
	suffix[n] = 4
	suffix[n+1] = 0xff
	binary.BigEndian.PutUint32(suffix[n+2:], uint32(len(prefix)))
	return suffix
}

// decodeSubpackets extracts the creation time and issuer. Values in the
// unhashed area are not covered by the signature and only fill fields the
// hashed area left unset. Malformed subpacket data is ignored here; it is
// hashed as-is during verification.
func (sig *Signature) decodeSubpackets() {
	sig.decodeSubpacketArea(sig.HashedSubpackets, true)
	sig.decodeSubpacketArea(sig.UnhashedSubpackets, false)
}

func (sig *Signature) decodeSubpacketArea(area []byte, hashed bool) {
	r := encoding.NewReader(area)
	for r.Remaining() > 0 {
		typ, data, err := readSubpacket(r)
		if err != nil {
			return
		}
		switch {
		case typ == subpacketCreationTime && len(data) == 4:
			if hashed || sig.CreationTime.IsZero() {
				sig.CreationTime = time.Unix(int64(binary.BigEndian.Uint32(data)), 0)
			}
		case typ == subpacketIssuer && len(data) == 8:
			if hashed || sig.IssuerKeyId == nil {
				keyId := binary.BigEndian.Uint64(data)
				sig.IssuerKeyId = &keyId
			}
		}
	}
}

// readSubpacket reads one subpacket. See RFC 4880, section 5.2.3.1.
func readSubpacket(r *encoding.Reader) (typ uint8, data []byte, err error) {
	first, err := r.Byte()
	if err != nil {
		return
	}
	var length int
	switch {
	case first < 192:
		length = int(first)
	case first < 255:
		var second byte
		if second, err = r.Byte(); err != nil {
			return
		}
		length = (int(first)-192)<<8 + int(second) + 192
	default:
		var l uint32
		if l, err = r.Uint32(); err != nil {
			return
		}
		if l > uint32(r.Remaining()) {
			err = errors.New(errors.Truncated, "subpacket length")
			return
		}
		length = int(l)
	}
	if length == 0 {
		err = errors.New(errors.Truncated, "empty subpacket")
		return
	}
	b, err := r.Take(length)
	if err != nil {
		return
	}
	// The top bit is the critical flag.
	return b[0] & 0x7f, b[1:], nil
}

// NewDetachedSignature returns an unsigned v4 signature over SHA-1 with a
// hashed creation time subpacket and, if issuer is not nil, an unhashed
// issuer subpacket. HashSuffix is ready to be hashed.
func NewDetachedSignature(sigType SignatureType, creationTime time.Time, issuer *uint64) *Signature {
	sig := &Signature{
		SigType:      sigType,
		PubKeyAlgo:   PubKeyAlgoRSA,
		Hash:         crypto.SHA1,
		CreationTime: creationTime,
		IssuerKeyId:  issuer,
	}
	var created [4]byte
	binary.BigEndian.PutUint32(created[:], uint32(creationTime.Unix()))
	sig.HashedSubpackets = append([]byte{5, subpacketCreationTime}, created[:]...)
	if issuer != nil {
		var id [8]byte
		binary.BigEndian.PutUint64(id[:], *issuer)
		sig.UnhashedSubpackets = append([]byte{9, subpacketIssuer}, id[:]...)
	}
	sig.HashSuffix = buildHashSuffix(sig.header())
	return sig
}

// header returns the signature header followed by the hashed subpackets.
func (sig *Signature) header() []byte {
	h := make([]byte, signatureHeaderLen, signatureHeaderLen+len(sig.HashedSubpackets))
	h[0] = 4
	h[1] = byte(sig.SigType)
	h[2] = byte(sig.PubKeyAlgo)
	h[3] = hashAlgoSHA1
	h[4] = byte(len(sig.HashedSubpackets) >> 8)
	h[5] = byte(len(sig.HashedSubpackets))
	return append(h, sig.HashedSubpackets...)
}

// Serialize writes sig as an old-format signature packet. The signature
// value must already be set.
func (sig *Signature) Serialize(w io.Writer) (err error) {
	if len(sig.RSASignature) == 0 {
		return errors.InvalidArgumentError("signature value not set")
	}
	if len(sig.HashedSubpackets) > 0xffff || len(sig.UnhashedSubpackets) > 0xffff {
		return errors.InvalidArgumentError("subpacket area too long")
	}
	s, err := encoding.NewMPI(sig.RSASignature)
	if err != nil {
		return
	}
	var buf bytes.Buffer
	buf.Write(sig.header())
	buf.Write([]byte{byte(len(sig.UnhashedSubpackets) >> 8), byte(len(sig.UnhashedSubpackets))})
	buf.Write(sig.UnhashedSubpackets)
	buf.Write(sig.HashTag[:])
	buf.Write(s.EncodedBytes())

	if err = serializeHeader(w, PacketTypeSignature, buf.Len()); err != nil {
		return
	}
	_, err = w.Write(buf.Bytes())
	return
}
