// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/internal/encoding"
)

// PrivateKey holds the RSA signing material of an unprotected v4 secret key.
// See RFC 4880, section 5.5.3. The CRT parameters p, q and u are checked for
// structure while parsing and then dropped.
type PrivateKey struct {
	PubKeyAlgo PublicKeyAlgorithm
	// KeyId is the key ID of the public half.
	KeyId uint64
	N     []byte
	D     []byte
	// Checksum is the two-octet checksum stored in the packet.
	// ChecksumValid records whether it matches the secret MPIs.
	Checksum      uint16
	ChecksumValid bool
}

// s2kUsageNone marks secret key material that is stored in the clear.
const s2kUsageNone = 0x00

// parseKey is the key codec: it decodes a public or secret key packet body.
// priv is only decoded, and only returned, when withPrivate is set.
func parseKey(body []byte, withPrivate bool, config *Config) (pk *PublicKey, priv *PrivateKey, err error) {
	r := encoding.NewReader(body)
	pk = new(PublicKey)
	if err = pk.parse(r, body); err != nil {
		return nil, nil, err
	}
	if !withPrivate {
		return pk, nil, nil
	}
	priv = &PrivateKey{
		PubKeyAlgo: pk.PubKeyAlgo,
		KeyId:      pk.KeyId,
	}
	if err = priv.parse(r, config); err != nil {
		return nil, nil, err
	}
	// The public key and the private key own separate copies of n.
	priv.N = append([]byte(nil), pk.N...)
	return pk, priv, nil
}

func (priv *PrivateKey) parse(r *encoding.Reader, config *Config) error {
	usage, err := r.Byte()
	if err != nil {
		return fmt.Errorf("s2k usage: %w", err)
	}
	if usage != s2kUsageNone {
		return errors.New(errors.UnsupportedEncryptedKey, "s2k usage "+strconv.Itoa(int(usage)))
	}
	var sum uint16
	var mpis [4]encoding.MPI
	for i, name := range []string{"d", "p", "q", "u"} {
		if mpis[i], err = encoding.ReadMPI(r); err != nil {
			return fmt.Errorf("RSA secret %s: %w", name, err)
		}
		sum += mpis[i].Checksum()
	}
	if r.Remaining() != 2 {
		return errors.New(errors.MissingChecksum, strconv.Itoa(r.Remaining())+" trailing bytes")
	}
	// Remaining is exactly 2, so this cannot fail.
	priv.Checksum, _ = r.Uint16()
	priv.ChecksumValid = priv.Checksum == sum
	if !priv.ChecksumValid && config.KeyChecksum() {
		return errors.New(errors.ChecksumMismatch, fmt.Sprintf("stored %#04x, computed %#04x", priv.Checksum, sum))
	}
	priv.D = mpis[0].Clone()
	return nil
}

// SerializeRSASecretKey writes key as an old-format, unprotected v4 secret
// key packet with a valid checksum.
func SerializeRSASecretKey(w io.Writer, creationTime time.Time, key *rsa.PrivateKey) error {
	if len(key.Primes) != 2 {
		return errors.InvalidArgumentError("RSA key must have exactly two primes")
	}
	p, q := key.Primes[0], key.Primes[1]
	// RFC 4880 requires p < q and u = p^-1 mod q.
	if p.Cmp(q) > 0 {
		p, q = q, p
	}
	u := new(big.Int).ModInverse(p, q)
	if u == nil {
		return errors.InvalidArgumentError("RSA primes are not coprime")
	}

	pub, err := NewRSAPublicKey(creationTime, &key.PublicKey).serializeBody()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.Write(pub)
	buf.WriteByte(s2kUsageNone)
	var sum uint16
	for _, x := range []*big.Int{key.D, p, q, u} {
		m, err := encoding.NewMPI(x.Bytes())
		if err != nil {
			return err
		}
		buf.Write(m.EncodedBytes())
		sum += m.Checksum()
	}
	buf.Write([]byte{byte(sum >> 8), byte(sum)})

	if err := serializeHeader(w, PacketTypePrivateKey, buf.Len()); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
