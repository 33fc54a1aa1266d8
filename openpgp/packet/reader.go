// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/internal/encoding"
)

// Request names the artifacts Parse must find. Any combination may be set.
type Request struct {
	PublicKey  bool
	PrivateKey bool
	Signature  bool
}

func (req Request) empty() bool {
	return !req.PublicKey && !req.PrivateKey && !req.Signature
}

// Result holds the artifacts found by Parse. Every requested field is set on
// success. A secret key packet also fills PublicKey if it is still empty,
// whether or not it was requested.
type Result struct {
	PublicKey  *PublicKey
	PrivateKey *PrivateKey
	Signature  *Signature
}

func (res *Result) missing(req Request) []string {
	var m []string
	if req.PublicKey && res.PublicKey == nil {
		m = append(m, "public key")
	}
	if req.PrivateKey && res.PrivateKey == nil {
		m = append(m, "secret key")
	}
	if req.Signature && res.Signature == nil {
		m = append(m, "signature")
	}
	return m
}

// Parse walks the old-format packets in data and decodes the ones that fill
// a requested slot: signature packets for Signature, secret key packets for
// PrivateKey and public key packets for PublicKey. Other packets are skipped
// unparsed. Packets are matched to slots by tag alone, in any order, so a
// certification signature inside a key block fills the Signature slot just
// like a detached one. Parse stops as soon as every requested slot is
// filled; the first error aborts the whole parse.
func Parse(data []byte, req Request, config *Config) (*Result, error) {
	if req.empty() {
		return nil, errors.InvalidArgumentError("no artifacts requested")
	}
	log := config.Log()
	r := encoding.NewReader(data)
	res := new(Result)
	for r.Remaining() > 0 {
		offset := r.Offset()
		p, err := readPacket(r)
		if err != nil {
			log.WithError(err).WithField("offset", offset).Debug("packet: bad header")
			return nil, fmt.Errorf("packet header at offset %d: %w", offset, err)
		}
		entry := log.WithFields(logrus.Fields{"tag": p.Tag, "length": p.Length, "offset": offset})

		var slotFilled bool
		switch {
		case p.Tag == PacketTypeSignature && req.Signature:
			slotFilled = res.Signature != nil
		case p.Tag == PacketTypePrivateKey && req.PrivateKey:
			slotFilled = res.PrivateKey != nil
		case p.Tag == PacketTypePublicKey && req.PublicKey:
			slotFilled = res.PublicKey != nil
		default:
			entry.Debug("packet: skipping")
			continue
		}
		if slotFilled {
			if config.Strict() {
				return nil, errors.New(errors.DuplicatePacket, fmt.Sprintf("second %s packet at offset %d", p.Tag, offset))
			}
			entry.Debug("packet: slot already filled, skipping")
			continue
		}

		if err := res.decode(p, config); err != nil {
			entry.WithError(err).Debug("packet: decode failed")
			return nil, fmt.Errorf("%s packet at offset %d: %w", p.Tag, offset, err)
		}
		entry.Debug("packet: decoded")

		if len(res.missing(req)) == 0 {
			return res, nil
		}
	}
	missing := strings.Join(res.missing(req), ", ")
	log.WithField("missing", missing).Debug("packet: input exhausted")
	return nil, errors.New(errors.MissingRequiredElements, missing)
}

func (res *Result) decode(p Packet, config *Config) error {
	switch p.Tag {
	case PacketTypeSignature:
		sig := new(Signature)
		if err := sig.parse(p.Body); err != nil {
			return err
		}
		res.Signature = sig
	case PacketTypePrivateKey:
		pk, priv, err := parseKey(p.Body, true, config)
		if err != nil {
			return err
		}
		res.PrivateKey = priv
		if res.PublicKey == nil {
			res.PublicKey = pk
		}
	case PacketTypePublicKey:
		pk, _, err := parseKey(p.Body, false, config)
		if err != nil {
			return err
		}
		res.PublicKey = pk
	}
	return nil
}

// ReadPublicKey returns the first public key in data.
func ReadPublicKey(data []byte, config *Config) (*PublicKey, error) {
	res, err := Parse(data, Request{PublicKey: true}, config)
	if err != nil {
		return nil, err
	}
	return res.PublicKey, nil
}

// ReadPrivateKey returns the first unprotected secret key in data together
// with its public half.
func ReadPrivateKey(data []byte, config *Config) (*PrivateKey, *PublicKey, error) {
	res, err := Parse(data, Request{PrivateKey: true}, config)
	if err != nil {
		return nil, nil, err
	}
	return res.PrivateKey, res.PublicKey, nil
}

// ReadSignature returns the first signature in data.
func ReadSignature(data []byte, config *Config) (*Signature, error) {
	res, err := Parse(data, Request{Signature: true}, config)
	if err != nil {
		return nil, err
	}
	return res.Signature, nil
}
