// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keyfile loads messages, keys and signatures from disk for the
// command line tools. Key and signature files may be binary or ASCII armored.
package keyfile

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/pgpsig/go-rfc4880/openpgp/errors"
	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/openpgp/armor"
)

// DefaultMaxSize bounds the size of any file read by a Loader whose MaxSize
// is zero.
const DefaultMaxSize = 16 << 20

// Armor block types written by the command line tools.
const (
	PublicKeyType  = "PGP PUBLIC KEY BLOCK"
	PrivateKeyType = "PGP PRIVATE KEY BLOCK"
	SignatureType  = "PGP SIGNATURE"
)

var armorPrefix = []byte("-----BEGIN PGP")

// LoadError records a file that could not be read or dearmored.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError records a file that was read but does not hold the requested
// packets. Err carries the openpgp error kind.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader reads files up to a size limit.
type Loader struct {
	MaxSize int64
	Logger  logrus.FieldLogger
}

func (l *Loader) maxSize() int64 {
	if l == nil || l.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return l.MaxSize
}

func (l *Loader) log() logrus.FieldLogger {
	if l == nil || l.Logger == nil {
		return logrus.StandardLogger()
	}
	return l.Logger
}

// ReadFile returns the contents of path. Files larger than the limit are
// rejected with an AllocationFailure error before being read.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return data, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	max := l.maxSize()
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() > max {
		return nil, tooLarge(max)
	}
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read file")
	}
	if int64(len(data)) > max {
		return nil, tooLarge(max)
	}
	l.log().WithFields(logrus.Fields{"path": path, "size": len(data)}).Debug("keyfile: read file")
	return data, nil
}

func tooLarge(max int64) error {
	return errors.New(errors.AllocationFailure, "file exceeds "+strconv.FormatInt(max, 10)+" bytes")
}

// ReadPackets returns the binary packets stored in path, removing ASCII
// armor if present.
func (l *Loader) ReadPackets(path string) ([]byte, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), armorPrefix) {
		return data, nil
	}
	block, err := armor.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Path: path, Err: pkgerrors.Wrap(err, "failed to decode armor")}
	}
	body, err := io.ReadAll(block.Body)
	if err != nil {
		return nil, &LoadError{Path: path, Err: pkgerrors.Wrap(err, "failed to read armored body")}
	}
	l.log().WithFields(logrus.Fields{"path": path, "type": block.Type}).Debug("keyfile: removed armor")
	return body, nil
}

// LoadPublicKey reads the first public key packet in path.
func (l *Loader) LoadPublicKey(path string, config *packet.Config) (*packet.PublicKey, error) {
	data, err := l.ReadPackets(path)
	if err != nil {
		return nil, err
	}
	pk, err := packet.ReadPublicKey(data, config)
	if err != nil {
		return nil, &ParseError{Path: path, Err: pkgerrors.Wrap(err, "failed to parse public key")}
	}
	return pk, nil
}

// LoadPrivateKey reads the first secret key in path along with its public
// half.
func (l *Loader) LoadPrivateKey(path string, config *packet.Config) (*packet.PrivateKey, *packet.PublicKey, error) {
	data, err := l.ReadPackets(path)
	if err != nil {
		return nil, nil, err
	}
	priv, pk, err := packet.ReadPrivateKey(data, config)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: pkgerrors.Wrap(err, "failed to parse secret key")}
	}
	return priv, pk, nil
}

// LoadSignature reads the first signature in path.
func (l *Loader) LoadSignature(path string, config *packet.Config) (*packet.Signature, error) {
	data, err := l.ReadPackets(path)
	if err != nil {
		return nil, err
	}
	sig, err := packet.ReadSignature(data, config)
	if err != nil {
		return nil, &ParseError{Path: path, Err: pkgerrors.Wrap(err, "failed to parse signature")}
	}
	return sig, nil
}

// WriteArmored writes data to w as an armored block of the given type.
func WriteArmored(w io.Writer, blockType string, data []byte) error {
	aw, err := armor.Encode(w, blockType, nil)
	if err != nil {
		return err
	}
	if _, err := aw.Write(data); err != nil {
		return err
	}
	return aw.Close()
}
