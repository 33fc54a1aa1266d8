// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors contains common error types for the OpenPGP packages.
//
// Every error produced while decoding carries a Kind. Callers branch on the
// kind (through errors.Is against the Err* sentinels, or KindOf) and never on
// the message text, which is advisory.
package errors // import "github.com/pgpsig/go-rfc4880/openpgp/errors"

import (
	goerrors "errors"
	"strconv"
)

// Kind classifies a decoding or argument failure.
type Kind int

const (
	Unknown Kind = iota
	// Truncated means a field claims more bytes than remain.
	Truncated
	// InvalidHeader means a packet tag lacks its mandatory high bit.
	InvalidHeader
	// UnsupportedFormat is reported for new-format packet headers.
	UnsupportedFormat
	// UnsupportedLengthType is reported for four-octet and indeterminate
	// old-format lengths.
	UnsupportedLengthType
	UnsupportedVersion
	UnsupportedAlgorithm
	UnsupportedHashAlgorithm
	// UnsupportedEncryptedKey means the secret key material is protected by
	// a string-to-key specifier.
	UnsupportedEncryptedKey
	// MissingChecksum means a secret key packet does not end with exactly
	// two checksum octets.
	MissingChecksum
	// MissingRequiredElements means the stream ended before every requested
	// artifact was found.
	MissingRequiredElements
	// AllocationFailure means an owned buffer could not be provided.
	AllocationFailure
	// DuplicatePacket is only reported with strict routing enabled.
	DuplicatePacket
	// ChecksumMismatch is only reported when secret key checksums are
	// checked.
	ChecksumMismatch
	InvalidArgument
)

var kindNames = map[Kind]string{
	Unknown:                  "unknown error",
	Truncated:                "truncated data",
	InvalidHeader:            "invalid packet header",
	UnsupportedFormat:        "unsupported packet format",
	UnsupportedLengthType:    "unsupported length type",
	UnsupportedVersion:       "unsupported version",
	UnsupportedAlgorithm:     "unsupported public key algorithm",
	UnsupportedHashAlgorithm: "unsupported hash algorithm",
	UnsupportedEncryptedKey:  "unsupported encrypted key",
	MissingChecksum:          "missing checksum",
	MissingRequiredElements:  "missing required elements",
	AllocationFailure:        "allocation failure",
	DuplicatePacket:          "duplicate packet",
	ChecksumMismatch:         "checksum mismatch",
	InvalidArgument:          "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind " + strconv.Itoa(int(k))
}

// Unsupported reports whether k describes well-formed data that uses a
// feature this package does not implement.
func (k Kind) Unsupported() bool {
	switch k {
	case UnsupportedFormat, UnsupportedLengthType, UnsupportedVersion,
		UnsupportedAlgorithm, UnsupportedHashAlgorithm, UnsupportedEncryptedKey:
		return true
	}
	return false
}

// Error is a classified failure with optional advisory detail.
type Error struct {
	Kind   Kind
	Detail string
}

// New returns an *Error of the given kind.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "openpgp: " + e.Kind.String()
	}
	return "openpgp: " + e.Kind.String() + ": " + e.Detail
}

// Is reports whether target is a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Detail == "" && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrTruncated                = &Error{Kind: Truncated}
	ErrInvalidHeader            = &Error{Kind: InvalidHeader}
	ErrUnsupportedFormat        = &Error{Kind: UnsupportedFormat}
	ErrUnsupportedLengthType    = &Error{Kind: UnsupportedLengthType}
	ErrUnsupportedVersion       = &Error{Kind: UnsupportedVersion}
	ErrUnsupportedAlgorithm     = &Error{Kind: UnsupportedAlgorithm}
	ErrUnsupportedHashAlgorithm = &Error{Kind: UnsupportedHashAlgorithm}
	ErrUnsupportedEncryptedKey  = &Error{Kind: UnsupportedEncryptedKey}
	ErrMissingChecksum          = &Error{Kind: MissingChecksum}
	ErrMissingRequiredElements  = &Error{Kind: MissingRequiredElements}
	ErrAllocationFailure        = &Error{Kind: AllocationFailure}
	ErrDuplicatePacket          = &Error{Kind: DuplicatePacket}
	ErrChecksumMismatch         = &Error{Kind: ChecksumMismatch}
	ErrInvalidArgument          = &Error{Kind: InvalidArgument}
)

type kinder interface {
	Kind() Kind
}

// KindOf returns the Kind of the first classified error in err's chain, or
// Unknown.
func KindOf(err error) Kind {
	var e *Error
	if goerrors.As(err, &e) {
		return e.Kind
	}
	var k kinder
	if goerrors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// InvalidArgumentError indicates that the caller is in error and passed an
// incorrect value.
type InvalidArgumentError string

func (i InvalidArgumentError) Error() string {
	return "openpgp: invalid argument: " + string(i)
}

func (InvalidArgumentError) Kind() Kind { return InvalidArgument }

func (InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
