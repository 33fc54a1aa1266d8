// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	goerrors "errors"
	"fmt"
	"testing"
)

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("signature: hashed subpackets: %w", New(Truncated, "need 12 bytes, have 3"))
	if !goerrors.Is(err, ErrTruncated) {
		t.Errorf("wrapped truncation does not match ErrTruncated: %v", err)
	}
	if goerrors.Is(err, ErrInvalidHeader) {
		t.Errorf("truncation matched ErrInvalidHeader")
	}
	if k := KindOf(err); k != Truncated {
		t.Errorf("KindOf = %v, want %v", k, Truncated)
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if k := KindOf(goerrors.New("boom")); k != Unknown {
		t.Errorf("KindOf = %v, want Unknown", k)
	}
	if k := KindOf(nil); k != Unknown {
		t.Errorf("KindOf(nil) = %v, want Unknown", k)
	}
}

func TestInvalidArgumentError(t *testing.T) {
	err := fmt.Errorf("serialize: %w", InvalidArgumentError("packet too long"))
	if !goerrors.Is(err, ErrInvalidArgument) {
		t.Errorf("InvalidArgumentError does not match ErrInvalidArgument")
	}
	if k := KindOf(err); k != InvalidArgument {
		t.Errorf("KindOf = %v, want InvalidArgument", k)
	}
}

func TestUnsupportedKinds(t *testing.T) {
	for _, k := range []Kind{UnsupportedFormat, UnsupportedVersion, UnsupportedEncryptedKey} {
		if !k.Unsupported() {
			t.Errorf("%v should be unsupported", k)
		}
	}
	for _, k := range []Kind{Truncated, InvalidHeader, MissingRequiredElements} {
		if k.Unsupported() {
			t.Errorf("%v should not be unsupported", k)
		}
	}
}

func TestErrorString(t *testing.T) {
	if got, want := ErrMissingChecksum.Error(), "openpgp: missing checksum"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := New(UnsupportedVersion, "key version 3").Error(), "openpgp: unsupported version: key version 3"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
