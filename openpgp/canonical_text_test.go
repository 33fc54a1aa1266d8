// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"testing"
)

type recordingHash struct {
	bytes.Buffer
}

func (r recordingHash) Sum(in []byte) []byte { return append(in, r.Bytes()...) }
func (r recordingHash) Size() int            { return 0 }
func (r recordingHash) BlockSize() int       { return 0 }

func testCanonicalText(t *testing.T, input []string, expected string) {
	r := &recordingHash{}
	c := NewCanonicalTextHash(r)
	for _, in := range input {
		c.Write([]byte(in))
	}
	if got := r.String(); got != expected {
		t.Errorf("input %q: got %q, want %q", input, got, expected)
	}
}

func TestCanonicalText(t *testing.T) {
	testCanonicalText(t, []string{"foo\n"}, "foo\r\n")
	testCanonicalText(t, []string{"foo"}, "foo")
	testCanonicalText(t, []string{"foo\r\n"}, "foo\r\n")
	testCanonicalText(t, []string{"foo\r\nbar"}, "foo\r\nbar")
	testCanonicalText(t, []string{"foo\r\nbar\n\n"}, "foo\r\nbar\r\n\r\n")
	testCanonicalText(t, []string{"foo\r", "\nbar"}, "foo\r\nbar")
	testCanonicalText(t, []string{"foo", "\n", "bar"}, "foo\r\nbar")
	testCanonicalText(t, []string{"\n"}, "\r\n")
}

func TestCanonicalTextReset(t *testing.T) {
	r := &recordingHash{}
	c := NewCanonicalTextHash(r)
	c.Write([]byte("a\r"))
	c.Reset()
	c.Write([]byte("\n"))
	if got := r.String(); got != "\r\n" {
		t.Errorf("got %q", got)
	}
}
