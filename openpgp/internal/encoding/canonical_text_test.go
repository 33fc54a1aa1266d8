// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"bytes"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func canonical(chunks ...string) string {
	var buf bytes.Buffer
	var afterCR bool
	for _, c := range chunks {
		WriteCanonical(&buf, []byte(c), &afterCR)
	}
	return buf.String()
}

func TestWriteCanonical(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"foo\n"}, "foo\r\n"},
		{[]string{"foo"}, "foo"},
		{[]string{"foo\r\n"}, "foo\r\n"},
		{[]string{"foo\r\nbar"}, "foo\r\nbar"},
		{[]string{"foo\r\nbar\n\n"}, "foo\r\nbar\r\n\r\n"},
		{[]string{"foo\r", "\nbar\n"}, "foo\r\nbar\r\n"},
		{[]string{"foo\rbar"}, "foo\rbar"},
		{[]string{"", "\n"}, "\r\n"},
	}
	for _, test := range tests {
		if got := canonical(test.in...); got != test.want {
			t.Errorf("%q: got %q, want %q", test.in, got, test.want)
		}
	}
}

func TestWriteCanonicalChunking(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune("ab\r\n")), 0, 64, -1).Draw(t, "text")
		split := rapid.IntRange(0, len(text)).Draw(t, "split")
		whole := canonical(text)
		if got := canonical(text[:split], text[split:]); got != whole {
			t.Fatalf("split at %d: got %q, want %q", split, got, whole)
		}
		if strings.Count(whole, "\n") != strings.Count(whole, "\r\n") {
			t.Fatalf("bare newline left in %q", whole)
		}
	})
}
