// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"io"
)

var newline = []byte{'\r', '\n'}

// WriteCanonical writes buf to w with every bare '\n' replaced by "\r\n".
// afterCR carries whether the previous write ended with '\r' so that a line
// ending split across writes is left alone. Errors from w are ignored; it is
// meant for hash.Hash writers, which never fail.
func WriteCanonical(w io.Writer, buf []byte, afterCR *bool) int {
	start := 0
	for i, c := range buf {
		if c == '\n' && !*afterCR {
			w.Write(buf[start:i])
			w.Write(newline)
			start = i + 1
		}
		*afterCR = c == '\r'
	}
	w.Write(buf[start:])
	return len(buf)
}
