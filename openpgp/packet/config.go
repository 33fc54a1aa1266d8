// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config collects a number of parameters along with sensible defaults.
// A nil *Config is valid and results in all default values.
type Config struct {
	// StrictRouting makes Parse fail with DuplicatePacket when a packet is
	// routed to a slot that is already filled. By default the first
	// matching packet wins and later ones are skipped without being parsed.
	StrictRouting bool
	// CheckKeyChecksum makes secret key parsing fail with ChecksumMismatch
	// when the trailing checksum does not match the key material. By
	// default the checksum must be present but its value is only recorded.
	CheckKeyChecksum bool
	// CheckHashTag makes verification reject a signature whose left 16 bits
	// differ from the computed digest, before the RSA operation.
	CheckHashTag bool
	// CanonicalText makes verification of canonical text signatures (type
	// 0x01) hash the message with CRLF line endings. By default the message
	// is hashed as given regardless of the signature type.
	CanonicalText bool
	// Time returns the signature creation time. If Time is nil, time.Now
	// is used.
	Time func() time.Time
	// Logger receives debug diagnostics. If nil, the logrus standard logger
	// is used.
	Logger logrus.FieldLogger
}

// Now returns the signature creation time, truncated to whole seconds as
// the packet format stores it.
func (c *Config) Now() time.Time {
	if c == nil || c.Time == nil {
		return time.Now().Truncate(time.Second)
	}
	return c.Time().Truncate(time.Second)
}

// Log returns the logger for debug diagnostics.
func (c *Config) Log() logrus.FieldLogger {
	if c == nil || c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// Strict reports whether duplicate routed packets are an error.
func (c *Config) Strict() bool {
	return c != nil && c.StrictRouting
}

// KeyChecksum reports whether a secret key checksum mismatch is an error.
func (c *Config) KeyChecksum() bool {
	return c != nil && c.CheckKeyChecksum
}

// HashTag reports whether verification compares the stored hash tag.
func (c *Config) HashTag() bool {
	return c != nil && c.CheckHashTag
}

// Canonical reports whether text signatures are verified over the message
// with canonical line endings.
func (c *Config) Canonical() bool {
	return c != nil && c.CanonicalText
}
