// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pgpverify checks and creates detached RSA/SHA-1 OpenPGP signatures.
//
//	pgpverify verify MESSAGE SIGNATURE PUBKEY
//	pgpverify sign --key SECRET MESSAGE
//	pgpverify keygen --secret SECRET --public PUBKEY
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if err != errVerificationFailed {
			logrus.New().WithError(err).Error("pgpverify failed")
		}
		os.Exit(1)
	}
}
