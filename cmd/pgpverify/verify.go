// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/pgpsig/go-rfc4880/openpgp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// errVerificationFailed is returned when the signature does not match. The
// result has already been reported on stderr.
var errVerificationFailed = errors.New("verification failed")

type verifyOptions struct {
	checkHashTag bool
	text         bool
}

func newVerifyCommand(global *globalOptions) *cobra.Command {
	var opts verifyOptions
	cmd := &cobra.Command{
		Use:   "verify MESSAGE SIGNATURE PUBKEY",
		Short: "Check a detached signature over a file",
		Long: `Check that SIGNATURE is a valid signature over MESSAGE by the RSA key in
PUBKEY. SIGNATURE and PUBKEY may be binary or ASCII armored.

Prints VERIFIED or FAILED on stderr and exits non-zero unless verified.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(global, opts, args[0], args[1], args[2])
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.checkHashTag, "check-hash-tag", false, "Reject signatures whose stored hash prefix does not match")
	flags.BoolVar(&opts.text, "text", false, "Hash text signatures with canonical line endings")
	return cmd
}

func runVerify(global *globalOptions, opts verifyOptions, messagePath, signaturePath, publicKeyPath string) error {
	config := global.config()
	config.CheckHashTag = opts.checkHashTag
	config.CanonicalText = opts.text

	loader := global.loader()
	message, err := loader.ReadFile(messagePath)
	if err != nil {
		return err
	}
	sig, err := loader.LoadSignature(signaturePath, config)
	if err != nil {
		return err
	}
	pub, err := loader.LoadPublicKey(publicKeyPath, config)
	if err != nil {
		return err
	}

	fields := logrus.Fields{"key": pub.KeyIdString(), "type": sig.SigType}
	if sig.IssuerKeyId != nil {
		fields["issuer"] = fmt.Sprintf("%016X", *sig.IssuerKeyId)
	}
	global.logger.WithFields(fields).Debug("verifying signature")

	v := &openpgp.Verifier{Config: config}
	if !v.Verify(message, pub, sig) {
		fmt.Fprintln(global.stderr, "FAILED")
		return errVerificationFailed
	}
	fmt.Fprintln(global.stderr, "VERIFIED")
	return nil
}
