// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/pgpsig/go-rfc4880/internal/keyfile"
	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type keygenOptions struct {
	bits   int
	secret string
	public string
	armor  bool
}

func newKeygenCommand(global *globalOptions) *cobra.Command {
	var opts keygenOptions
	cmd := &cobra.Command{
		Use:   "keygen --secret SECRET --public PUBKEY",
		Short: "Generate an unprotected RSA signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(global, opts)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&opts.bits, "bits", 2048, "RSA modulus size")
	flags.StringVar(&opts.secret, "secret", "", "Secret key file to write")
	flags.StringVar(&opts.public, "public", "", "Public key file to write")
	flags.BoolVarP(&opts.armor, "armor", "a", false, "Write ASCII armored keys")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("public")
	return cmd
}

func runKeygen(global *globalOptions, opts keygenOptions) error {
	key, err := rsa.GenerateKey(rand.Reader, opts.bits)
	if err != nil {
		return errors.Wrap(err, "failed to generate key")
	}
	config := global.config()

	var secret bytes.Buffer
	if err := packet.SerializeRSASecretKey(&secret, config.Now(), key); err != nil {
		return err
	}
	_, pub, err := packet.ReadPrivateKey(secret.Bytes(), config)
	if err != nil {
		return err
	}
	var public bytes.Buffer
	if err := pub.Serialize(&public); err != nil {
		return err
	}

	if err := writeFile(opts.secret, keyfile.PrivateKeyType, secret.Bytes(), opts.armor, 0o600); err != nil {
		return err
	}
	if err := writeFile(opts.public, keyfile.PublicKeyType, public.Bytes(), opts.armor, 0o644); err != nil {
		return err
	}
	global.logger.WithFields(logrus.Fields{
		"key":         pub.KeyIdString(),
		"fingerprint": fmt.Sprintf("%X", pub.Fingerprint[:]),
		"bits":        pub.BitLength(),
	}).Info("generated key")
	return nil
}
