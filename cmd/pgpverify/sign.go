// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"

	"github.com/pgpsig/go-rfc4880/internal/keyfile"
	"github.com/pgpsig/go-rfc4880/openpgp"
	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type signOptions struct {
	key    string
	output string
	armor  bool
	text   bool
}

func newSignCommand(global *globalOptions) *cobra.Command {
	var opts signOptions
	cmd := &cobra.Command{
		Use:   "sign --key SECRET MESSAGE",
		Short: "Create a detached signature over a file",
		Long: `Sign MESSAGE with the unprotected RSA secret key in SECRET. The signature
is written to MESSAGE.sig, or MESSAGE.asc with --armor, unless --output is
given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(global, opts, args[0])
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.key, "key", "k", "", "Secret key file")
	flags.StringVarP(&opts.output, "output", "o", "", "Signature file to write")
	flags.BoolVarP(&opts.armor, "armor", "a", false, "Write an ASCII armored signature")
	flags.BoolVar(&opts.text, "text", false, "Make a canonical text signature")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func runSign(global *globalOptions, opts signOptions, messagePath string) error {
	config := global.config()
	loader := global.loader()
	message, err := loader.ReadFile(messagePath)
	if err != nil {
		return err
	}
	priv, pub, err := loader.LoadPrivateKey(opts.key, config)
	if err != nil {
		return err
	}

	signer := &openpgp.Signer{Config: config}
	if opts.text {
		signer.SigType = packet.SigTypeText
	}
	sig, err := signer.Sign(message, priv)
	if err != nil {
		return errors.Wrap(err, "failed to sign")
	}
	var buf bytes.Buffer
	if err := sig.Serialize(&buf); err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = messagePath + ".sig"
		if opts.armor {
			out = messagePath + ".asc"
		}
	}
	if err := writeFile(out, keyfile.SignatureType, buf.Bytes(), opts.armor, 0o644); err != nil {
		return err
	}
	global.logger.WithFields(logrus.Fields{"key": pub.KeyIdString(), "output": out}).Info("wrote signature")
	return nil
}

func writeFile(path, blockType string, data []byte, armored bool, perm os.FileMode) error {
	if armored {
		var buf bytes.Buffer
		if err := keyfile.WriteArmored(&buf, blockType, data); err != nil {
			return errors.Wrap(err, "failed to armor output")
		}
		data = buf.Bytes()
	}
	return errors.Wrapf(os.WriteFile(path, data, perm), "failed to write %s", path)
}
