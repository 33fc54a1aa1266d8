// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/pgpsig/go-rfc4880/internal/keyfile"
	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	debug   bool
	maxSize int64

	strict        bool
	checkChecksum bool

	logger *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

func (o *globalOptions) loader() *keyfile.Loader {
	return &keyfile.Loader{MaxSize: o.maxSize, Logger: o.logger}
}

func (o *globalOptions) config() *packet.Config {
	return &packet.Config{
		StrictRouting:    o.strict,
		CheckKeyChecksum: o.checkChecksum,
		Logger:           o.logger,
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{
		logger: logrus.New(),
		stdout: stdout,
		stderr: stderr,
	}
	opts.logger.SetOutput(stderr)

	cmd := &cobra.Command{
		Use:           "pgpverify",
		Short:         "Verify and create detached RSA/SHA-1 OpenPGP signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				opts.logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addGlobalFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newVerifyCommand(opts),
		newSignCommand(opts),
		newKeygenCommand(opts),
	)
	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet, opts *globalOptions) {
	flags.BoolVar(&opts.debug, "debug", false, "Log parser diagnostics")
	flags.Int64Var(&opts.maxSize, "max-size", keyfile.DefaultMaxSize, "Largest file, in bytes, that will be read")
	flags.BoolVar(&opts.strict, "strict", false, "Reject input with more than one packet of a requested kind")
	flags.BoolVar(&opts.checkChecksum, "check-checksum", false, "Reject secret keys whose checksum does not match")
}
