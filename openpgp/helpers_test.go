// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/pgpsig/go-rfc4880/openpgp/packet"
	"github.com/sirupsen/logrus"
)

var testCreationTime = time.Unix(1700000000, 0)

type testKeyMaterial struct {
	rsa       *rsa.PrivateKey
	secret    []byte // old-format secret key packet
	public    []byte // old-format public key packet
	priv      *packet.PrivateKey
	pub       *packet.PublicKey
	signature []byte // detached signature over testMessage
}

var testMessage = []byte("hello world\n")

var (
	testKeysOnce sync.Once
	testKeys     testKeyMaterial
)

func keys(t testing.TB) *testKeyMaterial {
	t.Helper()
	testKeysOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		var secret bytes.Buffer
		if err := packet.SerializeRSASecretKey(&secret, testCreationTime, k); err != nil {
			panic(err)
		}
		priv, pub, err := packet.ReadPrivateKey(secret.Bytes(), nil)
		if err != nil {
			panic(err)
		}
		var public bytes.Buffer
		if err := pub.Serialize(&public); err != nil {
			panic(err)
		}
		var sig bytes.Buffer
		if err := DetachSign(&sig, priv, testMessage, &packet.Config{Time: func() time.Time { return testCreationTime }}); err != nil {
			panic(err)
		}
		testKeys = testKeyMaterial{
			rsa:       k,
			secret:    secret.Bytes(),
			public:    public.Bytes(),
			priv:      priv,
			pub:       pub,
			signature: sig.Bytes(),
		}
	})
	return &testKeys
}

func flip(b []byte, i int) []byte {
	out := append([]byte(nil), b...)
	out[i] ^= 0x01
	return out
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	return l
}
