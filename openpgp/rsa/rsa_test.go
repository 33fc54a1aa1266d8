// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"bytes"
	"crypto"
	"crypto/rand"
	gorsa "crypto/rsa"
	"crypto/sha1"
	"math/big"
	"sync"
	"testing"
)

var (
	testKeyOnce sync.Once
	testKey     *gorsa.PrivateKey
)

func rsaTestKey(t *testing.T) *gorsa.PrivateKey {
	testKeyOnce.Do(func() {
		var err error
		if testKey, err = gorsa.GenerateKey(rand.Reader, 2048); err != nil {
			panic(err)
		}
	})
	return testKey
}

func TestSignMatchesCryptoRSA(t *testing.T) {
	key := rsaTestKey(t)
	digest := sha1.Sum([]byte("hello world"))

	got, err := PKCS1v15.Sign(key.N.Bytes(), key.D.Bytes(), crypto.SHA1, digest[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	want, err := gorsa.SignPKCS1v15(nil, key, crypto.SHA1, digest[:])
	if err != nil {
		t.Fatalf("SignPKCS1v15: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("signature mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestVerify(t *testing.T) {
	key := rsaTestKey(t)
	n := key.N.Bytes()
	e := big.NewInt(int64(key.E)).Bytes()
	digest := sha1.Sum([]byte("hello world"))
	sig, err := gorsa.SignPKCS1v15(nil, key, crypto.SHA1, digest[:])
	if err != nil {
		t.Fatal(err)
	}

	if !PKCS1v15.Verify(n, e, crypto.SHA1, digest[:], sig) {
		t.Errorf("valid signature rejected")
	}

	bad := append([]byte(nil), digest[:]...)
	bad[0] ^= 1
	if PKCS1v15.Verify(n, e, crypto.SHA1, bad, sig) {
		t.Errorf("signature accepted for a different digest")
	}

	badSig := append([]byte(nil), sig...)
	badSig[len(badSig)/2] ^= 0x80
	if PKCS1v15.Verify(n, e, crypto.SHA1, digest[:], badSig) {
		t.Errorf("corrupted signature accepted")
	}
}

func TestVerifyStrippedLeadingZeros(t *testing.T) {
	key := rsaTestKey(t)
	n := key.N.Bytes()
	e := big.NewInt(int64(key.E)).Bytes()
	// Search for a message whose signature starts with a zero octet, as
	// OpenPGP stores it without that octet.
	for i := 0; i < 2000; i++ {
		digest := sha1.Sum([]byte{byte(i), byte(i >> 8)})
		sig, err := gorsa.SignPKCS1v15(nil, key, crypto.SHA1, digest[:])
		if err != nil {
			t.Fatal(err)
		}
		if sig[0] != 0 {
			continue
		}
		if !PKCS1v15.Verify(n, e, crypto.SHA1, digest[:], sig[1:]) {
			t.Errorf("stripped signature rejected")
		}
		return
	}
	t.Skip("no signature with a leading zero octet found")
}

func TestVerifyHugeExponent(t *testing.T) {
	key := rsaTestKey(t)
	digest := sha1.Sum(nil)
	e := bytes.Repeat([]byte{0xff}, 9)
	if PKCS1v15.Verify(key.N.Bytes(), e, crypto.SHA1, digest[:], make([]byte, 256)) {
		t.Errorf("signature accepted with an unusable exponent")
	}
}

func TestSignRejectsShortKey(t *testing.T) {
	digest := sha1.Sum(nil)
	if _, err := PKCS1v15.Sign([]byte{0xff, 0xff}, []byte{1}, crypto.SHA1, digest[:]); err == nil {
		t.Errorf("signing with a 16-bit modulus succeeded")
	}
}
