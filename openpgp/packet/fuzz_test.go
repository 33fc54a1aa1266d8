//go:build go1.18
// +build go1.18

package packet

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func FuzzParse(f *testing.F) {
	f.Add(fromHex("980e" + "04" + "4cc349a8" + "01" + "0008c5" + "0011010001"))
	f.Add(fromHex("880e" + "040001020000" + "0000" + "abcd" + "0009" + "0123"))
	f.Add(fromHex("b403616263"))
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	config := &Config{Logger: logger}
	f.Fuzz(func(t *testing.T, data []byte) {
		// Exact capacity so reads past the end panic.
		data = data[:len(data):len(data)]
		_, _ = Parse(data, Request{PublicKey: true, PrivateKey: true, Signature: true}, config)
		_, _, _ = ReadPacket(data)
	})
}
