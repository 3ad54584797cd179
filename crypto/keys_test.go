package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPrivateKeyRoundTrip(t *testing.T) {
	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	restored, err := PrivateKeyFromBytes(key.Bytes())
	if err != nil {
		t.Fatalf("restore key: %v", err)
	}
	if restored.PubKey().Address().String() != key.PubKey().Address().String() {
		t.Fatalf("restored key derives a different principal")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	addr := key.PubKey().Address()
	decoded, err := DecodeAddress(addr.String())
	if err != nil {
		t.Fatalf("decode address: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), addr.Bytes()) {
		t.Fatalf("decoded principal does not match original")
	}
}

func TestDecodeAddressRejectsGarbage(t *testing.T) {
	if _, err := DecodeAddress("not-bech32"); err == nil {
		t.Fatalf("expected malformed address rejection")
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "node_key")

	key, err := LoadOrGenerateKey(path)
	if err != nil {
		t.Fatalf("generate node key: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected key file to be written: %v", err)
	}

	again, err := LoadOrGenerateKey(path)
	if err != nil {
		t.Fatalf("reload node key: %v", err)
	}
	if again.PubKey().Address().String() != key.PubKey().Address().String() {
		t.Fatalf("reload returned a different identity")
	}
}

func TestLoadOrGenerateKeyRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_key")
	if err := os.WriteFile(path, []byte("zz-not-hex"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	if _, err := LoadOrGenerateKey(path); err == nil {
		t.Fatalf("expected malformed key file rejection")
	}
}
