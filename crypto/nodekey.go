package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrGenerateKey returns the node identity key stored at path, generating
// and persisting a fresh key when none exists yet. The key file holds the
// hex-encoded private key and is written with owner-only permissions.
func LoadOrGenerateKey(path string) (*PrivateKey, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("crypto: empty key file path")
	}
	data, err := os.ReadFile(path)
	if err == nil {
		raw, decErr := hex.DecodeString(strings.TrimSpace(string(data)))
		if decErr != nil {
			return nil, fmt.Errorf("crypto: malformed key file %s: %w", path, decErr)
		}
		return PrivateKeyFromBytes(raw)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	key, err := GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	encoded := hex.EncodeToString(key.Bytes())
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
