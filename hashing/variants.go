package hashing

import (
	"fmt"
	"hash"
	"slices"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

const (
	DigestSize = 32

	NameBlake2b    = "blake2b"
	NameBlake2b256 = "blake2b-256"
	NameSHA256     = "sha256"
	NameKeccak256  = "keccak256"
	NameBlake3     = "blake3"
)

// Blake2b is BLAKE2b-512 truncated to 32 bytes. This is the default.
func Blake2b() *Hasher {
	return New(NameBlake2b, func() hash.Hash {
		h, _ := blake2b.New512(nil) // only fails for oversized keys
		return h
	}, DigestSize)
}

// Blake2b256 is the native 256 bit BLAKE2b.
func Blake2b256() *Hasher {
	return New(NameBlake2b256, func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	}, DigestSize)
}

func SHA256() *Hasher {
	return New(NameSHA256, sha256simd.New, DigestSize)
}

// Keccak256 is the pre standard (ethereum) keccak, not SHA3-256.
func Keccak256() *Hasher {
	return New(NameKeccak256, sha3.NewLegacyKeccak256, DigestSize)
}

func Blake3() *Hasher {
	return New(NameBlake3, func() hash.Hash {
		return blake3.New(DigestSize, nil)
	}, DigestSize)
}

var registry = map[string]func() *Hasher{
	NameBlake2b:    Blake2b,
	NameBlake2b256: Blake2b256,
	NameSHA256:     SHA256,
	NameKeccak256:  Keccak256,
	NameBlake3:     Blake3,
}

// ByName returns the hasher registered as name. The empty name selects the
// default, Blake2b.
func ByName(name string) (*Hasher, error) {
	if name == "" {
		return Blake2b(), nil
	}
	newHasher, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q, known hashers are %v", ErrUnknownHasher, name, Names())
	}
	return newHasher(), nil
}

// Names lists the registered hasher names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
