// Package transport defines the external forms of roots, proofs and results.
//
// Digests and leaf payloads are rendered as lower case hex with a 0x prefix.
// A proof path is the comma joined list of its digests.
package transport

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forestrie/go-mmrproof/mmr"
)

const hexPrefix = "0x"

func EncodeDigest(d []byte) string {
	return hexPrefix + hex.EncodeToString(d)
}

// DecodeDigest accepts hex with or without the 0x prefix.
func DecodeDigest(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), hexPrefix)
	if s == "" {
		return nil, fmt.Errorf("%w: empty digest", ErrEncoding)
	}
	d, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return d, nil
}

// EncodePayload renders a leaf payload. The empty payload is "0x".
func EncodePayload(p []byte) string {
	return hexPrefix + hex.EncodeToString(p)
}

// DecodePayload is the inverse of EncodePayload. Unlike a digest, a payload
// may be empty, so "0x" decodes to a non nil empty slice.
func DecodePayload(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), hexPrefix)
	p, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if p == nil {
		p = []byte{}
	}
	return p, nil
}

func EncodeProofPath(path [][]byte) string {
	encoded := make([]string, 0, len(path))
	for _, d := range path {
		encoded = append(encoded, EncodeDigest(d))
	}
	return strings.Join(encoded, ",")
}

// DecodeProofPath is the inverse of EncodeProofPath. The empty string is the
// empty path, which is the proof for an mmr holding a single leaf.
func DecodeProofPath(s string) ([][]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var path [][]byte
	for j, part := range strings.Split(s, ",") {
		d, err := DecodeDigest(part)
		if err != nil {
			return nil, fmt.Errorf("proof element %d: %w", j, err)
		}
		path = append(path, d)
	}
	return path, nil
}

// Result is the record produced for a proven leaf.
type Result struct {
	Root      string   `json:"root"`
	Proof     []string `json:"proof"`
	MMRSize   uint64   `json:"mmr_size"`
	LeafIndex uint64   `json:"leaf_index"`
	MMRIndex  uint64   `json:"mmr_index"`
	Leaf      string   `json:"leaf,omitempty"`
}

func NewResult(root []byte, proof mmr.Proof, mmrIndex uint64, leaf []byte) Result {
	r := Result{
		Root:      EncodeDigest(root),
		Proof:     make([]string, 0, len(proof.Path)),
		MMRSize:   proof.MMRSize,
		LeafIndex: mmr.LeafIndex(mmrIndex),
		MMRIndex:  mmrIndex,
	}
	for _, d := range proof.Path {
		r.Proof = append(r.Proof, EncodeDigest(d))
	}
	if leaf != nil {
		r.Leaf = EncodePayload(leaf)
	}
	return r
}

// DecodeProof returns the mmr.Proof carried by the result.
func (r Result) DecodeProof() (mmr.Proof, error) {
	proof := mmr.Proof{MMRSize: r.MMRSize}
	for j, s := range r.Proof {
		d, err := DecodeDigest(s)
		if err != nil {
			return mmr.Proof{}, fmt.Errorf("proof element %d: %w", j, err)
		}
		proof.Path = append(proof.Path, d)
	}
	return proof, nil
}

func (r Result) DecodeRoot() ([]byte, error) {
	return DecodeDigest(r.Root)
}

// DecodeLeaf returns the leaf payload, or nil if the result does not carry
// one. An empty payload is carried as "0x" and decodes to an empty, non nil,
// slice.
func (r Result) DecodeLeaf() ([]byte, error) {
	if r.Leaf == "" {
		return nil, nil
	}
	return DecodePayload(r.Leaf)
}

// String renders the root and the comma joined proof on separate lines.
func (r Result) String() string {
	return fmt.Sprintf("Root: %s\nProof: %s", r.Root, strings.Join(r.Proof, ","))
}

func (r Result) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func UnmarshalResult(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return r, nil
}

// VerifyResult is the record produced by verifying a claimed inclusion.
type VerifyResult struct {
	Valid    bool   `json:"valid"`
	Root     string `json:"root"`
	MMRSize  uint64 `json:"mmr_size"`
	MMRIndex uint64 `json:"mmr_index"`
}
