package commitment

import (
	"bytes"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-mmrproof/mmr"
	"github.com/google/uuid"
)

const snapshotVersion = 1

// snapshot is the encoded form of a session. Only the leaf hashes are kept,
// the interior nodes are recomputed on restore and checked against Root.
type snapshot struct {
	Version uint32   `cbor:"1,keyasint"`
	ID      []byte   `cbor:"2,keyasint"`
	Hasher  string   `cbor:"3,keyasint"`
	Leaves  [][]byte `cbor:"4,keyasint"`
	// Payloads holds the retained payloads by leaf index.
	Payloads map[uint64][]byte `cbor:"5,keyasint"`
	Root     []byte            `cbor:"6,keyasint"`
}

func newSnapshotCodec() (dtcbor.CBORCodec, error) {
	return dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(),
	)
}

// Snapshot encodes the session as deterministic CBOR.
func (s *Session) Snapshot() ([]byte, error) {
	codec, err := newSnapshotCodec()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	leaves, err := s.mmr.Leaves()
	if err != nil {
		return nil, err
	}
	snap := snapshot{
		Version:  snapshotVersion,
		ID:       s.id[:],
		Hasher:   hasherName(s.hasher),
		Leaves:   leaves,
		Payloads: map[uint64][]byte{},
	}
	for iLeaf, payload := range s.leaves {
		if payload != nil {
			snap.Payloads[uint64(iLeaf)] = payload
		}
	}
	if s.mmr.Size() > 0 {
		if snap.Root, err = s.mmr.Root(); err != nil {
			return nil, err
		}
	}
	return codec.MarshalCBOR(snap)
}

// RestoreSession rebuilds a session from data produced by Snapshot. The
// hasher must be the one the snapshot was made with, otherwise the replayed
// root will not match.
func RestoreSession(cfg Config, log logger.Logger, hasher mmr.Hasher, data []byte, opts ...Option) (*Session, error) {
	codec, err := newSnapshotCodec()
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err = codec.UnmarshalInto(data, &snap); err != nil {
		return nil, err
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	if name := hasherName(hasher); snap.Hasher != "" && name != "" && name != snap.Hasher {
		return nil, fmt.Errorf("%w: made with %s, restoring with %s", ErrSnapshotMismatch, snap.Hasher, name)
	}
	id, err := uuid.FromBytes(snap.ID)
	if err != nil {
		return nil, err
	}

	s, err := NewSession(cfg, log, hasher, append([]Option{WithID(id)}, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, leafHash := range snap.Leaves {
		if _, err := s.mmr.Push(leafHash); err != nil {
			return nil, err
		}
	}
	s.leaves = make([][]byte, len(snap.Leaves))
	for iLeaf, payload := range snap.Payloads {
		if iLeaf >= uint64(len(s.leaves)) {
			return nil, fmt.Errorf("%w: payload for leaf %d of %d", ErrSnapshotMismatch, iLeaf, len(s.leaves))
		}
		if payload == nil {
			payload = []byte{}
		}
		s.leaves[iLeaf] = payload
	}

	if len(snap.Leaves) == 0 {
		return s, nil
	}
	root, err := s.mmr.Root()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(root, snap.Root) {
		return nil, ErrSnapshotMismatch
	}
	s.Log.Infof("session %s restored, %d leaves, size %d", s.id, len(snap.Leaves), s.mmr.Size())
	return s, nil
}
