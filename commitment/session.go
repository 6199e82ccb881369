// Package commitment provides the owning handle for a single in memory mmr.
//
// A Session serializes all mutation of its mmr, optionally retains the leaf
// payloads so results can carry them, and can be snapshotted and restored.
package commitment

import (
	"bytes"
	"crypto"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-mmrproof/checkpoint"
	"github.com/forestrie/go-mmrproof/mmr"
	"github.com/forestrie/go-mmrproof/transport"
	"github.com/google/uuid"
)

type Config struct {
	// RetainLeaves keeps a copy of each payload added with Append.
	RetainLeaves bool
}

type Session struct {
	Cfg Config
	Log logger.Logger

	id     uuid.UUID
	hasher mmr.Hasher

	mu     sync.Mutex
	mmr    *mmr.MMR
	leaves [][]byte // by leaf index, nil when not retained
}

type Option func(*Session)

func WithRetainLeaves(retain bool) Option {
	return func(s *Session) {
		s.Cfg.RetainLeaves = retain
	}
}

func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession creates a session over a new, empty, mmr.
func NewSession(cfg Config, log logger.Logger, hasher mmr.Hasher, opts ...Option) (*Session, error) {
	s := &Session{
		Cfg:    cfg,
		Log:    log,
		id:     uuid.New(),
		hasher: hasher,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	s.mmr, err = mmr.New(hasher)
	if err != nil {
		return nil, err
	}
	s.Log.Debugf("session %s created, retain leaves: %v", s.id, s.Cfg.RetainLeaves)
	return s, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Hasher() mmr.Hasher { return s.hasher }

// Append adds payload as a new leaf and returns its mmr index.
func (s *Session) Append(payload []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.mmr.AddLeaf(payload)
	if err != nil {
		return 0, err
	}
	var retained []byte
	if s.Cfg.RetainLeaves {
		retained = bytes.Clone(payload)
		if retained == nil {
			retained = []byte{}
		}
	}
	s.leaves = append(s.leaves, retained)
	s.Log.Debugf("session %s: leaf %d at mmr index %d, size %d", s.id, len(s.leaves)-1, i, s.mmr.Size())
	return i, nil
}

// AppendHashed adds an already hashed leaf. The payload is never known, so
// Leaf returns ErrLeafNotRetained for it.
func (s *Session) AppendHashed(leafHash []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.mmr.Push(leafHash)
	if err != nil {
		return 0, err
	}
	s.leaves = append(s.leaves, nil)
	s.Log.Debugf("session %s: hashed leaf %d at mmr index %d, size %d", s.id, len(s.leaves)-1, i, s.mmr.Size())
	return i, nil
}

func (s *Session) Size() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mmr.Size()
}

func (s *Session) LeafCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mmr.LeafCount()
}

func (s *Session) Root() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mmr.Root()
}

// Get returns the node value at mmr index i.
func (s *Session) Get(i uint64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mmr.Get(i)
}

// Leaf returns the retained payload for the leaf at mmr index i.
func (s *Session) Leaf(i uint64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaf(i)
}

func (s *Session) leaf(i uint64) ([]byte, error) {
	if i >= s.mmr.Size() {
		return nil, fmt.Errorf("%w: index %d, mmr size %d", mmr.ErrUnknownPosition, i, s.mmr.Size())
	}
	if !mmr.IsLeaf(i) {
		return nil, fmt.Errorf("%w: index %d is not a leaf", mmr.ErrInvalidTarget, i)
	}
	payload := s.leaves[mmr.LeafIndex(i)]
	if payload == nil {
		return nil, fmt.Errorf("%w: index %d", ErrLeafNotRetained, i)
	}
	return bytes.Clone(payload), nil
}

// Prove returns the inclusion proof for the leaf at mmr index i against the
// current root.
func (s *Session) Prove(i uint64) (mmr.Proof, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mmr.InclusionProof(i)
}

// Commit returns the root, proof and, when retained, the payload for the leaf
// at mmr index i, as a single consistent record.
func (s *Session) Commit(i uint64) (transport.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.mmr.Root()
	if err != nil {
		return transport.Result{}, err
	}
	proof, err := s.mmr.InclusionProof(i)
	if err != nil {
		return transport.Result{}, err
	}
	payload, err := s.leaf(i)
	if err != nil && !errors.Is(err, ErrLeafNotRetained) {
		return transport.Result{}, err
	}
	s.Log.Infof("session %s: committed mmr index %d at size %d", s.id, i, proof.MMRSize)
	return transport.NewResult(root, proof, i, payload), nil
}

// State returns the checkpoint state for the current size. The timestamp is
// taken from now.
func (s *Session) State(now time.Time) (checkpoint.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.mmr.Root()
	if err != nil {
		return checkpoint.State{}, err
	}
	return checkpoint.State{
		MMRSize:   s.mmr.Size(),
		Root:      root,
		Timestamp: now.UnixMilli(),
		Hasher:    hasherName(s.hasher),
	}, nil
}

// VerifyCheckpoint checks a signed checkpoint against this session's mmr.
func (s *Session) VerifyCheckpoint(data []byte, publicKey crypto.PublicKey, external []byte) (checkpoint.State, error) {
	codec, err := checkpoint.NewCodec()
	if err != nil {
		return checkpoint.State{}, err
	}
	signed, state, err := checkpoint.DecodeSigned(codec, data)
	if err != nil {
		return checkpoint.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkpoint.VerifyMMR(codec, publicKey, signed, state, s.mmr, external); err != nil {
		return checkpoint.State{}, err
	}
	return state, nil
}

func hasherName(hasher mmr.Hasher) string {
	if named, ok := hasher.(interface{ Name() string }); ok {
		return named.Name()
	}
	return ""
}
