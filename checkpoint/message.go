package checkpoint

import (
	"crypto"
	"fmt"
	"reflect"

	"github.com/veraison/go-cose"
)

// Sign1Message extends the go-cose Sign1Message with the header accessors
// and verification helpers needed for checkpoints.
type Sign1Message struct {
	*cose.Sign1Message
}

// DecodeSign1 decodes a cbor encoded COSE Sign1 message.
func DecodeSign1(data []byte) (*Sign1Message, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(data); err != nil {
		return nil, err
	}
	return &Sign1Message{Sign1Message: &msg}, nil
}

// KidFromProtectedHeader gets the kid from the protected header
func (m *Sign1Message) KidFromProtectedHeader() (string, error) {
	kid, ok := m.Headers.Protected[cose.HeaderLabelKeyID]
	if !ok {
		return "", ErrNoKid
	}
	kidBytes, ok := kid.([]byte)
	if !ok {
		return "", fmt.Errorf("%w: kid is %s, expected []byte", ErrNoKid, reflect.TypeOf(kid))
	}
	return string(kidBytes), nil
}

type PublicKeyProvider interface {
	PublicKey() (crypto.PublicKey, cose.Algorithm, error)
}

// VerifyWithProvider verifies the message with the key and algorithm supplied
// by the provider.
func (m *Sign1Message) VerifyWithProvider(provider PublicKeyProvider, external []byte) error {
	publicKey, algorithm, err := provider.PublicKey()
	if err != nil {
		return err
	}

	verifier, err := cose.NewVerifier(algorithm, publicKey)
	if err != nil {
		return err
	}
	return m.Verify(external, verifier)
}

// KeyProvider supplies a known public key, taking the algorithm from the
// protected header of the message.
type KeyProvider struct {
	msg       *Sign1Message
	publicKey crypto.PublicKey
}

func NewKeyProvider(msg *Sign1Message, publicKey crypto.PublicKey) *KeyProvider {
	return &KeyProvider{msg: msg, publicKey: publicKey}
}

func (p *KeyProvider) PublicKey() (crypto.PublicKey, cose.Algorithm, error) {
	algorithm, err := p.msg.Headers.Protected.Algorithm()
	if err != nil {
		return nil, cose.Algorithm(0), err
	}
	return p.publicKey, algorithm, nil
}
