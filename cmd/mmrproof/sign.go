package main

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/forestrie/go-mmrproof/checkpoint"
	"github.com/forestrie/go-mmrproof/commitment"
	"github.com/forestrie/go-mmrproof/mmrtesting"
	"github.com/spf13/cobra"
	"github.com/veraison/go-cose"
)

var ErrKeyFormat = errors.New("expected a PEM encoded EC private key")

type signArgs struct {
	leaves  uint64
	keyPath string
	kid     string
}

func newSignCmd(a *app) *cobra.Command {
	var args signArgs
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "push leaves and print a signed checkpoint of the resulting root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := readECKey(args.keyPath)
			if err != nil {
				return err
			}
			data, err := a.sign(args, key, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, "0x"+hex.EncodeToString(data))
			return err
		},
	}
	cmd.Flags().Uint64Var(&args.leaves, "leaves", 100, "number of leaves to push")
	cmd.Flags().StringVar(&args.keyPath, "key", "", "PEM encoded P-256 private key")
	cmd.Flags().StringVar(&args.kid, "kid", "mmrproof", "key identifier for the protected header")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func (a *app) sign(args signArgs, key *ecdsa.PrivateKey, now time.Time) ([]byte, error) {
	s, err := commitment.NewSession(commitment.Config{}, a.log, a.hasher)
	if err != nil {
		return nil, err
	}
	for iLeaf := uint64(0); iLeaf < args.leaves; iLeaf++ {
		if _, err := s.Append(mmrtesting.IndexedLeaf(iLeaf)); err != nil {
			return nil, err
		}
	}
	state, err := s.State(now)
	if err != nil {
		return nil, err
	}

	coseSigner, err := cose.NewSigner(cose.AlgorithmES256, key)
	if err != nil {
		return nil, err
	}
	codec, err := checkpoint.NewCodec()
	if err != nil {
		return nil, err
	}
	data, err := checkpoint.NewSigner(a.cfg.Issuer, codec).Sign1(coseSigner, args.kid, state, nil)
	if err != nil {
		return nil, err
	}
	// The signer detaches the root, so check against the session here
	if _, err := s.VerifyCheckpoint(data, &key.PublicKey, nil); err != nil {
		return nil, err
	}
	a.log.Infof("signed checkpoint for size %d, issuer %s", state.MMRSize, a.cfg.Issuer)
	return data, nil
}

func readECKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrKeyFormat
	}
	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, ErrKeyFormat
	}
	return key, nil
}
