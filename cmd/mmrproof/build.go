package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/forestrie/go-mmrproof/commitment"
	"github.com/forestrie/go-mmrproof/mmr"
	"github.com/forestrie/go-mmrproof/mmrtesting"
	"github.com/forestrie/go-mmrproof/transport"
	"github.com/spf13/cobra"
)

var ErrNodeProof = errors.New("node proofs not supported")

type buildArgs struct {
	leaves   uint64
	target   uint64
	text     bool
	checkAll bool
}

func newBuildCmd(a *app) *cobra.Command {
	var args buildArgs
	cmd := &cobra.Command{
		Use:   "build",
		Short: "push leaves and prove the target leaf as soon as it is added",
		Long: `Pushes --leaves 32 byte leaves, leaf i having its first byte set to i.
When the leaf at mmr index --target is added, its proof against the root at
that moment is printed. The target must be the mmr index of a leaf.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.build(cmd.Context(), args)
			if err != nil {
				return err
			}
			return a.writeResult(r, args.text)
		},
	}
	cmd.Flags().Uint64Var(&args.leaves, "leaves", 100, "number of leaves to push")
	cmd.Flags().Uint64Var(&args.target, "target", 63, "mmr index of the leaf to prove")
	cmd.Flags().BoolVar(&args.text, "text", false, "print the root and proof as text rather than json")
	cmd.Flags().BoolVar(&args.checkAll, "check-all", false, "also prove and verify every leaf added before the target")
	return cmd
}

func (a *app) build(ctx context.Context, args buildArgs) (transport.Result, error) {
	s, err := commitment.NewSession(commitment.Config{RetainLeaves: true}, a.log, a.hasher)
	if err != nil {
		return transport.Result{}, err
	}

	for iLeaf := uint64(0); iLeaf < args.leaves; iLeaf++ {
		i, err := s.Append(mmrtesting.IndexedLeaf(iLeaf))
		if err != nil {
			return transport.Result{}, err
		}
		if i != args.target {
			continue
		}

		r, err := s.Commit(i)
		if err != nil {
			return transport.Result{}, err
		}
		if err := a.selfVerify(r); err != nil {
			return transport.Result{}, err
		}
		a.log.Infof("proof for leaf %d (mmr index %d) verified, leaf %s", iLeaf, i, r.Leaf)

		if args.checkAll {
			if err := a.checkAll(ctx, s); err != nil {
				return transport.Result{}, err
			}
		}
		return r, nil
	}
	return transport.Result{}, fmt.Errorf("%w: mmr index %d is not one of the %d leaves", ErrNodeProof, args.target, args.leaves)
}

func (a *app) selfVerify(r transport.Result) error {
	ok, err := verifyResult(a.hasher, r)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("proof for mmr index %d did not verify", r.MMRIndex)
	}
	return nil
}

// checkAll proves every leaf in the session against the current root and
// verifies the proofs concurrently.
func (a *app) checkAll(ctx context.Context, s *commitment.Session) error {
	root, err := s.Root()
	if err != nil {
		return err
	}
	claims := make([]commitment.Claim, 0, s.LeafCount())
	for iLeaf := uint64(0); iLeaf < s.LeafCount(); iLeaf++ {
		i := mmr.MMRIndex(iLeaf)
		proof, err := s.Prove(i)
		if err != nil {
			return err
		}
		leaf, err := s.Leaf(i)
		if err != nil {
			return err
		}
		claims = append(claims, commitment.Claim{MMRIndex: i, Leaf: leaf, Proof: proof})
	}
	results, err := commitment.VerifyAll(ctx, a.hasher, root, claims, a.cfg.Concurrency)
	if err != nil {
		return err
	}
	for j, ok := range results {
		if !ok {
			return fmt.Errorf("proof for mmr index %d did not verify", claims[j].MMRIndex)
		}
	}
	a.log.Infof("verified %d leaves at size %d", len(results), s.Size())
	return nil
}

func (a *app) writeResult(r transport.Result, text bool) error {
	if text {
		_, err := fmt.Fprintln(a.out, r.String())
		return err
	}
	data, err := r.MarshalIndent()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}
