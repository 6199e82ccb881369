package commitment

import (
	"context"
	"fmt"

	"github.com/forestrie/go-mmrproof/mmr"
	"golang.org/x/sync/errgroup"
)

// Claim is a leaf payload claimed to be at MMRIndex, with its proof.
type Claim struct {
	MMRIndex uint64
	Leaf     []byte
	Proof    mmr.Proof
}

// VerifyAll verifies each claim against root, at most concurrency at a time
// (no limit if concurrency < 1). The result for each claim is at the same
// position as the claim. The first malformed proof stops the remaining work
// and is returned.
func VerifyAll(ctx context.Context, hasher mmr.Hasher, root []byte, claims []Claim, concurrency int) ([]bool, error) {
	results := make([]bool, len(claims))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for j, claim := range claims {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := mmr.VerifyInclusion(hasher, root, claim.Proof, claim.MMRIndex, claim.Leaf)
			if err != nil {
				return fmt.Errorf("claim %d: %w", j, err)
			}
			results[j] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
