package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/forestrie/go-mmrproof/mmr"
	"github.com/forestrie/go-mmrproof/transport"
	"github.com/spf13/cobra"
)

type verifyArgs struct {
	resultPath string
	root       string
	proof      string
	mmrSize    uint64
	mmrIndex   uint64
	leaf       string
}

func newVerifyCmd(a *app) *cobra.Command {
	var args verifyArgs
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a leaf inclusion proof",
		Long: `Verifies either a json result, as produced by build, or a claim given by
flags. A proof that does not reproduce the root is reported as invalid, a
proof with the wrong shape for the mmr size is an error.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := args.result(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ok, err := verifyResult(a.hasher, r)
			if err != nil {
				return err
			}
			a.log.Debugf("mmr index %d valid: %v", r.MMRIndex, ok)

			data, err := json.MarshalIndent(transport.VerifyResult{
				Valid:    ok,
				Root:     r.Root,
				MMRSize:  r.MMRSize,
				MMRIndex: r.MMRIndex,
			}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&args.resultPath, "result", "", "json result file, - for stdin")
	cmd.Flags().StringVar(&args.root, "root", "", "0x hex root")
	cmd.Flags().StringVar(&args.proof, "proof", "", "comma separated 0x hex proof elements")
	cmd.Flags().Uint64Var(&args.mmrSize, "mmr-size", 0, "mmr size the proof was made for")
	cmd.Flags().Uint64Var(&args.mmrIndex, "mmr-index", 0, "mmr index of the leaf")
	cmd.Flags().StringVar(&args.leaf, "leaf", "", "0x hex leaf payload")
	return cmd
}

func (args verifyArgs) result(stdin io.Reader) (transport.Result, error) {
	if args.resultPath == "" {
		path, err := transport.DecodeProofPath(args.proof)
		if err != nil {
			return transport.Result{}, err
		}
		r := transport.NewResult(nil, mmr.Proof{MMRSize: args.mmrSize, Path: path}, args.mmrIndex, nil)
		r.Root = args.root
		r.Leaf = args.leaf
		return r, nil
	}

	var data []byte
	var err error
	if args.resultPath == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args.resultPath)
	}
	if err != nil {
		return transport.Result{}, err
	}
	return transport.UnmarshalResult(data)
}

func verifyResult(hasher mmr.Hasher, r transport.Result) (bool, error) {
	root, err := r.DecodeRoot()
	if err != nil {
		return false, err
	}
	proof, err := r.DecodeProof()
	if err != nil {
		return false, err
	}
	leaf, err := r.DecodeLeaf()
	if err != nil {
		return false, err
	}
	if leaf == nil {
		return false, fmt.Errorf("%w: the leaf payload is required", transport.ErrEncoding)
	}
	return mmr.VerifyInclusion(hasher, root, proof, r.MMRIndex, leaf)
}
