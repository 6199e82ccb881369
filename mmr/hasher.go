package mmr

// Hasher is the hashing strategy for an mmr. The same Hasher must be used to
// build, prove and verify, otherwise every proof fails.
//
// Implementations must be deterministic and must return digests of exactly
// Size() bytes from both methods.
type Hasher interface {
	// Merge returns the digest of the interior node whose left child has
	// digest left and whose right child has digest right. Order matters.
	Merge(left, right []byte) []byte
	// HashLeaf returns the leaf digest for an arbitrary payload.
	HashLeaf(payload []byte) []byte
	// Size is the digest width in bytes.
	Size() int
}
