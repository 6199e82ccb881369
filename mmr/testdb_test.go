package mmr

import (
	"encoding/binary"
	"testing"

	"github.com/forestrie/go-mmrproof/hashing"
)

// testDb is a NodeStore that also allows nodes to be placed directly, so that
// reference trees can be built by hand.
type testDb struct {
	t     *testing.T
	store map[uint64][]byte
	next  uint64
}

func NewTestDb(t *testing.T) *testDb {
	return &testDb{t: t, store: make(map[uint64][]byte)}
}

// NewCanonicalTestDB populates a test data base with mmr size = 39 and where
// the leaf values are the hashes of the leaf mmr indices. The tree is
// constructed mandraulicly so is suitable for tests which cover the tree
// building itself.
//
// Any valid mmr size < 39 is also contained in this MMR. So tests that want
// to work with smaller trees can just use this one but pretend its only however
// big they need.
func NewCanonicalTestDB(t *testing.T) *testDb {

	// 4                         30
	//
	//
	// 3              14                       29
	//              /    \
	//           /          \
	// 2        6            13           21             28                37
	//        /   \        /    \
	// 1     2     5      9     12     17     20     24       27       33      36
	//      / \   / \    / \   /  \   /  \
	// 0   0   1 3   4  7   8 10  11 15  16 18  19 22  23   25   26  31  32   34  35   38
	// .   0 . 1 2 . 3 .4 . 5  6 . 7  8 . 9 10  11 12  13   14   15  16  17   18  19   20

	db := NewTestDb(t)

	// height 0 (the leaves)
	for _, i := range []uint64{
		0, 1, 3, 4, 7, 8, 10, 11, 15, 16, 18, 19, 22, 23, 25, 26, 31, 32, 34, 35, 38} {
		db.put(i, hashNum(i))
	}

	// height 1
	db.put(2, db.hashPair(0, 1))
	db.put(5, db.hashPair(3, 4))
	db.put(9, db.hashPair(7, 8))
	db.put(12, db.hashPair(10, 11))
	db.put(17, db.hashPair(15, 16))
	db.put(20, db.hashPair(18, 19))
	db.put(24, db.hashPair(22, 23))
	db.put(27, db.hashPair(25, 26))
	db.put(33, db.hashPair(31, 32))
	db.put(36, db.hashPair(34, 35))

	// height 2
	db.put(6, db.hashPair(2, 5))
	db.put(13, db.hashPair(9, 12))
	db.put(21, db.hashPair(17, 20))
	db.put(28, db.hashPair(24, 27))
	db.put(37, db.hashPair(33, 36))

	// height 3
	db.put(14, db.hashPair(6, 13))
	db.put(29, db.hashPair(21, 28))

	// height 4
	db.put(30, db.hashPair(14, 29))

	return db
}

func testHasher() Hasher {
	return hashing.SHA256()
}

func (db *testDb) Size() uint64 {
	return db.next
}

func (db *testDb) Append(value []byte) (uint64, error) {
	db.store[db.next] = value
	db.next += 1
	return db.next, nil
}

func (db *testDb) Get(i uint64) ([]byte, error) {
	if value, ok := db.store[i]; ok {
		return value, nil
	}
	return nil, ErrNotFound
}

func (db *testDb) mustGet(i uint64) []byte {
	if value, err := db.Get(i); err == nil {
		return value
	}
	db.t.Fatalf("index %v not found", i)
	return nil
}

// put is provided for testing purposes only, the mmr never overwrites
func (db *testDb) put(i uint64, value []byte) {
	if _, ok := db.store[i]; ok {
		db.t.Fatalf("index %v already set", i)
	}
	db.store[i] = value
	if db.next <= i {
		db.next = i + 1
	}
}

func (db *testDb) hashPair(i, j uint64) []byte {
	return testHasher().Merge(db.mustGet(i), db.mustGet(j))
}

func hashNum(num uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, num)
	return testHasher().HashLeaf(b)
}
