package commitment

import "errors"

var (
	ErrLeafNotRetained  = errors.New("the leaf payload was not retained")
	ErrSnapshotMismatch = errors.New("the snapshot leaves do not reproduce its root")
	ErrSnapshotVersion  = errors.New("unsupported snapshot version")
)
