package storage

// Owned is implemented by every record carrying its owner's user id.
type Owned interface {
	OwnerID() int64
}
