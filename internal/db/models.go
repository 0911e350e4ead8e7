package db

// LocalEntry is one row of the local_storage table.
type LocalEntry struct {
	Key       string
	Value     string
	UpdatedAt string
}
