package filestorage

import (
	"mime/multipart"
)

// StoredFile describes where an uploaded file ended up
type StoredFile struct {
	// URL is the durable, client-resolvable location of the file
	URL string
	// Key is the provider-specific identifier used for later deletion
	Key string
}

// FileStorage is the storage abstraction consumed by the document upload
// path. Implementations may store on local disk or a cloud object store.
type FileStorage interface {
	// Save persists an uploaded file under an optional subdirectory and
	// returns its durable location.
	Save(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// Delete removes a previously stored file by its key. Deleting a
	// missing file is not an error.
	Delete(key string) error
}
