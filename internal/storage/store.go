package storage

// Upload folders, one per content kind.
const (
	FolderAvatars = "petconnect/avatars"
	FolderPosts   = "petconnect/posts"
)

type FileStore interface {
	UploadFile(file []byte, filename string, folder string) (string, error)
	DeleteFile(publicID string, folder string) error
}
