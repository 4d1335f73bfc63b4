package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// MkdirTemp creates a new unique temporary directory under dir
	// (or the OS default when dir is empty) and returns its path.
	MkdirTemp(dir, pattern string) (string, error)

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)

	// Rename atomically moves a file within the same filesystem.
	Rename(oldPath, newPath string) error

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// RemoveAll deletes a path and any children it contains.
	RemoveAll(path string) error
}
