package fsstore

import (
	"path/filepath"

	"github.com/crmarques/datashelf/internal/providers/shared/fsutil"
	"github.com/crmarques/datashelf/resource"
)

func (r *LocalResourceRepository) namespaceDirPath(basePath string) (string, error) {
	if r.baseDir == "" || r.baseDir == "." {
		return "", validationError("repository base directory must not be empty", nil)
	}
	if basePath == "" {
		return "", validationError("base path must not be empty", nil)
	}

	dirPath := filepath.Clean(basePath)
	if !filepath.IsAbs(dirPath) {
		dirPath = filepath.Join(r.baseDir, dirPath)
	}
	if !fsutil.IsPathUnderRoot(r.baseDir, dirPath) {
		return "", validationError("base path escapes repository base directory", nil)
	}
	return dirPath, nil
}

func (r *LocalResourceRepository) resourceDirPath(basePath string, id string) (string, error) {
	if err := resource.ValidateSegment("resource id", id); err != nil {
		return "", err
	}

	namespaceDir, err := r.namespaceDirPath(basePath)
	if err != nil {
		return "", err
	}

	dirPath := filepath.Join(namespaceDir, id)
	if !fsutil.IsPathUnderRoot(r.baseDir, dirPath) {
		return "", validationError("resource path escapes repository base directory", nil)
	}
	return dirPath, nil
}

func metadataFilePath(resourceDir string) string {
	return filepath.Join(resourceDir, MetadataFileName)
}
