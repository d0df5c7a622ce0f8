package fsstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/crmarques/datashelf/internal/providers/shared/fsutil"
	"github.com/crmarques/datashelf/repository"
	"github.com/crmarques/datashelf/resource"
)

// List reads every immediate subdirectory of basePath that holds a metadata
// document. Entries are returned in directory-name order.
func (r *LocalResourceRepository) List(ctx context.Context, basePath string) (repository.ListResult, error) {
	result := repository.ListResult{Records: []resource.Record{}}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	namespaceDir, err := r.namespaceDirPath(basePath)
	if err != nil {
		return result, err
	}

	entries, err := os.ReadDir(namespaceDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return result, nil
		}
		return result, ioError("failed to list namespace directory", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		id := entry.Name()
		resourceDir := filepath.Join(namespaceDir, id)
		hasMetadata, statErr := fsutil.IsRegularFile(metadataFilePath(resourceDir))
		if statErr != nil {
			result.Failures = append(result.Failures, repository.EntryFailure{
				ID:  id,
				Err: ioError("failed to inspect metadata document", statErr),
			})
			continue
		}
		if !hasMetadata {
			continue
		}

		record, readErr := readRecord(resourceDir, id)
		if readErr != nil {
			result.Failures = append(result.Failures, repository.EntryFailure{ID: id, Err: readErr})
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}
