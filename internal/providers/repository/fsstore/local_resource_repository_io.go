package fsstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/crmarques/datashelf/resource"
)

func (r *LocalResourceRepository) Get(ctx context.Context, basePath string, id string) (resource.Record, error) {
	if err := ctx.Err(); err != nil {
		return resource.Record{}, err
	}

	resourceDir, err := r.resourceDirPath(basePath, id)
	if err != nil {
		return resource.Record{}, err
	}
	return readRecord(resourceDir, id)
}

func (r *LocalResourceRepository) Create(ctx context.Context, basePath string, metadata json.RawMessage) (resource.Record, error) {
	if err := ctx.Err(); err != nil {
		return resource.Record{}, err
	}

	encoded, err := encodeMetadata(metadata)
	if err != nil {
		return resource.Record{}, err
	}

	id, err := r.newID()
	if err != nil {
		return resource.Record{}, err
	}

	resourceDir, err := r.resourceDirPath(basePath, id)
	if err != nil {
		return resource.Record{}, err
	}

	if err := os.MkdirAll(filepath.Dir(resourceDir), 0o755); err != nil {
		return resource.Record{}, ioError("failed to create namespace directory", err)
	}
	if err := os.Mkdir(resourceDir, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return resource.Record{}, conflictError(fmt.Sprintf("resource %q already exists", id), err)
		}
		return resource.Record{}, ioError("failed to create resource directory", err)
	}

	if err := writeFileAtomic(metadataFilePath(resourceDir), encoded); err != nil {
		_ = os.RemoveAll(resourceDir)
		return resource.Record{}, ioError("failed to write metadata document", err)
	}

	return readRecord(resourceDir, id)
}

func readRecord(resourceDir string, id string) (resource.Record, error) {
	data, err := os.ReadFile(metadataFilePath(resourceDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return resource.Record{}, notFoundError(fmt.Sprintf("resource %q not found", id))
		}
		return resource.Record{}, ioError("failed to read metadata document", err)
	}

	metadata, err := decodeMetadata(data)
	if err != nil {
		return resource.Record{}, malformedStateError(
			fmt.Sprintf("metadata document of resource %q is not valid json", id),
			err,
		)
	}

	return resource.Record{
		ID:       id,
		URI:      resourceDir,
		Metadata: metadata,
	}, nil
}

func encodeMetadata(metadata json.RawMessage) ([]byte, error) {
	if len(bytes.TrimSpace(metadata)) == 0 {
		return nil, validationError("metadata document must not be empty", nil)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, metadata, "", "  "); err != nil {
		return nil, validationError("metadata document is not valid json", err)
	}
	if indented.Bytes()[0] != '{' {
		return nil, validationError("metadata document must be a json object", nil)
	}
	indented.WriteByte('\n')
	return indented.Bytes(), nil
}

func decodeMetadata(data []byte) (json.RawMessage, error) {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, data); err != nil {
		return nil, err
	}
	if compacted.Len() == 0 {
		return nil, errors.New("empty document")
	}
	return json.RawMessage(compacted.Bytes()), nil
}

func writeFileAtomic(targetPath string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(targetPath), ".datashelf-tmp-*")
	if err != nil {
		return err
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return err
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return nil
}
