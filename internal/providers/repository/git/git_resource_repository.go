package git

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/internal/providers/repository/fsstore"
	"github.com/crmarques/datashelf/repository"
	"github.com/crmarques/datashelf/resource"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

var _ repository.ResourceStore = (*GitResourceRepository)(nil)
var _ repository.RepositorySync = (*GitResourceRepository)(nil)
var _ repository.RepositoryHistoryReader = (*GitResourceRepository)(nil)

const commitMessagePrefix = "datashelf: create "

// GitResourceRepository stores resources like the filesystem store and
// records every created resource as a commit in a git repository rooted at
// the data directory.
type GitResourceRepository struct {
	local   *fsstore.LocalResourceRepository
	baseDir string
	author  config.GitRepository
	now     func() time.Time

	// mu serializes repository initialization and index updates.
	mu sync.Mutex
}

func NewGitResourceRepository(baseDir string, settings config.GitRepository, opts ...fsstore.Option) *GitResourceRepository {
	local := fsstore.NewLocalResourceRepository(baseDir, opts...)
	return &GitResourceRepository{
		local:   local,
		baseDir: local.Root(),
		author:  config.Repository{Git: &settings}.GitSettings(),
		now:     time.Now,
	}
}

func (r *GitResourceRepository) Root() string {
	return r.baseDir
}

func (r *GitResourceRepository) Get(ctx context.Context, basePath string, id string) (resource.Record, error) {
	return r.local.Get(ctx, basePath, id)
}

func (r *GitResourceRepository) List(ctx context.Context, basePath string) (repository.ListResult, error) {
	return r.local.List(ctx, basePath)
}

// Create writes the resource through the filesystem store and commits its
// metadata file. When staging or committing fails after the resource was
// written, the resource stays on disk uncommitted and Create returns its
// record together with the error.
func (r *GitResourceRepository) Create(ctx context.Context, basePath string, metadata json.RawMessage) (resource.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	repo, err := r.openRepositoryForOperation(ctx)
	if err != nil {
		return resource.Record{}, err
	}

	record, err := r.local.Create(ctx, basePath, metadata)
	if err != nil {
		return resource.Record{}, err
	}

	relativeDir, err := filepath.Rel(r.baseDir, record.URI)
	if err != nil {
		return record, internalError("failed to resolve resource path inside repository", err)
	}
	relativeDir = filepath.ToSlash(relativeDir)

	worktree, err := repo.Worktree()
	if err != nil {
		return record, internalError("failed to open git worktree", err)
	}
	if _, err := worktree.Add(relativeDir + "/" + fsstore.MetadataFileName); err != nil {
		return record, internalError("failed to stage resource metadata", err)
	}
	if _, err := worktree.Commit(commitMessagePrefix+relativeDir, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  r.author.AuthorName,
			Email: r.author.AuthorEmail,
			When:  r.now(),
		},
	}); err != nil {
		return record, internalError("failed to commit resource metadata", err)
	}

	return record, nil
}

func (r *GitResourceRepository) History(ctx context.Context, filter repository.HistoryFilter) ([]repository.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	repo, err := r.openRepositoryForOperation(ctx)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&gogit.LogOptions{Order: gogit.LogOrderCommitterTime})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []repository.HistoryEntry{}, nil
		}
		return nil, internalError("failed to read git history", err)
	}
	defer iter.Close()

	entries := make([]repository.HistoryEntry, 0, max(filter.MaxCount, 0))
	for {
		commit, nextErr := iter.Next()
		if nextErr != nil {
			if errors.Is(nextErr, io.EOF) || errors.Is(nextErr, storer.ErrStop) {
				break
			}
			return nil, internalError("failed to iterate git history", nextErr)
		}

		entries = append(entries, historyEntryFromCommit(commit))
		if filter.MaxCount > 0 && len(entries) >= filter.MaxCount {
			break
		}
	}
	return entries, nil
}

func historyEntryFromCommit(commit *object.Commit) repository.HistoryEntry {
	message := strings.ReplaceAll(commit.Message, "\r\n", "\n")
	subject, _, _ := strings.Cut(message, "\n")

	return repository.HistoryEntry{
		Hash:    commit.Hash.String(),
		Author:  strings.TrimSpace(commit.Author.Name),
		Email:   strings.TrimSpace(commit.Author.Email),
		Date:    commit.Author.When,
		Subject: strings.TrimSpace(subject),
	}
}

func (r *GitResourceRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.initLocked(ctx)
}

func (r *GitResourceRepository) initLocked(ctx context.Context) error {
	if err := r.local.Init(ctx); err != nil {
		return err
	}
	if _, err := gogit.PlainOpen(r.baseDir); err != nil {
		if !errors.Is(err, gogit.ErrRepositoryNotExists) {
			return internalError("failed to open repository", err)
		}
		if _, err := gogit.PlainInit(r.baseDir, false); err != nil {
			return internalError("failed to initialize git repository", err)
		}
	}
	return nil
}

func (r *GitResourceRepository) Check(ctx context.Context) error {
	if err := r.local.Check(ctx); err != nil {
		return err
	}
	if _, err := gogit.PlainOpen(r.baseDir); err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return notFoundError(fmt.Sprintf("%s is not a git repository", r.baseDir))
		}
		return internalError("failed to open git repository", err)
	}
	return nil
}

// openRepositoryForOperation initializes the repository on first use. The
// caller must hold r.mu.
func (r *GitResourceRepository) openRepositoryForOperation(ctx context.Context) (*gogit.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpen(r.baseDir)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, internalError("failed to open git repository", err)
	}

	if initErr := r.initLocked(ctx); initErr != nil {
		return nil, initErr
	}

	repo, err = gogit.PlainOpen(r.baseDir)
	if err != nil {
		return nil, internalError("failed to open git repository after initialization", err)
	}
	return repo, nil
}

func notFoundError(message string) error {
	return faults.NewTypedError(faults.NotFoundError, message, nil)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
