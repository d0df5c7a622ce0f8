package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/internal/logging"
	"github.com/crmarques/datashelf/internal/providers/repository/fsstore"
	"github.com/crmarques/datashelf/resource"
	"github.com/crmarques/datashelf/resource/identity"
	"github.com/go-logr/logr/funcr"
	"golang.org/x/sync/errgroup"
)

type named struct {
	ID   string
	URI  string
	Name string
}

func reconstructNamed(record resource.Record) (named, error) {
	var fields struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(record.Metadata, &fields); err != nil {
		return named{}, err
	}
	return named{ID: record.ID, URI: record.URI, Name: fields.Name}, nil
}

func newUserEngine(t *testing.T, root string, opts ...Option) *Engine[named] {
	t.Helper()

	engine, err := New(root, resource.NewURITemplate("users/", nil), reconstructNamed, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return engine
}

func TestEngineCreateUserScenario(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	engine := newUserEngine(t, root)

	user, err := engine.Create(context.Background(), json.RawMessage(`{"name": "Ada"}`))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(user.ID) != identity.Length {
		t.Fatalf("expected %d character id, got %q", identity.Length, user.ID)
	}
	if !strings.HasSuffix(user.URI, filepath.Join("users", user.ID)) {
		t.Fatalf("expected uri to end in users/<id>, got %q", user.URI)
	}
	if user.Name != "Ada" {
		t.Fatalf("expected name Ada, got %q", user.Name)
	}
}

func TestEngineRoundTrip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	engine := newUserEngine(t, root)

	created, err := engine.Create(context.Background(), json.RawMessage(`{"name":"Grace","extra":{"a":1}}`))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	fetched, err := engine.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fetched != created {
		t.Fatalf("expected %#v, got %#v", created, fetched)
	}
}

func TestEngineGetNotFoundEnvelope(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	engine := newUserEngine(t, root)

	value, err := engine.Get(context.Background(), "nonexistent-id")
	envelope := resource.NewIOResource(value, err)
	if envelope.Data != nil {
		t.Fatalf("expected no data, got %#v", envelope.Data)
	}
	if envelope.Error == nil || envelope.Error.Code != "404" || envelope.Error.Message != "Resource not found" {
		t.Fatalf("unexpected envelope error %#v", envelope.Error)
	}

	if _, err := engine.Create(context.Background(), json.RawMessage(`{"name":"x"}`)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	_, err = engine.Get(context.Background(), "nonexistent-id")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not found in populated namespace, got %v", err)
	}
}

func TestEngineTemplateResolution(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	engine, err := New(
		root,
		resource.NewURITemplate("users/:user_id/datasets/", map[string]string{"user_id": "abc"}),
		reconstructNamed,
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if engine.BasePath() != filepath.Join(root, "users", "abc", "datasets") {
		t.Fatalf("unexpected base path %q", engine.BasePath())
	}

	plain := newUserEngine(t, root)
	if plain.BasePath() != filepath.Join(root, "users") {
		t.Fatalf("unexpected base path %q", plain.BasePath())
	}
}

func TestEngineRejectsUnresolvedPlaceholder(t *testing.T) {
	t.Parallel()

	_, err := New(
		t.TempDir(),
		resource.NewURITemplate("users/:user_id/datasets/:dataset_id/collections", map[string]string{"user_id": "abc"}),
		reconstructNamed,
	)
	if !faults.IsCategory(err, faults.PatternError) {
		t.Fatalf("expected pattern error, got %v", err)
	}
	if !strings.Contains(err.Error(), "dataset_id") {
		t.Fatalf("expected missing placeholder in message, got %v", err)
	}
}

func TestEngineRejectsUnsafeParams(t *testing.T) {
	t.Parallel()

	_, err := New(
		t.TempDir(),
		resource.NewURITemplate("users/:user_id/datasets/", map[string]string{"user_id": ".."}),
		reconstructNamed,
	)
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = New(t.TempDir(), resource.NewURITemplate("../outside", nil), reconstructNamed)
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for escaping template, got %v", err)
	}
}

func TestEngineRejectsInvalidConstruction(t *testing.T) {
	t.Parallel()

	if _, err := New[named]("", resource.NewURITemplate("users/", nil), reconstructNamed); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for empty root, got %v", err)
	}
	if _, err := New[named](t.TempDir(), resource.NewURITemplate("users/", nil), nil); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for nil reconstructor, got %v", err)
	}

	store := fsstore.NewLocalResourceRepository(t.TempDir())
	_, err := New(t.TempDir(), resource.NewURITemplate("users/", nil), reconstructNamed, WithStore(store))
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for mismatched store root, got %v", err)
	}
}

func TestEngineListCompleteness(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	engine := newUserEngine(t, root)

	empty, err := engine.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	const total = 7
	ids := make(map[string]struct{}, total)
	for i := 0; i < total; i++ {
		user, err := engine.Create(context.Background(), json.RawMessage(fmt.Sprintf(`{"name":"user-%d"}`, i)))
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		ids[user.ID] = struct{}{}
	}

	users, err := engine.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != total {
		t.Fatalf("expected %d users, got %d", total, len(users))
	}
	for _, user := range users {
		if _, ok := ids[user.ID]; !ok {
			t.Fatalf("unexpected user %q", user.ID)
		}
		delete(ids, user.ID)
		if _, err := engine.Get(context.Background(), user.ID); err != nil {
			t.Fatalf("expected %q to be retrievable: %v", user.ID, err)
		}
	}
	if len(ids) != 0 {
		t.Fatalf("expected every created user to be listed, missing %v", ids)
	}
}

func TestEngineListLogsSkippedEntries(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var mu sync.Mutex
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, args)
	}, funcr.Options{})

	engine := newUserEngine(t, root, WithLogger(logger))
	if _, err := engine.Create(context.Background(), json.RawMessage(`{"name":"ok"}`)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	writeMetadata(t, filepath.Join(root, "users", "broken"), `{"name":`)
	writeMetadata(t, filepath.Join(root, "users", "wrongshape"), `{"name": 42}`)

	users, err := engine.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 || users[0].Name != "ok" {
		t.Fatalf("expected only the readable user, got %#v", users)
	}

	mu.Lock()
	defer mu.Unlock()
	joined := strings.Join(lines, "\n")
	for _, id := range []string{"broken", "wrongshape"} {
		if !strings.Contains(joined, `"id"="`+id+`"`) {
			t.Fatalf("expected skipped entry %q to be logged, got:\n%s", id, joined)
		}
	}
}

func TestEngineListSkippedEntriesSurviveWarnLevel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var buffer bytes.Buffer
	logger, err := logging.New(&buffer, "warn", "json")
	if err != nil {
		t.Fatalf("logging.New returned error: %v", err)
	}

	engine := newUserEngine(t, root, WithLogger(logger))
	writeMetadata(t, filepath.Join(root, "users", "broken"), `{"name":`)
	writeMetadata(t, filepath.Join(root, "users", "wrongshape"), `{"name": 42}`)

	users, err := engine.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no readable users, got %#v", users)
	}

	output := buffer.String()
	for _, id := range []string{"broken", "wrongshape"} {
		if !strings.Contains(output, `"id":"`+id+`"`) {
			t.Fatalf("expected skipped entry %q to be logged at warn level, got:\n%s", id, output)
		}
	}
	if !strings.Contains(output, `"error":`) {
		t.Fatalf("expected skip cause in log output, got:\n%s", output)
	}
}

func TestEngineReconstructionFailureIsMalformedState(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	failing := func(resource.Record) (named, error) {
		return named{}, errors.New("missing required field")
	}
	engine, err := New(root, resource.NewURITemplate("users/", nil), failing)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = engine.Create(context.Background(), json.RawMessage(`{}`))
	if !faults.IsCategory(err, faults.MalformedStateError) {
		t.Fatalf("expected malformed state error on create, got %v", err)
	}

	writeMetadata(t, filepath.Join(root, "users", "existing"), `{}`)
	_, err = engine.Get(context.Background(), "existing")
	if !faults.IsCategory(err, faults.MalformedStateError) {
		t.Fatalf("expected malformed state error on get, got %v", err)
	}
}

func TestEngineConcurrentCreatesAllocateDistinctIDs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := fsstore.NewLocalResourceRepository(root)

	const workers = 16
	results := make([]named, workers)
	var group errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		group.Go(func() error {
			engine, err := New(
				root,
				resource.NewURITemplate("users/:user_id/datasets/", map[string]string{"user_id": "shared"}),
				reconstructNamed,
				WithStore(store),
			)
			if err != nil {
				return err
			}
			created, err := engine.Create(context.Background(), json.RawMessage(fmt.Sprintf(`{"name":"ds-%d"}`, i)))
			results[i] = created
			return err
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatalf("concurrent create returned error: %v", err)
	}

	seen := make(map[string]struct{}, workers)
	for _, result := range results {
		if _, dup := seen[result.ID]; dup {
			t.Fatalf("duplicate id %q", result.ID)
		}
		seen[result.ID] = struct{}{}
	}

	engine, err := New(
		root,
		resource.NewURITemplate("users/:user_id/datasets/", map[string]string{"user_id": "shared"}),
		reconstructNamed,
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	listed, err := engine.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != workers {
		t.Fatalf("expected %d datasets, got %d", workers, len(listed))
	}
}

func writeMetadata(t *testing.T, dir string, metadata string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create resource dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fsstore.MetadataFileName), []byte(metadata), 0o644); err != nil {
		t.Fatalf("failed to write metadata: %v", err)
	}
}
