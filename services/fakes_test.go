package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-dashboard/gateway"
	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/poller"
	"github.com/Dosada05/tournament-dashboard/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

type fakeFeed struct {
	snapshot poller.Snapshot
	reloads  int
}

func (f *fakeFeed) Snapshot() poller.Snapshot { return f.snapshot }
func (f *fakeFeed) Status() poller.Status     { return f.snapshot.Status }
func (f *fakeFeed) Reload()                   { f.reloads++ }

func readyFeed(matches ...models.Match) *fakeFeed {
	return &fakeFeed{snapshot: poller.Snapshot{
		Status:  poller.Status{State: poller.StateReady},
		Matches: matches,
	}}
}

type fakeGateway struct {
	mu        sync.Mutex
	matches   []models.Match
	listErr   error
	listStage models.Stage
	updates   []models.MatchUpdate
	updateRes *gateway.Result
	updateErr error
	actions   []models.AdminAction
	invokeErr error
}

func (g *fakeGateway) ListMatches(_ context.Context, stage models.Stage) ([]models.Match, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listStage = stage
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.matches, nil
}

func (g *fakeGateway) UpdateMatch(_ context.Context, update models.MatchUpdate) (*gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates = append(g.updates, update)
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	if g.updateRes != nil {
		return g.updateRes, nil
	}
	return &gateway.Result{}, nil
}

func (g *fakeGateway) Invoke(_ context.Context, action models.AdminAction) (*gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.actions = append(g.actions, action)
	if g.invokeErr != nil {
		return nil, g.invokeErr
	}
	return &gateway.Result{Message: "Success!"}, nil
}

type uploadedObject struct {
	contentType string
	body        []byte
}

type memoryUploader struct {
	mu        sync.Mutex
	objects   map[string]uploadedObject
	keys      []string
	deleted   []string
	err       error
	deleteErr error
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: make(map[string]uploadedObject)}
}

func (u *memoryUploader) Upload(_ context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return nil, u.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	u.objects[key] = uploadedObject{contentType: contentType, body: buf.Bytes()}
	u.keys = append(u.keys, key)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key), ETag: "etag"}, nil
}

func (u *memoryUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.deleteErr != nil {
		return u.deleteErr
	}
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (u *memoryUploader) uploadedKeys() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.keys...)
}
