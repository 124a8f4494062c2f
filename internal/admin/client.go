package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

// ErrSubClientNotFound indicates a configured sub-client name has no factory.
var ErrSubClientNotFound = errors.New("admin: sub-client not found")

// Client is the lifecycle every admin section implements. Each call returns
// the rendered body; Save returns an empty body on success.
type Client interface {
	Copy(ctx context.Context, view *View) (string, error)
	Create(ctx context.Context, view *View) (string, error)
	Get(ctx context.Context, view *View) (string, error)
	Save(ctx context.Context, view *View) (string, error)
}

// ClientFactory builds a sub-client.
type ClientFactory func() (Client, error)

// SubClientError names the missing sub-client.
type SubClientError struct {
	Key string
}

func (e *SubClientError) Error() string {
	return fmt.Sprintf("admin: sub-client %q not found", e.Key)
}

func (e *SubClientError) Unwrap() error {
	return ErrSubClientNotFound
}

// Registry maps sub-client keys such as "service/text/<name>" to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ClientFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]ClientFactory{}}
}

// Register adds or replaces the factory for key.
func (r *Registry) Register(key string, factory ClientFactory) error {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" || factory == nil {
		return fmt.Errorf("admin: sub-client key and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
	return nil
}

// Keys lists the registered keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Resolve builds the sub-clients named by names under prefix, in order.
func (r *Registry) Resolve(prefix string, names []string) ([]Client, error) {
	if len(names) == 0 {
		return nil, nil
	}
	prefix = strings.Trim(prefix, "/")
	clients := make([]Client, 0, len(names))
	for _, name := range names {
		key := prefix + "/" + strings.Trim(strings.TrimSpace(name), "/")
		var factory ClientFactory
		if r != nil {
			r.mu.RLock()
			factory = r.factories[key]
			r.mu.RUnlock()
		}
		if factory == nil {
			return nil, &SubClientError{Key: key}
		}
		client, err := factory()
		if err != nil {
			return nil, fmt.Errorf("admin: build sub-client %q: %w", key, err)
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// Stage selects one step of the client lifecycle.
type Stage func(Client, context.Context, *View) (string, error)

var (
	StageCopy   Stage = Client.Copy
	StageCreate Stage = Client.Create
	StageGet    Stage = Client.Get
	StageSave   Stage = Client.Save
)

// RunSubClients runs stage on every client and concatenates their bodies.
func RunSubClients(ctx context.Context, clients []Client, view *View, stage Stage) (string, error) {
	var body strings.Builder
	for _, client := range clients {
		out, err := stage(client, ctx, view)
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}
	return body.String(), nil
}

// Render renders template with the view data.
func Render(renderer interfaces.TemplateRenderer, template string, view *View) (string, error) {
	if renderer == nil {
		return "", nil
	}
	out, err := renderer.Render(template, view.Data())
	if err != nil {
		return "", fmt.Errorf("admin: render %q: %w", template, err)
	}
	return out, nil
}
