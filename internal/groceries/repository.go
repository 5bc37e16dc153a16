// Package groceries resolves item names to remote IDs and performs the
// list operations against the grocery API.
package groceries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/donaldgifford/groceries/internal/api/client"
	domain "github.com/donaldgifford/groceries/pkg/types"
)

// Errors returned by the repository.
var (
	ErrNotFound         = errors.New("item not found")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Requester is the subset of client.Client used by the repository.
type Requester interface {
	Get(ctx context.Context, path string) (*client.Response, error)
	Post(ctx context.Context, path string, body any) (*client.Response, error)
	Put(ctx context.Context, path string, body any) (*client.Response, error)
	Delete(ctx context.Context, path string) (*client.Response, error)
}

// Repository performs item operations. Nothing is cached: every name lookup
// fetches the full list again.
type Repository struct {
	api    Requester
	logger *slog.Logger
}

// NewRepository creates a Repository backed by api.
func NewRepository(api Requester, logger *slog.Logger) *Repository {
	return &Repository{api: api, logger: logger}
}

// List returns every item on the list. A response without an items field
// yields an empty slice.
func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	resp, err := r.api.Get(ctx, "/item")
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	if err := expectOK(resp); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	var list domain.ItemList
	if err := resp.Decode(&list); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	if list.Items == nil {
		return []domain.Item{}, nil
	}
	return list.Items, nil
}

// ResolveID returns the ID of the first item named name, or ErrNotFound.
func (r *Repository) ResolveID(ctx context.Context, name string) (int, error) {
	items, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	item, ok := domain.FindByName(items, name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return item.ID, nil
}

// Create adds name to the list.
func (r *Repository) Create(ctx context.Context, name string) error {
	resp, err := r.api.Post(ctx, "/item", map[string]string{"name": name})
	if err != nil {
		return fmt.Errorf("adding %q: %w", name, err)
	}
	if err := expectOK(resp); err != nil {
		return fmt.Errorf("adding %q: %w", name, err)
	}
	r.logger.Debug("item added", "name", name)
	return nil
}

// MarkPurchased marks the item named name as bought.
func (r *Repository) MarkPurchased(ctx context.Context, name string) error {
	id, err := r.ResolveID(ctx, name)
	if err != nil {
		return err
	}

	resp, err := r.api.Put(ctx, itemPath(id), nil)
	if err != nil {
		return fmt.Errorf("buying %q: %w", name, err)
	}
	if err := expectOK(resp); err != nil {
		return fmt.Errorf("buying %q: %w", name, err)
	}
	r.logger.Debug("item bought", "name", name, "id", id)
	return nil
}

// Delete removes the item named name from the list.
func (r *Repository) Delete(ctx context.Context, name string) error {
	id, err := r.ResolveID(ctx, name)
	if err != nil {
		return err
	}

	resp, err := r.api.Delete(ctx, itemPath(id))
	if err != nil {
		return fmt.Errorf("removing %q: %w", name, err)
	}
	if err := expectOK(resp); err != nil {
		return fmt.Errorf("removing %q: %w", name, err)
	}
	r.logger.Debug("item removed", "name", name, "id", id)
	return nil
}

func itemPath(id int) string {
	return "/item/" + strconv.Itoa(id)
}

func expectOK(resp *client.Response) error {
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w (HTTP %d)", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
