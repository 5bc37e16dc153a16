package mockapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/groceries/pkg/types"
)

// Handler serves the grocery API operations from a Store.
type Handler struct {
	store *Store
}

// NewHandler creates a new Handler.
func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

// --- Input/Output types ---

// StatusOutput is the response for the status probe.
type StatusOutput struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// LoginInput is the input for logging in.
type LoginInput struct {
	Body domain.Credentials
}

// LoginOutput is the response for a successful login.
type LoginOutput struct {
	Body domain.TokenResponse
}

// ListItemsInput is the input for listing items.
type ListItemsInput struct {
	Token string `header:"X-Auth-Token" doc:"Session token"`
}

// ListItemsOutput is the response for listing items.
type ListItemsOutput struct {
	Body domain.ItemList
}

// CreateItemInput is the input for adding an item.
type CreateItemInput struct {
	Token string `header:"X-Auth-Token" doc:"Session token"`
	Body  struct {
		Name string `json:"name" minLength:"1" doc:"Item name"`
	}
}

// ItemInput addresses a single item.
type ItemInput struct {
	Token string `header:"X-Auth-Token" doc:"Session token"`
	ID    int    `path:"id" doc:"Item ID"`
}

// ItemOutput is the response carrying a single item.
type ItemOutput struct {
	Body domain.Item
}

// --- Handlers ---

// Status answers the client's reachability probe.
func (*Handler) Status(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	out := &StatusOutput{}
	out.Body.Status = "ok"
	return out, nil
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(_ context.Context, input *LoginInput) (*LoginOutput, error) {
	token, ok := h.store.Login(input.Body.Username, input.Body.Password)
	if !ok {
		return nil, huma.Error401Unauthorized("invalid username and/or password")
	}
	return &LoginOutput{Body: domain.TokenResponse{Token: token}}, nil
}

// ListItems returns the whole list.
func (h *Handler) ListItems(_ context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	if err := h.authorize(input.Token); err != nil {
		return nil, err
	}
	items := h.store.Items()
	if items == nil {
		items = []domain.Item{}
	}
	return &ListItemsOutput{Body: domain.ItemList{Items: items}}, nil
}

// CreateItem adds an item to the list.
func (h *Handler) CreateItem(_ context.Context, input *CreateItemInput) (*ItemOutput, error) {
	if err := h.authorize(input.Token); err != nil {
		return nil, err
	}
	return &ItemOutput{Body: h.store.Add(input.Body.Name)}, nil
}

// PurchaseItem marks an item as bought.
func (h *Handler) PurchaseItem(_ context.Context, input *ItemInput) (*ItemOutput, error) {
	if err := h.authorize(input.Token); err != nil {
		return nil, err
	}
	item, err := h.store.Purchase(input.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return &ItemOutput{Body: item}, nil
}

// DeleteItem removes an item from the list.
func (h *Handler) DeleteItem(_ context.Context, input *ItemInput) (*struct{}, error) {
	if err := h.authorize(input.Token); err != nil {
		return nil, err
	}
	if err := h.store.Remove(input.ID); err != nil {
		return nil, notFound(err)
	}
	return &struct{}{}, nil
}

func (h *Handler) authorize(token string) error {
	if !h.store.Authorized(token) {
		return huma.Error401Unauthorized("invalid or missing token")
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, ErrItemNotFound) {
		return huma.Error404NotFound(err.Error())
	}
	return huma.Error500InternalServerError(err.Error())
}

// RegisterRoutes registers the grocery API operations with the Huma API.
// Every operation answers 200 on success; the client accepts nothing else.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID:   "get-status",
		Method:        http.MethodGet,
		Path:          "/status",
		Summary:       "Status probe",
		Description:   "Returns 200 when the API is up.",
		Tags:          []string{"status"},
		DefaultStatus: http.StatusOK,
	}, h.Status)

	huma.Register(api, huma.Operation{
		OperationID:   "login",
		Method:        http.MethodPost,
		Path:          "/login",
		Summary:       "Log in",
		Description:   "Exchanges a username and password for a session token.",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized},
	}, h.Login)

	huma.Register(api, huma.Operation{
		OperationID:   "list-items",
		Method:        http.MethodGet,
		Path:          "/item",
		Summary:       "List items",
		Tags:          []string{"items"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized},
	}, h.ListItems)

	huma.Register(api, huma.Operation{
		OperationID:   "create-item",
		Method:        http.MethodPost,
		Path:          "/item",
		Summary:       "Add an item",
		Tags:          []string{"items"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized},
	}, h.CreateItem)

	huma.Register(api, huma.Operation{
		OperationID:   "purchase-item",
		Method:        http.MethodPut,
		Path:          "/item/{id}",
		Summary:       "Mark an item as bought",
		Tags:          []string{"items"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.PurchaseItem)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-item",
		Method:        http.MethodDelete,
		Path:          "/item/{id}",
		Summary:       "Remove an item",
		Tags:          []string{"items"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.DeleteItem)
}
