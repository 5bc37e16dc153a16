package groceries_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/groceries/internal/api/client"
	"github.com/donaldgifford/groceries/internal/groceries"
	"github.com/donaldgifford/groceries/internal/groceries/mocks"
	"github.com/donaldgifford/groceries/pkg/logger"
)

const listBody = `{"items":[{"id":1,"name":"apples"},{"id":2,"name":"bananas"},{"id":3,"name":"citrus"}]}`

func ok(body string) *client.Response {
	return &client.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

func status(code int) *client.Response {
	return &client.Response{StatusCode: code}
}

func newRepo(t *testing.T) (*groceries.Repository, *mocks.MockRequester) {
	t.Helper()
	m := mocks.NewMockRequester(t)
	return groceries.NewRepository(m, logger.Discard()), m
}

func TestRepository_ResolveID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		lookup  string
		wantID  int
		wantErr error
	}{
		{name: "first", body: listBody, lookup: "apples", wantID: 1},
		{name: "last", body: listBody, lookup: "citrus", wantID: 3},
		{name: "absent", body: listBody, lookup: "cucumber", wantErr: groceries.ErrNotFound},
		{name: "case sensitive", body: listBody, lookup: "Citrus", wantErr: groceries.ErrNotFound},
		{
			name:   "duplicates resolve to first match",
			body:   `{"items":[{"id":7,"name":"milk"},{"id":9,"name":"milk"}]}`,
			lookup: "milk",
			wantID: 7,
		},
		{name: "missing items field", body: `{}`, lookup: "apples", wantErr: groceries.ErrNotFound},
		{name: "id zero is a real id", body: `{"items":[{"id":0,"name":"eggs"}]}`, lookup: "eggs", wantID: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, m := newRepo(t)
			m.On("Get", mock.Anything, "/item").Return(ok(tt.body), nil).Once()

			id, err := repo.ResolveID(context.Background(), tt.lookup)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRepository_ListRefetchesEveryTime(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil).Twice()

	_, err := repo.ResolveID(context.Background(), "apples")
	require.NoError(t, err)
	_, err = repo.ResolveID(context.Background(), "bananas")
	require.NoError(t, err)

	m.AssertNumberOfCalls(t, "Get", 2)
}

func TestRepository_List(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "apples", items[0].Name)
	assert.Equal(t, 3, items[2].ID)
}

func TestRepository_ListWithoutItems(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(`{}`), nil)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRepository_ListErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resp    *client.Response
		err     error
		wantErr string
	}{
		{name: "transport", err: client.ErrTransport, wantErr: "transport error"},
		{name: "forbidden", resp: status(http.StatusForbidden), wantErr: "HTTP 403"},
		{name: "bad json", resp: ok("nope"), wantErr: "decoding response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, m := newRepo(t)
			m.On("Get", mock.Anything, "/item").Return(tt.resp, tt.err)

			_, err := repo.List(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRepository_Create(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Post", mock.Anything, "/item", map[string]string{"name": "dates"}).
		Return(ok(""), nil).Once()

	require.NoError(t, repo.Create(context.Background(), "dates"))
}

func TestRepository_CreateFails(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Post", mock.Anything, "/item", mock.Anything).
		Return(status(http.StatusInternalServerError), nil)

	err := repo.Create(context.Background(), "dates")
	require.ErrorIs(t, err, groceries.ErrUnexpectedStatus)
}

func TestRepository_MarkPurchased(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil).Once()
	m.On("Put", mock.Anything, "/item/3", nil).Return(ok(""), nil).Once()

	require.NoError(t, repo.MarkPurchased(context.Background(), "citrus"))
	m.AssertNumberOfCalls(t, "Put", 1)
}

func TestRepository_MarkPurchasedRejected(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil)
	m.On("Put", mock.Anything, "/item/3", nil).Return(status(http.StatusForbidden), nil)

	err := repo.MarkPurchased(context.Background(), "citrus")
	require.ErrorIs(t, err, groceries.ErrUnexpectedStatus)
}

func TestRepository_NotFoundNeverMutates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(r *groceries.Repository) error
	}{
		{
			name: "buy",
			call: func(r *groceries.Repository) error {
				return r.MarkPurchased(context.Background(), "cucumber")
			},
		},
		{
			name: "delete",
			call: func(r *groceries.Repository) error {
				return r.Delete(context.Background(), "cucumber")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, m := newRepo(t)
			m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil)

			err := tt.call(repo)
			require.ErrorIs(t, err, groceries.ErrNotFound)
			m.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
			m.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil).Once()
	m.On("Delete", mock.Anything, "/item/2").Return(ok(""), nil).Once()

	require.NoError(t, repo.Delete(context.Background(), "bananas"))
}

func TestRepository_DeleteTransportError(t *testing.T) {
	t.Parallel()

	repo, m := newRepo(t)
	m.On("Get", mock.Anything, "/item").Return(ok(listBody), nil)
	m.On("Delete", mock.Anything, "/item/2").Return(nil, errors.Join(client.ErrTransport))

	err := repo.Delete(context.Background(), "bananas")
	require.ErrorIs(t, err, client.ErrTransport)
}
