package mockapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/groceries/pkg/types"
)

func TestStore_Login(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.newToken = func() string { return "fixed" }
	s.AddUser("user", "pass")

	_, ok := s.Login("user", "wrong")
	assert.False(t, ok)
	assert.False(t, s.Authorized("fixed"))

	token, ok := s.Login("user", "pass")
	require.True(t, ok)
	assert.Equal(t, "fixed", token)
	assert.True(t, s.Authorized("fixed"))
	assert.False(t, s.Authorized(""))
}

func TestStore_Items(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add("apples")
	s.Add("apples")
	s.Add("citrus")

	assert.Equal(t, []domain.Item{
		{ID: 1, Name: "apples"},
		{ID: 2, Name: "apples"},
		{ID: 3, Name: "citrus"},
	}, s.Items())

	item, err := s.Purchase(3)
	require.NoError(t, err)
	assert.True(t, item.Purchased)

	require.NoError(t, s.Remove(1))
	require.ErrorIs(t, s.Remove(1), ErrItemNotFound)
	_, err = s.Purchase(1)
	require.ErrorIs(t, err, ErrItemNotFound)

	// IDs are never reused.
	assert.Equal(t, 4, s.Add("dates").ID)
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add("apples")

	items := s.Items()
	items[0].Name = "changed"
	assert.Equal(t, "apples", s.Items()[0].Name)
}
