package client

import (
	"os"
	"path/filepath"
	"testing"

	"paintingstore/internal/cart"
	auth "paintingstore/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	st, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Token)
	assert.Empty(t, st.Cart)
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewFileStore(path)

	want := SessionState{
		Token: "tok",
		User:  &auth.UserOutput{ID: 3, Name: "Bob", Email: "bob@example.com", Role: "customer"},
		Cart:  []cart.Line{{Item: cart.Item{ID: 1, Title: "Mona Lisa", Price: 5000}, Quantity: 2}},
	}
	require.NoError(t, s.Save(want))

	got, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// 一時ファイルは残らない
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	st, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, SessionState{}, st)
}

func TestSession_RestoresAndPersists(t *testing.T) {
	store := &MemoryStore{}
	require.NoError(t, store.Save(SessionState{
		Cart: []cart.Line{{Item: cart.Item{ID: 1, Price: 100}, Quantity: 1}},
	}))

	s, err := NewSession(store)
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.CartTotal())
	assert.False(t, s.IsLoggedIn())

	require.NoError(t, s.UpdateQty(1, 0))
	st, _ := store.Load()
	require.Len(t, st.Cart, 1)
	assert.Equal(t, int64(1), st.Cart[0].Quantity)

	require.NoError(t, s.UpdateQty(1, 4))
	st, _ = store.Load()
	assert.Equal(t, int64(4), st.Cart[0].Quantity)

	require.NoError(t, s.RemoveFromCart(1))
	st, _ = store.Load()
	assert.Empty(t, st.Cart)
}
