package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ids(t *testing.T, s *MemStore) []int {
	t.Helper()
	ps, err := s.ListAll(context.Background())
	require.NoError(t, err)
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestMemStore_SeedOrder(t *testing.T) {
	s := NewMemStore(DefaultProducts()...)

	ps, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 3)
	require.Equal(t, "Laptop", ps[0].Name)
	require.Equal(t, "Mouse", ps[1].Name)
	require.Equal(t, "Keyboard", ps[2].Name)
	require.True(t, ps[0].Price.Equal(decimal.NewFromInt(1500)))
}

func TestMemStore_EmptyListIsNotNil(t *testing.T) {
	ps, err := NewMemStore().ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ps)
	require.Empty(t, ps)
}

func TestMemStore_InsertAssignsNextID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	p, err := s.Insert(ctx, Product{ID: 99, Name: "Monitor", Price: decimal.NewFromInt(300)})
	require.NoError(t, err)
	require.Equal(t, 4, p.ID)

	got, err := s.FindByID(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, "Monitor", got.Name)
	require.Nil(t, got.Description)
	require.True(t, got.Price.Equal(decimal.NewFromInt(300)))

	_, err = s.FindByID(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemStore_EmptyStoreStartsAtOne(t *testing.T) {
	p, err := NewMemStore().Insert(context.Background(), Product{Name: "First"})
	require.NoError(t, err)
	require.Equal(t, 1, p.ID)
}

func TestMemStore_IDsNotReusedAfterRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	require.NoError(t, s.Remove(ctx, 3))

	p, err := s.Insert(ctx, Product{Name: "Webcam"})
	require.NoError(t, err)
	require.Equal(t, 4, p.ID)
}

func TestMemStore_InsertRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)
	before, err := s.ListAll(ctx)
	require.NoError(t, err)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.Insert(ctx, Product{Name: name, Price: decimal.NewFromInt(1)})
		require.ErrorIs(t, err, ErrInvalidProduct, "name %q", name)
	}

	after, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)

	p, err := s.Insert(ctx, Product{Name: "Next"})
	require.NoError(t, err)
	require.Equal(t, 4, p.ID)
}

func TestMemStore_Replace(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	desc := "Ergonomic"
	err := s.Replace(ctx, 2, Product{ID: 50, Name: "Trackball", Description: &desc, Price: decimal.RequireFromString("42.50")})
	require.NoError(t, err)

	got, err := s.FindByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, got.ID)
	require.Equal(t, "Trackball", got.Name)
	require.NotNil(t, got.Description)
	require.Equal(t, "Ergonomic", *got.Description)
	require.True(t, got.Price.Equal(decimal.RequireFromString("42.5")))

	require.Equal(t, []int{1, 2, 3}, ids(t, s))

	require.NoError(t, s.Replace(ctx, 2, Product{Name: "Trackball"}))
	got, err = s.FindByID(ctx, 2)
	require.NoError(t, err)
	require.Nil(t, got.Description)
	require.True(t, got.Price.IsZero())
}

func TestMemStore_ReplaceErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	require.ErrorIs(t, s.Replace(ctx, 42, Product{Name: "Ghost"}), ErrNotFound)
	require.ErrorIs(t, s.Replace(ctx, 1, Product{Name: " "}), ErrInvalidProduct)
	require.ErrorIs(t, s.Replace(ctx, 42, Product{Name: ""}), ErrNotFound, "missing id is reported before a blank name")

	got, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Laptop", got.Name)
}

func TestMemStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	require.NoError(t, s.Remove(ctx, 2))
	require.Equal(t, []int{1, 3}, ids(t, s))

	_, err := s.FindByID(ctx, 2)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Remove(ctx, 2), ErrNotFound)
}

func TestMemStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	got, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	*got.Description = "changed"
	got.Name = "changed"

	again, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Laptop", again.Name)
	require.Equal(t, "Gaming Laptop", *again.Description)

	desc := "mine"
	in := Product{Name: "Cable", Description: &desc}
	p, err := s.Insert(ctx, in)
	require.NoError(t, err)
	desc = "mutated"

	stored, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "mine", *stored.Description)
}

func TestMemStore_ConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	const n = 200
	got := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Insert(ctx, Product{Name: "Widget"})
			if err != nil {
				t.Errorf("insert: %v", err)
				return
			}
			got <- p.ID
		}()
	}
	wg.Wait()
	close(got)

	seen := make(map[int]struct{}, n)
	for id := range got {
		require.Greater(t, id, 3)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, n)
	require.Len(t, ids(t, s), n+3)
}

func TestMemStore_ConcurrentMixedOps(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(DefaultProducts()...)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = s.Insert(ctx, Product{Name: "Item"})
		}()
		go func() {
			defer wg.Done()
			_ = s.Replace(ctx, 1, Product{Name: "Laptop Pro"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.ListAll(ctx)
		}()
	}
	wg.Wait()

	require.NoError(t, s.Remove(ctx, 1))
	require.ErrorIs(t, s.Remove(ctx, 1), ErrNotFound)
	require.Len(t, ids(t, s), 52)
}
