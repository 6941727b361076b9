package store

import (
	"context"
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mazda() Product {
	return Product{ID: 6, Name: ptr("Mazda 2"), Description: ptr("Small compact model")}
}

func testProduct() Product {
	return Product{ID: 7, Name: ptr("test produce"), Description: ptr("I created this to do test on")}
}

func Test_InMemory_FindAll_Seeded(t *testing.T) {
	// given
	s := NewInMemoryStore()

	// when
	products, err := s.FindAll(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, products, 5, "fresh store should hold the seed catalog")
	for i, p := range products {
		assert.Equal(t, i+1, p.ID, "seed should keep insertion order")
	}
	assert.Equal(t, 5, s.Count(context.Background()))
}

func Test_InMemory_FindAll_Idempotent(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	first, err := s.FindAll(ctx)
	require.NoError(t, err)
	second, err := s.FindAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func Test_InMemory_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		id          int
		expected    *Product
		expectError error
	}{
		{
			name:     "Success - seeded product",
			id:       1,
			expected: &Product{ID: 1, Name: ptr("Honda Civic"), Description: ptr("Luxury Model 2013")},
		},
		{
			name:        "Error - id never inserted",
			id:          7,
			expectError: perrors.ErrProductNotFound,
		},
		{
			name:        "Error - negative id",
			id:          -1,
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore()
			// when
			found, err := s.FindByID(context.Background(), tc.id)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_InMemory_FindByDescription(t *testing.T) {
	testCases := []struct {
		name        string
		text        string
		expectedIDs []int
	}{
		{name: "exact match", text: "Luxury Model 2013", expectedIDs: []int{1}},
		{name: "partial text does not match", text: "Luxury", expectedIDs: []int{}},
		{name: "case sensitive", text: "luxury model 2013", expectedIDs: []int{}},
		{name: "empty text", text: "", expectedIDs: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore()
			// when
			found, err := s.FindByDescription(context.Background(), tc.text)
			// then
			require.NoError(t, err)
			require.NotNil(t, found)
			ids := make([]int, 0, len(found))
			for _, p := range found {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}

	t.Run("match carries the seeded name", func(t *testing.T) {
		s := NewInMemoryStore()
		found, err := s.FindByDescription(context.Background(), "Luxury Model 2013")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Honda Civic", *found[0].Name)
	})

	t.Run("nil description never matches", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()
		_, err := s.Create(ctx, Product{ID: 8, Name: ptr("No description")})
		require.NoError(t, err)

		found, err := s.FindByDescription(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func Test_InMemory_Create(t *testing.T) {
	t.Run("adds one product", func(t *testing.T) {
		// given
		s := NewInMemoryStore()
		ctx := context.Background()
		// when
		created, err := s.Create(ctx, mazda())
		// then
		require.NoError(t, err)
		assert.Equal(t, mazda(), *created)
		products, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 6)
		assert.Equal(t, mazda(), products[5], "new product should be appended last")
	})

	t.Run("adds two products", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()
		before := s.Count(ctx)

		_, err := s.Create(ctx, mazda())
		require.NoError(t, err)
		_, err = s.Create(ctx, testProduct())
		require.NoError(t, err)

		assert.Equal(t, before+2, s.Count(ctx))
	})

	t.Run("duplicate id is accepted", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()
		duplicate := Product{ID: 1, Name: ptr("Second Civic"), Description: ptr("Duplicate")}

		_, err := s.Create(ctx, duplicate)
		require.NoError(t, err)

		assert.Equal(t, 6, s.Count(ctx))
		found, err := s.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Honda Civic", *found.Name, "lookup should return the first match")
	})

	t.Run("nil fields are kept", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()

		_, err := s.Create(ctx, Product{ID: 9})
		require.NoError(t, err)

		found, err := s.FindByID(ctx, 9)
		require.NoError(t, err)
		assert.Nil(t, found.Name)
		assert.Nil(t, found.Description)
	})
}

func Test_InMemory_Update(t *testing.T) {
	testCases := []struct {
		name   string
		update Product
	}{
		{
			name:   "new values",
			update: Product{ID: 6, Name: ptr("Mazda 3"), Description: ptr("Similar to Mazda 2 but with more features")},
		},
		{
			name:   "nil values",
			update: Product{ID: 6},
		},
		{
			name:   "empty values",
			update: Product{ID: 6, Name: ptr(""), Description: ptr("")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore()
			ctx := context.Background()
			_, err := s.Create(ctx, mazda())
			require.NoError(t, err)
			// when
			updated, err := s.Update(ctx, tc.update)
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.update, *updated)
			found, err := s.FindByID(ctx, tc.update.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.update, *found)
			assert.Equal(t, 6, s.Count(ctx), "update should not change the collection length")
		})
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()
		before, err := s.FindAll(ctx)
		require.NoError(t, err)

		updated, err := s.Update(ctx, Product{ID: 42, Name: ptr("Ghost")})

		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
		assert.Nil(t, updated)
		after, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func Test_InMemory_DeleteByID(t *testing.T) {
	t.Run("removes posted product", func(t *testing.T) {
		// given
		s := NewInMemoryStore()
		ctx := context.Background()
		_, err := s.Create(ctx, mazda())
		require.NoError(t, err)
		// when
		deleted, err := s.DeleteByID(ctx, 6)
		// then
		require.NoError(t, err)
		assert.Equal(t, mazda(), *deleted)
		assert.Equal(t, 5, s.Count(ctx))
		_, err = s.FindByID(ctx, 6)
		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()

		deleted, err := s.DeleteByID(ctx, 6)

		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
		assert.Nil(t, deleted)
		assert.Equal(t, 5, s.Count(ctx))
	})

	t.Run("keeps order of remaining products", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := context.Background()

		_, err := s.DeleteByID(ctx, 3)
		require.NoError(t, err)

		products, err := s.FindAll(ctx)
		require.NoError(t, err)
		ids := make([]int, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []int{1, 2, 4, 5}, ids)
	})

	t.Run("removes only products without name or description", func(t *testing.T) {
		// given
		s := NewInMemoryStore()
		ctx := context.Background()
		_, err := s.Create(ctx, Product{ID: 8, Name: nil, Description: ptr("No name")})
		require.NoError(t, err)
		_, err = s.Create(ctx, Product{ID: 9, Name: ptr("No description"), Description: nil})
		require.NoError(t, err)
		require.Equal(t, 7, s.Count(ctx))

		// when
		products, err := s.FindAll(ctx)
		require.NoError(t, err)
		for _, p := range products {
			if p.Name == nil || p.Description == nil {
				_, err := s.DeleteByID(ctx, p.ID)
				require.NoError(t, err)
			}
		}

		// then
		remaining, err := s.FindAll(ctx)
		require.NoError(t, err)
		ids := make([]int, 0, len(remaining))
		for _, p := range remaining {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
		_, err = s.FindByID(ctx, 8)
		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
		_, err = s.FindByID(ctx, 9)
		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	})
}

func Test_InMemory_ReturnsCopies(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	input := mazda()
	_, err := s.Create(ctx, input)
	require.NoError(t, err)
	*input.Name = "Changed by caller"

	found, err := s.FindByID(ctx, 6)
	require.NoError(t, err)
	*found.Description = "Changed after read"

	again, err := s.FindByID(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, mazda(), *again)
}

func Test_InMemory_IndependentStores(t *testing.T) {
	ctx := context.Background()
	first := NewInMemoryStore()
	_, err := first.Create(ctx, mazda())
	require.NoError(t, err)

	second := NewInMemoryStore()

	assert.Equal(t, 6, first.Count(ctx))
	assert.Equal(t, 5, second.Count(ctx))
}
