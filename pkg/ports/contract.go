package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/regula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPatternStoreContract runs a suite of tests to verify that a PatternStore
// implementation adheres to the defined interface contract.
func RunPatternStoreContract(t *testing.T, store PatternStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		p := domain.Pattern{Name: name, Expr: "(ab)*c", Description: "contract", Tags: []string{"x", "y"}}
		require.NoError(t, store.Save(ctx, p), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, p, loaded)
	})

	t.Run("Save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Pattern{Name: name, Expr: "a"}))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "a", loaded.Expr)
		assert.Empty(t, loaded.Tags)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Pattern{Name: name, Expr: "a", Tags: []string{"keep"}}))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded.Tags[0] = "mutated"

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, again.Tags)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+name)
		assert.ErrorIs(t, err, domain.ErrPatternNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Pattern{Name: name, Expr: "a"}))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrPatternNotFound, "Load after Delete should return ErrPatternNotFound")
		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing pattern is a no-op")
	})

	t.Run("Reserved-looking names", func(t *testing.T) {
		// Names a store might use for its own bookkeeping are still ordinary patterns.
		for _, n := range []string{"index", "patterns"} {
			require.NoError(t, store.Save(ctx, domain.Pattern{Name: n, Expr: "a"}))
		}
		require.NoError(t, store.Save(ctx, domain.Pattern{Name: name + "-after", Expr: "b"}))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "index")
		assert.Contains(t, names, "patterns")
		assert.Contains(t, names, name+"-after")

		for _, n := range []string{"index", "patterns", name + "-after"} {
			loaded, err := store.Load(ctx, n)
			require.NoError(t, err)
			assert.Equal(t, n, loaded.Name)
			require.NoError(t, store.Delete(ctx, n))
		}
		names, err = store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "index")
	})

	t.Run("List", func(t *testing.T) {
		id1, id2 := name+"-b", name+"-a"
		require.NoError(t, store.Save(ctx, domain.Pattern{Name: id1, Expr: "b"}))
		require.NoError(t, store.Save(ctx, domain.Pattern{Name: id2, Expr: "a"}))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}
