package vector

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_QueryRanksByCosine(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, []Record{
		{ID: "jemaa-el-fna", Values: []float32{1, 0}, Metadata: map[string]string{"source": "Jemaa el-Fna"}},
		{ID: "majorelle", Values: []float32{0, 1}, Metadata: map[string]string{"source": "Jardin Majorelle"}},
		{ID: "medina", Values: []float32{1, 1}, Metadata: map[string]string{"source": "Medina"}},
	}))

	got, err := s.Query(ctx, []float32{1, 0.1}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "jemaa-el-fna", got[0].ID)
	assert.Equal(t, "medina", got[1].ID)
	assert.Equal(t, "Jemaa el-Fna", got[0].Metadata["source"])
}

func TestMemoryStore_UpsertOverwritesByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, []Record{{ID: "a", Values: []float32{1, 0}, Metadata: map[string]string{"v": "1"}}}))
	require.NoError(t, s.Upsert(ctx, []Record{{ID: "a", Values: []float32{0, 1}, Metadata: map[string]string{"v": "2"}}}))

	assert.Equal(t, 1, s.Len())
	got, err := s.Query(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	want := []Match{{ID: "a", Score: 1, Metadata: map[string]string{"v": "2"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_Errors(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Query(ctx, []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, got, "empty store returns no matches")

	require.NoError(t, s.Upsert(ctx, []Record{{ID: "a", Values: []float32{1, 2, 3}}}))

	err = s.Upsert(ctx, []Record{{ID: "b", Values: []float32{1}}})
	var vErr *VectorError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "validation", vErr.Type)

	_, err = s.Query(ctx, []float32{1, 2}, 3)
	assert.Error(t, err)

	err = s.Upsert(ctx, []Record{{ID: "c"}})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Query(cancelled, []float32{1, 2, 3}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_RejectedBatchStoresNothing(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store keeps no dimension", func(t *testing.T) {
		s := NewMemoryStore()
		err := s.Upsert(ctx, []Record{
			{ID: "a", Values: []float32{1, 0, 0}},
			{ID: "b", Values: []float32{1, 0}},
		})
		var vErr *VectorError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "validation", vErr.Type)
		assert.Equal(t, 0, s.Len())

		require.NoError(t, s.Upsert(ctx, []Record{{ID: "b", Values: []float32{1, 0}}}))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("existing records untouched", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Upsert(ctx, []Record{{ID: "a", Values: []float32{1, 0}, Metadata: map[string]string{"v": "1"}}}))

		err := s.Upsert(ctx, []Record{
			{ID: "a", Values: []float32{0, 1}, Metadata: map[string]string{"v": "2"}},
			{ID: "c", Values: []float32{0, 1}},
			{ID: "", Values: []float32{1, 1}},
		})
		require.Error(t, err)
		assert.Equal(t, 1, s.Len())

		got, err := s.Query(ctx, []float32{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].Metadata["v"])
	})
}

func TestMetadataRoundTrip(t *testing.T) {
	meta := map[string]string{"source": "Chefchaouen", "content": "Lieu: Chefchaouen"}
	s, err := toMetadata(meta)
	require.NoError(t, err)
	assert.Equal(t, meta, fromMetadata(s))
	assert.Empty(t, fromMetadata(nil))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate())

	cfg.APIKey = "pk"
	cfg.IndexHost = "zelig-abc.svc.pinecone.io"
	assert.NoError(t, cfg.Validate())

	cfg.BatchSize = 0
	assert.Error(t, cfg.Validate())
}
