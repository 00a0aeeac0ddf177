package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmonkmol38/DashNew1/internal/config"
	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/ingest"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	uploaded := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	sess := &domain.Session{
		Sheets: map[domain.SheetKind][]domain.Row{
			domain.SheetFleetManagement: {
				{
					"Date":           time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
					"BUSINESS UNITS": "Logistics",
					"REVENUE":        "100",
				},
			},
		},
		FileName:   "report.xlsx",
		UploadedAt: uploaded,
		Warnings:   []string{"sheet \"Job Card\" not found in workbook"},
	}
	require.NoError(t, store.Set(ctx, sess))

	restored, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "report.xlsx", restored.FileName)
	assert.True(t, uploaded.Equal(restored.UploadedAt))
	assert.Equal(t, sess.Warnings, restored.Warnings)

	rows := restored.Rows(domain.SheetFleetManagement)
	require.Len(t, rows, 1)

	t.Run("date cells degrade to strings but still resolve", func(t *testing.T) {
		raw, isString := rows[0]["Date"].(string)
		require.True(t, isString)
		assert.Equal(t, "2024-01-15T00:00:00Z", raw)

		my, ok := ingest.ResolveDate(domain.SheetFleetManagement, rows[0])
		require.True(t, ok)
		assert.Equal(t, "JAN", my.Month)
		assert.Equal(t, "2024", my.Year)
	})

	t.Run("clear removes the blob", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		_, ok, err := store.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func configWithBackend(backend string) config.SessionConfig {
	return config.SessionConfig{Backend: backend}
}

func TestNewStore_UnknownBackend(t *testing.T) {
	_, err := NewStore(configWithBackend("etcd"))
	assert.Error(t, err)
}

func TestNewStore_Memory(t *testing.T) {
	store, err := NewStore(configWithBackend("memory"))
	require.NoError(t, err)
	assert.NotNil(t, store)
}
