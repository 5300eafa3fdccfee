package audit_test

import (
	"context"
	"testing"

	"github.com/gnames/esdveg/pkg/ent/audit"
	"github.com/gnames/esdveg/pkg/ent/plant"
	"github.com/gnames/esdveg/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit(t *testing.T) {
	pool := parserpool.New(2)
	defer pool.Close()

	idx := plant.NewIndex([]plant.Record{
		{ScientificName: "Artemisia tridentata", AcceptedSymbol: "ARTR2"},
		{ScientificName: "Poa secunda", AcceptedSymbol: "POSE"},
	})
	counts := map[string]int{
		"Artemisia tridentata Nutt.": 3,
		"Poa  secunda":               1,
		"Cercocarpus montanus":       5,
		"unknown shrub":              2,
	}

	a := audit.New(pool, idx, 2)
	res, err := a.Audit(context.Background(), counts)
	require.NoError(t, err)
	require.Len(t, res, 4)

	assert.Equal(t, audit.Finding{
		Name:        "Artemisia tridentata Nutt.",
		Occurrences: 3,
		Canonical:   "Artemisia tridentata",
		Suggested:   "ARTR2",
	}, res[0])
	assert.Equal(t, "Cercocarpus montanus", res[1].Name)
	assert.Equal(t, "Cercocarpus montanus", res[1].Canonical)
	assert.Empty(t, res[1].Suggested)
	assert.Equal(t, "Poa  secunda", res[2].Name)
	assert.Equal(t, "POSE", res[2].Suggested)
	assert.Equal(t, "unknown shrub", res[3].Name)
	assert.Empty(t, res[3].Suggested)

	sug := audit.Suggestions(res)
	assert.Len(t, sug, 2)

	top := audit.TopByOccurrence(res, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Cercocarpus montanus", top[0].Name)
	assert.Equal(t, "Artemisia tridentata Nutt.", top[1].Name)
}

func TestAuditCancelled(t *testing.T) {
	pool := parserpool.New(1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := audit.New(pool, plant.NewIndex(nil), 1)
	_, err := a.Audit(ctx, map[string]int{"Poa secunda": 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuditEmpty(t *testing.T) {
	pool := parserpool.New(1)
	defer pool.Close()

	a := audit.New(pool, plant.NewIndex(nil), 1)
	res, err := a.Audit(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}
