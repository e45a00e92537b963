package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr"
	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/bin"
	"github.com/hupe1980/graphattr/blobstore"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordConversion("long", nil)
	c.RecordConversion("long", errors.New("bad"))
	c.RecordEvaluation("SUM", time.Microsecond, nil)
	c.RecordBinPass("max(long)/transactions", 10, time.Millisecond)
	c.RecordSnapshot("save", 512, time.Millisecond, nil)
	c.RecordSnapshot("load", 0, time.Millisecond, errors.New("missing"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.conversions.WithLabelValues("long", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.conversions.WithLabelValues("long", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("SUM", "ok")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.binElements.WithLabelValues("max(long)/transactions")))
	assert.Equal(t, 512.0, testutil.ToFloat64(c.snapshotBytes.WithLabelValues("save")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.snapshotFailures.WithLabelValues("load")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "graphattr_bin_pass_duration_seconds")
	assert.Contains(t, names, "graphattr_snapshot_duration_seconds")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestEngineIntegration(t *testing.T) {
	ctx := context.Background()
	c := New(prometheus.NewRegistry())
	eng := graphattr.New(graphattr.WithMetricsCollector(c))

	g := eng.Graph()
	v := g.AddVertex()
	tx, err := g.AddTransaction(v, v)
	require.NoError(t, err)
	weight, err := eng.AddAttribute(attribute.ElementTransaction, "weight", "long")
	require.NoError(t, err)
	require.NoError(t, eng.Set(ctx, weight, tx, int64(3)))

	spec := graphattr.BinSpec{Attribute: weight, Reduction: bin.Sum, Projection: bin.Long}
	_, _, err = eng.Bins(ctx, spec)
	require.NoError(t, err)

	_, err = eng.Save(ctx, blobstore.NewMemoryStore(), "m")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.conversions.WithLabelValues("long", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.binPasses.WithLabelValues(spec.String())))
	assert.Positive(t, testutil.ToFloat64(c.snapshotBytes.WithLabelValues("save")))
}
