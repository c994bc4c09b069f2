package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	httpadapter "github.com/couchcryptid/fars-dashboard/internal/adapter/http"
	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
	"github.com/couchcryptid/fars-dashboard/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FailedLoadReturnsExitCode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CRASHES_SOURCE", filepath.Join(dir, "missing0.txt"))
	t.Setenv("AGE_SOURCE", filepath.Join(dir, "missing1.txt"))
	t.Setenv("BAC_SOURCE", filepath.Join(dir, "missing2.txt"))
	t.Setenv("GEOGRAPHY_SOURCE", filepath.Join(dir, "missing.json"))
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("LOG_LEVEL", "error")

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	assert.Equal(t, 1, run())
}

func TestInstall_RejectsMisalignedDataset(t *testing.T) {
	geo, err := domain.ParseGeography([]byte(`{"bbox":[0,0,960,600],"objects":{"states":{"geometries":[{"id":"01"},{"id":"02"}]}}}`))
	require.NoError(t, err)
	ds := domain.NewDataset(2012, []domain.StateRecord{
		{State: "Alaska", Abbreviation: "AK"},
		{State: "Alabama", Abbreviation: "AL"},
	})

	srv := httpadapter.NewServer("127.0.0.1:0", nil, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	err = install(srv, pipeline.Result{Dataset: ds, Geography: geo})
	require.ErrorIs(t, err, domain.ErrStateIdentityMismatch)
}
