// ingest/downloader_test.go
package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yataco/dashboard/backend/config"
)

func withRemoteConfig(t *testing.T) {
	t.Helper()
	saved := config.AppConfig
	config.AppConfig = config.Defaults()
	config.AppConfig.Remote.RetryMax = 0
	config.AppConfig.Remote.Timeout = 5 * time.Second
	config.AppConfig.Server.MaxUploadMB = 1
	t.Cleanup(func() { config.AppConfig = saved })
}

func TestFetchRemote(t *testing.T) {
	withRemoteConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/export":
			w.Header().Set("Content-Disposition", `attachment; filename="matricula 2026.csv"`)
			_, _ = w.Write([]byte("Sede,Cupo\nSURCO,10\n"))
		case "/files/cursos.xlsx":
			_, _ = w.Write([]byte("PK"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 1<<20+1)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	name, data, err := FetchRemote(context.Background(), srv.URL+"/export")
	require.NoError(t, err)
	assert.Equal(t, "matricula 2026.csv", name)
	assert.Equal(t, "Sede,Cupo\nSURCO,10\n", string(data))

	name, _, err = FetchRemote(context.Background(), srv.URL+"/files/cursos.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "cursos.xlsx", name)

	_, _, err = FetchRemote(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, _, err = FetchRemote(context.Background(), srv.URL+"/big")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 1 MB")
}

func TestRemoteFileName(t *testing.T) {
	assert.Equal(t, "a.csv", remoteFileName("https://host/x/a.csv?token=1", ""))
	assert.Equal(t, "b.xlsx", remoteFileName("https://host/x", `attachment; filename="../b.xlsx"`))
	assert.Equal(t, "download", remoteFileName("https://host/", ""))
}
