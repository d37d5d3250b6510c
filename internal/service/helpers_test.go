package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/fetch"
	"github.com/tataru-works/xivmill/internal/repo"
)

// sheetCSV composes a minimal indexed dump: header is a comma-joined list
// of column names, rows are raw data lines starting with the row key.
func sheetCSV(header string, rows ...string) string {
	cols := strings.Split(header, ",")

	var b strings.Builder
	b.WriteString("key")
	for i := range cols {
		fmt.Fprintf(&b, ",%d", i)
	}
	b.WriteString("\n#," + header + "\n")
	b.WriteString("int32" + strings.Repeat(",str", len(cols)) + "\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

// fixtureConf lays the local sheet fixtures into a temp data dir and serves
// the remote fixtures from one test server.
func fixtureConf(t *testing.T, sheets map[string]string, docs map[string]string, cnSheets map[string]string) *appconfig.Config {
	t.Helper()

	dir := t.TempDir()
	for name, content := range sheets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".csv"), []byte(content), 0o644))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if strings.HasSuffix(name, ".json") {
			if doc, ok := docs[strings.TrimSuffix(name, ".json")]; ok {
				_, _ = w.Write([]byte(doc))
				return
			}
		}
		if strings.HasSuffix(name, ".csv") {
			if sheet, ok := cnSheets[strings.TrimSuffix(name, ".csv")]; ok {
				_, _ = w.Write([]byte(sheet))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	return &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		DataDir:             dir,
		OutDir:              filepath.Join(t.TempDir(), "dist"),
		TeamcraftBaseURL:    srv.URL + "/",
		DataminingCnBaseURL: srv.URL + "/",
		FetchConcurrency:    4,
	}}
}

// buildRepos loads the three repos from in-memory fixtures.
func buildRepos(t *testing.T, sheets map[string]string, docs map[string]string, cnSheets map[string]string) (*repo.Sheets, *repo.Teamcraft, *repo.Datamining) {
	t.Helper()

	conf := fixtureConf(t, sheets, docs, cnSheets)
	client := fetch.New(fetch.Options{Timeout: time.Second})

	sheetsRepo := repo.NewSheets(conf)
	require.NoError(t, sheetsRepo.Load())

	teamcraftRepo := repo.NewTeamcraft(conf, client)
	require.NoError(t, teamcraftRepo.Load(context.Background()))

	dataminingRepo := repo.NewDatamining(conf, client)
	require.NoError(t, dataminingRepo.Load(context.Background()))

	return sheetsRepo, teamcraftRepo, dataminingRepo
}

// builtRefData is buildRepos plus a completed reference table build.
func builtRefData(t *testing.T, sheets map[string]string, docs map[string]string, cnSheets map[string]string) *RefData {
	t.Helper()

	sheetsRepo, teamcraftRepo, dataminingRepo := buildRepos(t, sheets, docs, cnSheets)
	ref := NewRefData(sheetsRepo, teamcraftRepo, dataminingRepo)
	ref.Build()
	return ref
}
