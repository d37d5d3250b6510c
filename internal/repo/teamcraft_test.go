package repo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/fetch"
)

func newRemoteConfig(base string) *appconfig.Config {
	return &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		TeamcraftBaseURL:    base,
		DataminingCnBaseURL: base,
		FetchConcurrency:    4,
	}}
}

func TestTeamcraftLoad(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items.json":
			_, _ = w.Write([]byte(`{"1":{"en":"Gil","ja":"ギル"}}`))
		case "/places.json":
			_, _ = w.Write([]byte(`{"28":{"en":"Limsa Lominsa"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := fetch.New(fetch.Options{Timeout: time.Second})
	r := NewTeamcraft(newRemoteConfig(srv.URL+"/"), client)
	require.NoError(t, r.Load(context.Background()))

	t.Run("FetchedDocsAvailable", func(t *testing.T) {
		items, ok := r.Doc("items")
		require.True(t, ok)
		assert.Equal(t, "Gil", items.Get("1.en").String())
	})

	t.Run("UnfetchableDocsAreMissingNotFatal", func(t *testing.T) {
		_, ok := r.Doc("mobs")
		assert.False(t, ok)
		assert.Contains(t, r.Missing(), "teamcraft/mobs")
	})

	t.Run("MissingListIsSorted", func(t *testing.T) {
		missing := r.Missing()
		// 16 docs total, 2 served
		assert.Len(t, missing, len(TeamcraftDocs)-2)
		assert.IsIncreasing(t, missing)
	})
}

func TestDataminingLoad(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/Item.csv" {
			_, _ = w.Write([]byte("key,0\n#,Name\nint32,str\n5,铜矿\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := fetch.New(fetch.Options{Timeout: time.Second})
	r := NewDatamining(newRemoteConfig(srv.URL+"/"), client)
	require.NoError(t, r.Load(context.Background()))

	t.Run("FetchedSheetParses", func(t *testing.T) {
		row, ok := r.Sheet("Item").Row(5)
		require.True(t, ok)
		assert.Equal(t, "铜矿", row.Str("Name"))
	})

	t.Run("UnfetchableSheetIsEmpty", func(t *testing.T) {
		assert.Equal(t, 0, r.Sheet("Quest").Len())
		assert.Contains(t, r.Missing(), "datamining-cn/Quest")
	})
}
