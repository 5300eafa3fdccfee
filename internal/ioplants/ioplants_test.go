package ioplants_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/esdveg/internal/ioplants"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/gnames/esdveg/pkg/ent/plant"
	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `"Accepted Symbol","Synonym Symbol","Scientific Name","Common Name","Family"
"PIPO","","Pinus ponderosa","ponderosa pine","Pinaceae"
"PIPO","PIPOS","Pinus ponderosa var. scopulorum","","Pinaceae"

"BOGR2","","Bouteloua gracilis","blue grama","Poaceae"
"BOGR2","CHGR","Chondrosum gracile","","Poaceae"
"ARTRW8","","Artemisia tridentata ssp. wyomingensis","Wyoming big sagebrush","Asteraceae"
`

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	return gnErr.Code
}

func TestParse(t *testing.T) {
	res, err := ioplants.Parse("test", strings.NewReader(table))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"accepted_symbol", "synonym_symbol", "scientific_name",
		"common_name", "family",
	}, res.Header)
	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, plant.Record{
		ScientificName: "Pinus ponderosa", AcceptedSymbol: "PIPO",
	}, res.Records[0])
	assert.Equal(t, plant.Record{
		ScientificName: "Chondrosum gracile", AcceptedSymbol: "BOGR2",
	}, res.Records[3])
}

func TestParseCRLF(t *testing.T) {
	data := "\ufeff\"Symbol\",\"Scientific Name\",\"Accepted Symbol\"\r\n" +
		"\"ABCO\",\"Abies concolor\",\"ABCO\"\r\n" +
		"\"ABCO2\",\"Abies concolor var. lowiana\"\r\n"
	res, err := ioplants.Parse("test", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "ABCO", res.Records[0].AcceptedSymbol)
	assert.Equal(t, "Abies concolor var. lowiana",
		res.Records[1].ScientificName)
	assert.Empty(t, res.Records[1].AcceptedSymbol)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		code gn.ErrorCode
	}{
		{"empty", "", errcode.PlantsColumnError},
		{"no name", `"Accepted Symbol","Family"` + "\n" + `"PIPO","Pinaceae"`,
			errcode.PlantsColumnError},
		{"no symbol", `"Symbol","Scientific Name"` + "\n" + `"PIPO","Pinus ponderosa"`,
			errcode.PlantsColumnError},
		{"no rows", `"Accepted Symbol","Scientific Name"` + "\n\n",
			errcode.PlantsEmptyError},
	}

	for _, v := range tests {
		_, err := ioplants.Parse("test", strings.NewReader(v.data))
		assert.Equal(t, v.code, errCode(t, err), v.msg)
	}
}

func TestLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.txt")
	require.NoError(t, os.WriteFile(path, []byte(table), 0644))

	idx, tbl, err := ioplants.LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Rows)
	assert.Equal(t, 5, idx.Len())
	code, ok := idx.Resolve("artemisia tridentata ssp. wyomingensis")
	assert.True(t, ok)
	assert.Equal(t, "ARTRW8", code)

	noValues := `"Accepted Symbol","Scientific Name"` + "\n" + `"",""` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(noValues), 0644))
	_, _, err = ioplants.LoadIndex(path)
	assert.Equal(t, errcode.PlantsEmptyError, errCode(t, err))
}

func TestIsURL(t *testing.T) {
	assert.True(t, ioplants.IsURL("https://plants.usda.gov/plants.txt"))
	assert.True(t, ioplants.IsURL("http://localhost:8080/x"))
	assert.False(t, ioplants.IsURL("/data/plants.txt"))
	assert.False(t, ioplants.IsURL("plants.txt"))
	assert.False(t, ioplants.IsURL("ftp://example.org/plants.txt"))
}

func testConfig(t *testing.T, timeout int) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptPlantsTimeout(timeout),
	})
	return cfg
}

func TestFetchLocal(t *testing.T) {
	cfg := testConfig(t, 5)
	f := ioplants.NewFetcher(cfg, false)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "plants.txt")
	require.NoError(t, os.WriteFile(path, []byte(table), 0644))

	res, err := f.Fetch(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, res)

	_, err = f.Fetch(ctx, filepath.Join(t.TempDir(), "none.txt"))
	assert.Equal(t, errcode.PlantsFetchError, errCode(t, err))

	_, err = f.Fetch(ctx, t.TempDir())
	assert.Equal(t, errcode.PlantsFetchError, errCode(t, err))
}

func TestFetchURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/java/AdvancedSearchServlet", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
<a href="help.html">Help</a>
<p><a href="download/plants_123.txt"> Download </a></p>
</body></html>`))
	})
	mux.HandleFunc("/java/download/plants_123.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(table))
	})
	mux.HandleFunc("/nolink", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><a href="x">Other</a></html>`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()

	t.Run("download page", func(t *testing.T) {
		cfg := testConfig(t, 5)
		f := ioplants.NewFetcher(cfg, false)
		path, err := f.Fetch(ctx, srv.URL+"/java/AdvancedSearchServlet?viewby=sciname")
		require.NoError(t, err)
		assert.Equal(t, config.PlantsCachePath(cfg.HomeDir), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, table, string(data))
	})

	t.Run("direct file", func(t *testing.T) {
		cfg := testConfig(t, 5)
		f := ioplants.NewFetcher(cfg, false)
		path, err := f.Fetch(ctx, srv.URL+"/java/download/plants_123.txt")
		require.NoError(t, err)
		_, tbl, err := ioplants.LoadIndex(path)
		require.NoError(t, err)
		assert.Equal(t, 5, tbl.Rows)
	})

	t.Run("failures keep cache", func(t *testing.T) {
		cfg := testConfig(t, 1)
		cachePath := config.PlantsCachePath(cfg.HomeDir)
		require.NoError(t, os.MkdirAll(filepath.Dir(cachePath), 0755))
		require.NoError(t, os.WriteFile(cachePath, []byte("old"), 0644))

		f := ioplants.NewFetcher(cfg, false)
		for _, p := range []string{"/nolink", "/missing", "/slow"} {
			_, err := f.Fetch(ctx, srv.URL+p)
			assert.Equal(t, errcode.PlantsFetchError, errCode(t, err), p)
		}

		data, err := os.ReadFile(cachePath)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})
}
