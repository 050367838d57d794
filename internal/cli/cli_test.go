package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/internal/catalogsrv/server"
	"github.com/assetdash/assetdash/internal/common/httpclient"
)

func newTestClient(t *testing.T) httpclient.HTTPClientInterface {
	color.NoColor = true
	c, err := catalogstore.Bundled()
	require.NoError(t, err)
	s, err := server.CreateNewServer(apis.NewBackend(c, catalogview.NewCache(8)))
	require.NoError(t, err)
	s.MountHandlers()
	return httpclient.NewTestClient(&Config{ServerURL: "http://assetdash.test:8194"}, s.Router)
}

func runCmd(t *testing.T, client httpclient.HTTPClientInterface, args ...string) (string, error) {
	cmd := newRootCmd(&rootOptions{client: client})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAssetsList(t *testing.T) {
	client := newTestClient(t)

	out, err := runCmd(t, client, "assets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Johan Sverdrup")
	assert.Contains(t, out, "Showing 9 of 9 assets")

	out, err = runCmd(t, client, "assets", "list", "--country", "Norway", "--type", "Refinery")
	require.NoError(t, err)
	assert.Contains(t, out, "Mongstad Refinery")
	assert.Contains(t, out, "Showing 1 of 9 assets")

	out, err = runCmd(t, client, "assets", "list", "-q", "wind", "--sort", "name")
	require.NoError(t, err)
	dogger := strings.Index(out, "Dogger Bank")
	empire := strings.Index(out, "Empire Wind")
	hywind := strings.Index(out, "Hywind Tampen")
	require.True(t, dogger > 0 && empire > 0 && hywind > 0, out)
	assert.Less(t, dogger, empire)
	assert.Less(t, empire, hywind)

	out, err = runCmd(t, client, "assets", "list", "-j", "--planet", "Low")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.Get(out, "result").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "value.count").Int())
	assert.Equal(t, "EQ-UK-002", gjson.Get(out, "value.assets.0.asset_id").String())

	_, err = runCmd(t, client, "assets", "list", "--sort", "size")
	assert.Error(t, err)
}

func TestAssetsGet(t *testing.T) {
	client := newTestClient(t)

	out, err := runCmd(t, client, "assets", "get", "EQ-BR-001")
	require.NoError(t, err)
	assert.Contains(t, out, "asset_id: EQ-BR-001")
	assert.Contains(t, out, "name: Peregrino")

	out, err = runCmd(t, client, "assets", "get", "-j", "EQ-BR-001")
	require.NoError(t, err)
	assert.Equal(t, "Brazil", gjson.Get(out, "value.location.country").String())

	_, err = runCmd(t, client, "assets", "get", "EQ-XX-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset not found")

	_, err = runCmd(t, client, "assets", "get")
	assert.Error(t, err)
}

func TestStatsColorsFacets(t *testing.T) {
	client := newTestClient(t)

	out, err := runCmd(t, client, "stats", "--country", "Norway")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`Assets:\s+5 of 9`), out)
	assert.Regexp(t, regexp.MustCompile(`Countries:\s+1 of 4`), out)
	assert.Regexp(t, regexp.MustCompile(`Operational:\s+5 of 7`), out)

	out, err = runCmd(t, client, "colors")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], "Oil Field"), lines[0])
	assert.True(t, strings.HasSuffix(lines[4], "Offshore Wind Farm"), lines[4])

	out, err = runCmd(t, client, "facets")
	require.NoError(t, err)
	assert.Contains(t, out, "Countries:\n- Brazil\n- Norway\n- United Kingdom\n- United States\n")
	assert.Contains(t, out, "Asset Types:")
	assert.Contains(t, out, "Sentinel-2 Coverage:")
}

func TestStatusAndVersion(t *testing.T) {
	client := newTestClient(t)

	out, err := runCmd(t, client, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "API Version: v1")
	assert.Contains(t, out, "Ready: true")

	out, err = runCmd(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "assetdash "+Version+"\n", out)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetdash", "config.yaml")

	out, err := runCmd(t, nil, "config", "create", "--config", path, "--server", "localhost:8194")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCmd(t, nil, "config", "create", "--config", path, "--server", "localhost:9000")
	assert.Error(t, err)

	_, err = runCmd(t, nil, "config", "create", "--config", path, "--server", "localhost")
	assert.Error(t, err)

	out, err = runCmd(t, nil, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Server: http://localhost:8194\n", out)

	_, err = runCmd(t, nil, "assets", "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config create")
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(in, catalogstore.BundledBytes(), 0o600))

	out, err := runCmd(t, nil, "catalog", "validate", in)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Assets: 9, Countries: 4, Asset Types: 5, Operational: 7")
	assert.NotContains(t, out, "Warning")

	packed := filepath.Join(dir, "catalog.yaml.zst")
	out, err = runCmd(t, nil, "catalog", "pack", in, packed)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 9 assets")

	ref, err := catalogstore.Bundled()
	require.NoError(t, err)
	out, err = runCmd(t, nil, "catalog", "validate", "-j", packed)
	require.NoError(t, err)
	assert.Equal(t, ref.Fingerprint(), gjson.Get(out, "value.fingerprint").String())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"metadata":{},"assets":[{}]}`), 0o600))
	_, err = runCmd(t, nil, "catalog", "validate", bad)
	assert.Error(t, err)

	_, err = runCmd(t, nil, "catalog", "pack", in, filepath.Join(dir, "catalog.toml"))
	assert.Error(t, err)
}

func TestCatalogBundled(t *testing.T) {
	out, err := runCmd(t, nil, "catalog", "validate", "bundled")
	require.NoError(t, err)
	assert.Contains(t, out, "Assets: 9, Countries: 4, Asset Types: 5, Operational: 7")

	exported := filepath.Join(t.TempDir(), "catalog.yaml")
	out, err = runCmd(t, nil, "catalog", "pack", "bundled", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 9 assets")

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	c, err := catalogstore.Parse(data, exported)
	require.NoError(t, err)
	ref, err := catalogstore.Bundled()
	require.NoError(t, err)
	assert.Equal(t, ref.Fingerprint(), c.Fingerprint())
}

func TestColorStatus(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	assert.Equal(t, color.New(color.FgGreen).Sprint("OPERATIONAL"), colorStatus("OPERATIONAL"))
	assert.Equal(t, color.New(color.FgHiBlack).Sprint("Decommissioned"), colorStatus("Decommissioned"))
	assert.Equal(t, color.New(color.FgYellow).Sprint("Under Construction"), colorStatus("Under Construction"))
	assert.Equal(t, "Suspended", colorStatus("Suspended"))
	assert.Equal(t, "", colorStatus(""))
}
