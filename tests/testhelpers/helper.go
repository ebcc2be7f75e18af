// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/kndndrj/dbquery/adapters"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/query"
)

// CountryRows is the number of rows every seed file inserts into COUNTRY.
const CountryRows = 1008

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// NewConnection fills in defaults and connects through the adapter registry.
func NewConnection(params *core.ConnectionParams, typ, url string) (*core.Connection, error) {
	if params.Type == "" {
		params.Type = typ
	}
	if params.URL == "" {
		params.URL = url
	}

	return adapters.NewConnection(params)
}

// Collect executes the query and returns all of its rows.
func Collect(t *testing.T, conn *core.Connection, q *query.Query) ([]core.Row, core.Header) {
	t.Helper()

	ds, err := conn.ExecuteQuery(context.Background(), q)
	require.NoError(t, err)

	res, err := core.Collect(ds)
	require.NoError(t, err, "query: %s", ds.Query())

	rows, err := res.Rows(0, res.Len())
	require.NoError(t, err)

	return rows, res.Header()
}

// Strings renders the column at index of every row with fmt.Sprint and trims
// the padding of fixed width character types.
func Strings(rows []core.Row, index int) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = strings.TrimSpace(fmt.Sprint(row[index]))
	}
	return out
}

// CountryCodes returns the codes of the seeded countries with 1-based
// numbers in [from, to].
func CountryCodes(from, to int) []string {
	var out []string
	for n := from; n <= to; n++ {
		out = append(out, fmt.Sprintf("C%04d", n))
	}
	return out
}

// GetTestDataPath returns the path to the testdata directory.
func GetTestDataPath() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}

	return filepath.Join(filepath.Dir(currentFile), "../testdata"), nil
}

// GetTestDataFile returns a file from the testdata directory.
func GetTestDataFile(filename string) (*os.File, error) {
	testDataPath, err := GetTestDataPath()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(testDataPath, filename)
	return os.Open(path)
}
