package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	r := require.New(t)

	t.Setenv("DBQUERY_TEST_USER", "db2inst1")

	testCases := []struct {
		input    string
		expected string
	}{
		{"normal string", "normal string"},
		{"{{ env `HOME` }}", os.Getenv("HOME")},
		{"db2://{{ env `DBQUERY_TEST_USER` }}@localhost:50000/testdb", "db2://db2inst1@localhost:50000/testdb"},
		{"{{ env `DBQUERY_TEST_UNSET` | default `50000` }}", "50000"},
		{"{{ exec `echo \"hello\nbuddy\" | grep buddy` }}", "buddy"},
	}

	for _, tc := range testCases {
		actual, err := expand(tc.input)
		r.NoError(err)

		r.Equal(tc.expected, actual)
	}
}

func TestExpand_Error(t *testing.T) {
	_, err := expand("{{ nope }}")
	require.Error(t, err)

	require.Equal(t, "{{ nope }}", expandOrDefault("{{ nope }}"))
}

func TestConnectionParams_Expand(t *testing.T) {
	t.Setenv("DBQUERY_TEST_URL", "sqlite://file.db")

	params := &ConnectionParams{
		ID:   "local",
		Name: "Local",
		Type: "sqlite",
		URL:  "{{ env `DBQUERY_TEST_URL` }}",
	}

	expanded := params.Expand()
	require.Equal(t, "sqlite://file.db", expanded.URL)
	require.Equal(t, ConnectionID("local"), expanded.ID)

	// original stays untouched
	require.Equal(t, "{{ env `DBQUERY_TEST_URL` }}", params.URL)
}
