package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/format"
	"github.com/kndndrj/dbquery/core/mock"
)

func TestResult_Rows(t *testing.T) {
	numOfRows := 10
	stream := mock.NewResultStream(mock.NewRows(0, numOfRows))

	result, err := core.Collect(core.NewDataSet(stream, "SELECT 1"))
	require.NoError(t, err)
	require.Equal(t, numOfRows, result.Len())
	require.Equal(t, 1, stream.CloseCount())

	type testCase struct {
		name          string
		from          int
		to            int
		expectedRows  []core.Row
		expectedError error
	}

	testCases := []testCase{
		{
			name:         "get all",
			from:         0,
			to:           -1,
			expectedRows: mock.NewRows(0, numOfRows),
		},
		{
			name:         "get basic range",
			from:         0,
			to:           3,
			expectedRows: mock.NewRows(0, 3),
		},
		{
			name:         "get last 2",
			from:         -3,
			to:           -1,
			expectedRows: mock.NewRows(numOfRows-2, numOfRows),
		},
		{
			name:         "get only one",
			from:         0,
			to:           1,
			expectedRows: mock.NewRows(0, 1),
		},
		{
			name:         "range past the end is clamped",
			from:         8,
			to:           100,
			expectedRows: mock.NewRows(8, numOfRows),
		},
		{
			name:          "invalid range",
			from:          5,
			to:            1,
			expectedError: core.ErrInvalidRange(5, 1),
		},
		{
			name:          "invalid range (even if 10 can be higher than -1, its undefined and should fail)",
			from:          -5,
			to:            10,
			expectedError: core.ErrInvalidRange(-5, 10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := result.Rows(tc.from, tc.to)
			if tc.expectedError != nil {
				assert.EqualError(t, err, tc.expectedError.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedRows, rows)
		})
	}
}

func TestResult_Format(t *testing.T) {
	stream := mock.NewResultStream(
		[]core.Row{{int64(1), "SI"}, {int64(2), "HR"}, {int64(3), "AT"}},
		mock.ResultStreamWithHeader(core.Header{"ID", "CODE"}),
	)

	result, err := core.Collect(core.NewDataSet(stream, "SELECT ID, CODE FROM COUNTRY"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT ID, CODE FROM COUNTRY", result.Meta().Query)

	out, err := result.Format(format.NewCSV(), -3, -1)
	require.NoError(t, err)
	assert.Equal(t, "ID,CODE\n2,HR\n3,AT\n", string(out))

	_, err = result.Format(format.NewCSV(), 2, 1)
	assert.Error(t, err)
}

func TestCollect_Error(t *testing.T) {
	streamErr := errors.New("connection reset")
	stream := mock.NewResultStream(mock.NewRows(0, 5), mock.ResultStreamWithError(2, streamErr))

	result, err := core.Collect(core.NewDataSet(stream, "SELECT N FROM T"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, streamErr)
	assert.ErrorIs(t, err, core.ErrExecution)
	assert.Equal(t, 1, stream.CloseCount())
}
