package builders_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

func TestNextSlice(t *testing.T) {
	r := require.New(t)

	values := []string{"SI", "HR", "AT"}

	next, hasNext := builders.NextSlice(values, func(v string) core.Row { return core.Row{v} })

	var got []core.Row
	for hasNext() {
		row, err := next()
		r.NoError(err)
		got = append(got, row)
	}

	r.Equal([]core.Row{{"SI"}, {"HR"}, {"AT"}}, got)

	_, err := next()
	r.Error(err)
}

func TestNextSingle(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSingle(int64(3))

	r.True(hasNext())
	row, err := next()
	r.NoError(err)
	r.Equal(core.Row{int64(3)}, row)

	r.False(hasNext())
	_, err = next()
	r.Error(err)
}

func TestNextNil(t *testing.T) {
	next, hasNext := builders.NextNil()

	require.False(t, hasNext())
	_, err := next()
	require.Error(t, err)
}
