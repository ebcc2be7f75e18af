package mock

import (
	"time"

	"github.com/kndndrj/dbquery/core"
)

type resultStreamConfig struct {
	nextSleep time.Duration
	meta      *core.Meta
	header    core.Header
	failAfter int
	failErr   error
}

type ResultStreamOption func(*resultStreamConfig)

func ResultStreamWithNextSleep(s time.Duration) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.nextSleep = s
	}
}

func ResultStreamWithMeta(meta *core.Meta) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.meta = meta
	}
}

func ResultStreamWithHeader(header core.Header) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.header = header
	}
}

// ResultStreamWithError makes Next fail with err once n rows were read.
func ResultStreamWithError(n int, err error) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.failAfter = n
		c.failErr = err
	}
}
