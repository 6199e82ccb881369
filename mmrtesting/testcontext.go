package mmrtesting

import (
	"math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

type TestContext struct {
	Log  logger.Logger
	T    *testing.T
	Rand *rand.Rand
}

type TestConfig struct {
	// Seed for the random leaf generator. Fixed seeds give the same leaves
	// from run to run.
	Seed            int64
	TestLabelPrefix string
	LogLevel        string // defaults to NOOP
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	t.Cleanup(logger.OnExit)

	return TestContext{
		T:    t,
		Log:  logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
		Rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// RandomLeaves returns n random payloads of ValueBytes each.
func (c *TestContext) RandomLeaves(n uint64) [][]byte {
	return GenerateLeaves(n, func(uint64) []byte {
		v := make([]byte, ValueBytes)
		c.Rand.Read(v)
		return v
	})
}
