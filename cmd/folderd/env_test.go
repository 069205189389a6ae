package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("FOLDERD_T_STR", "x")
	t.Setenv("FOLDERD_T_BOOL", "Yes")
	t.Setenv("FOLDERD_T_INT", " 42 ")
	t.Setenv("FOLDERD_T_BADINT", "lots")
	t.Setenv("FOLDERD_T_DUR", "90s")
	t.Setenv("FOLDERD_T_BADDUR", "soon")
	t.Setenv("FOLDERD_T_CSV", "a, b")

	assert.Equal(t, "x", envStr("FOLDERD_T_STR", "d"))
	assert.Equal(t, "d", envStr("FOLDERD_T_UNSET", "d"))
	assert.True(t, envBool("FOLDERD_T_BOOL", false))
	assert.True(t, envBool("FOLDERD_T_UNSET", true))
	assert.Equal(t, int64(42), envInt64("FOLDERD_T_INT", 1))
	assert.Equal(t, int64(1), envInt64("FOLDERD_T_BADINT", 1))
	assert.Equal(t, 90*time.Second, envDuration("FOLDERD_T_DUR", time.Second))
	assert.Equal(t, time.Second, envDuration("FOLDERD_T_BADDUR", time.Second))
	assert.Equal(t, []string{"a", "b"}, envCSV("FOLDERD_T_CSV", nil))
	assert.Nil(t, envCSV("FOLDERD_T_UNSET", nil))
}
