package cmd

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lifecompass (devel) "+runtime.GOOS+"/"+runtime.GOARCH, strings.TrimSpace(out))
}

func TestUpdate_DevBuild(t *testing.T) {
	out, err := runRoot(t, "update")
	require.NoError(t, err)
	assert.Contains(t, out, "development build")
}
