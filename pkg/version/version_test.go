package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.Equal(t, "dev", GetVersion())

	old := version
	t.Cleanup(func() { version = old })
	version = "v1.2.3"
	assert.Equal(t, "v1.2.3", GetVersion())
}
