package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogd/internal/config"
)

func Test_RenderTitle(t *testing.T) {
	result := RenderTitle()

	assert.NotEmpty(t, result)
	assert.Contains(t, result, config.AppName)
	assert.Contains(t, result, config.Version)
	assert.Contains(t, result, config.AppDescription)
}

func Test_RenderHelp(t *testing.T) {
	result := RenderHelp()

	assert.NotEmpty(t, result)
	assert.Contains(t, result, "blogd config")
	assert.Contains(t, result, "--config")
	assert.Contains(t, result, config.EnvPrefix+"_SERVER_ADDRESS")
}
