package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example.com, ,https://b.example.com ")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, getEnvList("CORS_ORIGINS", "*"))

	assert.Equal(t, []string{"*"}, getEnvList("CORS_ORIGINS_UNSET", "*"))
}
