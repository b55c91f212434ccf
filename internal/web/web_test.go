package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndex(t *testing.T) {
	page, err := Render("index.html", IndexData{})
	require.NoError(t, err)
	assert.Contains(t, string(page), `action="/login"`)
	assert.NotContains(t, string(page), `class="error"`)

	page, err = Render("index.html", IndexData{Error: "Invalid credentials <b>"})
	require.NoError(t, err)
	assert.Contains(t, string(page), "Invalid credentials &lt;b&gt;")
}

func TestRenderUnknownPage(t *testing.T) {
	_, err := Render("missing.html", nil)
	assert.Error(t, err)
}
