package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicMarkdown(t *testing.T) {
	out, err := Render("# Giving back\n\nSome **bold** advice.")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Giving back</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderAutolinks(t *testing.T) {
	out, err := Render("Apply at https://acme.example/jobs")
	require.NoError(t, err)

	assert.Contains(t, out, `<a href="https://acme.example/jobs"`)
}

func TestRenderEscapesRawHTML(t *testing.T) {
	out, err := Render(`<script>alert("x")</script>`)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>", "raw HTML must not pass through")
}
