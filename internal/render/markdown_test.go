package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_Example(t *testing.T) {
	md := Markdown(Build(exampleResponse(t)))

	assert.Contains(t, md, "| 住所 | Tokyo |")
	assert.Contains(t, md, "| 賃料 | **¥120,000** |")
	assert.Contains(t, md, "★★★★☆")
	assert.Contains(t, md, "> Good value")
	assert.Contains(t, md, "- ✓ near station")
	assert.Equal(t, 1, strings.Count(md, "- ✓"))
	assert.NotContains(t, md, "- ⚠")
}

func TestMarkdown_NoAnalysis(t *testing.T) {
	md := Markdown(Build(nil))
	assert.Contains(t, md, "解析結果が含まれていません")
	assert.NotContains(t, md, "基本情報")
}

func TestMarkdown_EscapesTableCells(t *testing.T) {
	d := Build(exampleResponse(t))
	d.Basic[0].Value = "a|b\nc"
	md := Markdown(d)
	assert.Contains(t, md, `a\|b c`)
}

func TestNewTerminalRenderer(t *testing.T) {
	render, err := NewTerminalRenderer(80)
	require.NoError(t, err)

	out, err := render(Markdown(Build(exampleResponse(t))))
	require.NoError(t, err)
	assert.Contains(t, out, "Tokyo")
}
