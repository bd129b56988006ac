package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sozercan/listing-lens/apimodels"
	"github.com/sozercan/listing-lens/internal/analyzer"
)

const exampleBody = `{
	"query": "https://example.com/listing/123",
	"analysis": {
		"basic_info": {"address": "Tokyo", "rent": "120000"},
		"evaluation": {"overall_rating": 4, "advantages": ["near station"], "disadvantages": [], "summary": "Good value"}
	}
}`

func succeeded(t *testing.T) analyzer.Succeeded {
	t.Helper()
	resp, err := apimodels.Decode([]byte(exampleBody))
	require.NoError(t, err)
	return analyzer.Succeeded{Query: "https://example.com/listing/123", Result: resp}
}

func TestWriteResult_Markdown(t *testing.T) {
	var out, errOut bytes.Buffer

	err := writeResult(&out, &errOut, succeeded(t), "text", nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "| 住所 | Tokyo |")
	assert.Contains(t, out.String(), "¥120,000")
	assert.Contains(t, out.String(), "★★★★☆")
	assert.Empty(t, errOut.String())
}

func TestWriteResult_Pretty(t *testing.T) {
	var out bytes.Buffer
	var seen string

	err := writeResult(&out, &bytes.Buffer{}, succeeded(t), "text", func(md string) (string, error) {
		seen = md
		return "rendered", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "rendered", out.String())
	assert.Contains(t, seen, "Good value")
}

func TestWriteResult_JSONAndYAML(t *testing.T) {
	var jsonOut bytes.Buffer
	require.NoError(t, writeResult(&jsonOut, &bytes.Buffer{}, succeeded(t), "json", nil))
	assert.JSONEq(t, exampleBody, jsonOut.String())

	var yamlOut bytes.Buffer
	require.NoError(t, writeResult(&yamlOut, &bytes.Buffer{}, succeeded(t), "yaml", nil))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &decoded))
	assert.Equal(t, "https://example.com/listing/123", decoded["query"])
}

func TestWriteResult_Failed(t *testing.T) {
	var out, errOut bytes.Buffer
	failed := analyzer.Failed{Query: "x", Kind: analyzer.FailureTimeout, Message: analyzer.MsgTimeout}

	err := writeResult(&out, &errOut, failed, "text", nil)

	assert.ErrorIs(t, err, errAnalysisFailed)
	assert.Empty(t, out.String())
	assert.Equal(t, "エラー: "+analyzer.MsgTimeout+"\n", errOut.String())
}

func TestAnalyzeCommand(t *testing.T) {
	var gotQuery string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req apimodels.AnalyzeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotQuery = req.Query
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(exampleBody))
	}))
	defer api.Close()

	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", api.URL)
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"analyze", "--format", "json", "https://example.com/listing/123"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "https://example.com/listing/123", gotQuery)
	assert.True(t, strings.HasPrefix(out.String(), "{"))
	assert.JSONEq(t, exampleBody, out.String())
}
