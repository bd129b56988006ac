package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/listing-lens/apimodels"
)

func exampleResponse(t *testing.T) *apimodels.AnalyzeResponse {
	t.Helper()
	resp, err := apimodels.Decode([]byte(`{
  "query": "https://example.com/listing/123",
  "analysis": {
    "basic_info": {"address": "Tokyo", "rent": "120000"},
    "evaluation": {"overall_rating": 4, "advantages": ["near station"], "disadvantages": [], "summary": "Good value"}
  }
}`))
	require.NoError(t, err)
	return resp
}

func rowValue(t *testing.T, rows []Row, label string) string {
	t.Helper()
	for _, r := range rows {
		if r.Label == label {
			return r.Value
		}
	}
	t.Fatalf("row %q not found", label)
	return ""
}

func TestBuild_Example(t *testing.T) {
	d := Build(exampleResponse(t))

	require.True(t, d.HasAnalysis)
	assert.Equal(t, "https://example.com/listing/123", d.Query)
	assert.Equal(t, "Tokyo", rowValue(t, d.Basic, "住所"))
	assert.Equal(t, "¥120,000", rowValue(t, d.Basic, "賃料"))

	ev := d.Evaluation
	assert.True(t, ev.Rating.Present)
	assert.Equal(t, 4, ev.Rating.Filled)
	assert.Equal(t, "★★★★☆", ev.Rating.Stars())
	require.Len(t, ev.Advantages, 1)
	assert.Equal(t, "near station", ev.Advantages[0].Text)
	assert.Empty(t, ev.Disadvantages)
	assert.Equal(t, "Good value", ev.Summary)
	assert.Nil(t, ev.Financial)
}

func TestBuild_MissingFieldsUsePlaceholder(t *testing.T) {
	resp, err := apimodels.Decode([]byte(`{"analysis": {
  "basic_info": {"address": null, "rent": null, "area": null},
  "location": {"nearest_stations": [{"line": null, "station": "渋谷"}]},
  "features": {"amenities": ["", "エアコン"]},
  "evaluation": {"overall_rating": null, "summary": null, "advantages": null}
}}`))
	require.NoError(t, err)

	d := Build(resp)
	require.True(t, d.HasAnalysis)
	assert.Equal(t, Placeholder, d.Query)
	for _, label := range []string{"住所", "賃料", "敷金", "礼金", "間取り", "専有面積", "築年数", "階数", "建物種別"} {
		assert.Equal(t, Placeholder, rowValue(t, d.Basic, label), label)
	}
	for _, row := range d.Basic {
		assert.NotContains(t, []string{"物件名", "部屋番号", "管理費", "向き"}, row.Label, "optional rows are omitted when absent")
	}

	require.Len(t, d.Stations, 1)
	assert.Equal(t, Station{Line: Placeholder, Name: "渋谷", WalkingTime: Placeholder}, d.Stations[0])
	assert.Equal(t, Placeholder, d.Environment)

	require.Len(t, d.Tags, 1)
	assert.Equal(t, []string{Placeholder, "エアコン"}, d.Tags[0].Items)

	assert.False(t, d.Evaluation.Rating.Present)
	assert.Equal(t, Placeholder, d.Evaluation.Summary)
	assert.Equal(t, Placeholder, d.Evaluation.RecommendationScore)
	assert.Empty(t, d.Evaluation.Advantages)
}

func TestBuild_EmptyAnalysis(t *testing.T) {
	resp, err := apimodels.Decode([]byte(`{"analysis": {}}`))
	require.NoError(t, err)

	var d Display
	assert.NotPanics(t, func() { d = Build(resp) })
	assert.True(t, d.HasAnalysis)
	assert.Equal(t, Placeholder, rowValue(t, d.Basic, "住所"))
	assert.Empty(t, d.Stations)
	assert.Empty(t, d.Tags)
	assert.Equal(t, Placeholder, d.Evaluation.Summary)
}

func TestBuild_NoAnalysis(t *testing.T) {
	for name, resp := range map[string]*apimodels.AnalyzeResponse{
		"nil response": nil,
		"no analysis":  {},
	} {
		t.Run(name, func(t *testing.T) {
			var d Display
			assert.NotPanics(t, func() { d = Build(resp) })
			assert.False(t, d.HasAnalysis)
			assert.Equal(t, Placeholder, d.Evaluation.Summary)
		})
	}
}

func TestBuild_OptionalBasicRows(t *testing.T) {
	resp := &apimodels.AnalyzeResponse{Analysis: &apimodels.Analysis{BasicInfo: &apimodels.BasicInfo{
		PropertyName:  ptr("パークハイツ"),
		RoomNumber:    ptr("302"),
		ManagementFee: ptr("8000"),
		Direction:     ptr("南"),
	}}}

	d := Build(resp)
	labels := make([]string, 0, len(d.Basic))
	for _, r := range d.Basic {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"物件名", "住所", "部屋番号", "賃料", "管理費", "敷金", "礼金", "間取り", "専有面積", "築年数", "階数", "向き", "建物種別"}, labels)
	assert.Equal(t, "¥8,000", rowValue(t, d.Basic, "管理費"))
}

func TestBuild_Financial(t *testing.T) {
	resp, err := apimodels.Decode([]byte(`{"analysis": {
  "evaluation": {"advantages": ["駅近"], "disadvantages": ["築古"]},
  "financial_analysis": {
    "positive_factors": ["税収が安定"],
    "negative_factors": ["人口減少"],
    "vertex_ai_search_summary": "財政は健全です",
    "data_reliability": {"data_sources": 3, "confidence_level": "中", "vertex_ai_search_used": true}
  }
}}`))
	require.NoError(t, err)

	ev := Build(resp).Evaluation
	assert.Equal(t, []Point{{Marker: "✓", Text: "駅近"}, {Marker: "💰", Text: "税収が安定"}}, ev.Advantages)
	assert.Equal(t, []Point{{Marker: "⚠", Text: "築古"}, {Marker: "💸", Text: "人口減少"}}, ev.Disadvantages)
	require.NotNil(t, ev.Financial)
	assert.Equal(t, "財政は健全です", ev.Financial.Summary)
	assert.Equal(t, "データ信頼性: 中 | データソース: 3件 | AI検索: 有効", ev.Financial.Reliability)
}

func TestBuild_UnreadableFieldsUsePlaceholder(t *testing.T) {
	resp, err := apimodels.Decode([]byte(`{"analysis": {
  "basic_info": {"address": "Tokyo", "rent": {"amount": 120000}},
  "location": "n/a",
  "evaluation": {"overall_rating": "4.5点", "summary": "Good value"},
  "financial_analysis": {
    "vertex_ai_search_summary": "財政は健全です",
    "data_reliability": {"data_sources": "3件", "confidence_level": "中", "vertex_ai_search_used": true}
  }
}}`))
	require.NoError(t, err)

	d := Build(resp)
	require.True(t, d.HasAnalysis)
	assert.Equal(t, "Tokyo", rowValue(t, d.Basic, "住所"))
	assert.Equal(t, Placeholder, rowValue(t, d.Basic, "賃料"))
	assert.Empty(t, d.Stations)
	assert.Equal(t, Placeholder, d.Environment)

	ev := d.Evaluation
	assert.False(t, ev.Rating.Present)
	assert.Equal(t, Placeholder, ev.Rating.Stars())
	assert.Equal(t, "Good value", ev.Summary)
	require.NotNil(t, ev.Financial)
	assert.Equal(t, "データ信頼性: 中 | データソース: － | AI検索: 有効", ev.Financial.Reliability)
}

func TestBuild_FinancialWithoutSummary(t *testing.T) {
	resp := &apimodels.AnalyzeResponse{Analysis: &apimodels.Analysis{
		FinancialAnalysis: &apimodels.FinancialAnalysis{NegativeFactors: []string{"債務比率が高い"}},
	}}

	ev := Build(resp).Evaluation
	assert.Nil(t, ev.Financial, "the financial block needs a summary")
	assert.Equal(t, []Point{{Marker: "💸", Text: "債務比率が高い"}}, ev.Disadvantages)
}

func TestBuild_Idempotent(t *testing.T) {
	resp := exampleResponse(t)

	first := Build(resp)
	second := Build(resp)
	assert.Equal(t, first, second)
	assert.Equal(t, Markdown(first), Markdown(second))
	assert.Equal(t, exampleResponse(t), resp, "building must not mutate the response")
}
