package render

import (
	"fmt"

	"github.com/sozercan/listing-lens/apimodels"
)

// Display is the read-only view model of one analysis. Build derives it
// from an AnalyzeResponse without touching the response.
type Display struct {
	Query       string     `json:"query"`
	UUID        string     `json:"uuid"`
	HasAnalysis bool       `json:"has_analysis"`
	Basic       []Row      `json:"basic"`
	Stations    []Station  `json:"stations"`
	Environment string     `json:"environment"`
	Tags        []TagGroup `json:"tags"`
	Evaluation  Evaluation `json:"evaluation"`
}

type Row struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

type Station struct {
	Line        string `json:"line"`
	Name        string `json:"name"`
	WalkingTime string `json:"walking_time"`
}

// TagGroup is one labelled set of feature chips.
type TagGroup struct {
	Title string   `json:"title"`
	Tone  string   `json:"tone"`
	Items []string `json:"items"`
}

type Evaluation struct {
	Rating              Rating     `json:"rating"`
	RecommendationScore string     `json:"recommendation_score"`
	Summary             string     `json:"summary"`
	Advantages          []Point    `json:"advantages"`
	Disadvantages       []Point    `json:"disadvantages"`
	Financial           *Financial `json:"financial,omitempty"`
}

// Point is one advantage or disadvantage line.
type Point struct {
	Marker string `json:"marker"`
	Text   string `json:"text"`
}

// Financial is the regional fiscal summary shown under the evaluation.
type Financial struct {
	Summary     string `json:"summary"`
	Reliability string `json:"reliability,omitempty"`
}

const (
	markerAdvantage         = "✓"
	markerDisadvantage      = "⚠"
	markerFinancialPositive = "💰"
	markerFinancialNegative = "💸"
	toneAmenities           = "primary"
	toneEquipment           = "neutral"
	toneSpecial             = "secondary"
)

// Build maps resp onto display groups. A nil resp or a response without
// an analysis yields a Display with HasAnalysis false.
func Build(resp *apimodels.AnalyzeResponse) Display {
	d := Display{
		Query:       Placeholder,
		UUID:        Placeholder,
		Environment: Placeholder,
		Evaluation:  buildEvaluation(nil, nil),
	}
	if resp == nil {
		return d
	}
	d.Query = Text(resp.Query)
	d.UUID = Text(resp.UUID)

	a := resp.Analysis
	if a == nil {
		return d
	}
	d.HasAnalysis = true
	d.Basic = buildBasic(a.BasicInfo)
	if a.Location != nil {
		d.Stations = buildStations(a.Location.NearestStations)
		d.Environment = Text(a.Location.SurroundingEnvironment)
	}
	d.Tags = buildTags(a.Features)
	d.Evaluation = buildEvaluation(a.Evaluation, a.FinancialAnalysis)
	return d
}

func buildBasic(b *apimodels.BasicInfo) []Row {
	if b == nil {
		b = &apimodels.BasicInfo{}
	}

	var rows []Row
	optional := func(label string, v *string) {
		if Text(v) != Placeholder {
			rows = append(rows, Row{Label: label, Value: Text(v)})
		}
	}

	optional("物件名", b.PropertyName)
	rows = append(rows, Row{Label: "住所", Value: Text(b.Address)})
	optional("部屋番号", b.RoomNumber)
	rows = append(rows, Row{Label: "賃料", Value: Yen(b.Rent), Emphasis: true})
	if Text(b.ManagementFee) != Placeholder {
		rows = append(rows, Row{Label: "管理費", Value: Yen(b.ManagementFee)})
	}
	rows = append(rows,
		Row{Label: "敷金", Value: Yen(b.Deposit)},
		Row{Label: "礼金", Value: Yen(b.KeyMoney)},
		Row{Label: "間取り", Value: Text(b.Layout)},
		Row{Label: "専有面積", Value: WithUnit(b.Area, "m²", "㎡")},
		Row{Label: "築年数", Value: WithUnit(b.BuildingAge, "年")},
		Row{Label: "階数", Value: WithUnit(b.Floor, "階")},
	)
	optional("向き", b.Direction)
	rows = append(rows, Row{Label: "建物種別", Value: Text(b.BuildingType)})
	return rows
}

func buildStations(stations []apimodels.Station) []Station {
	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		out = append(out, Station{
			Line:        Text(s.Line),
			Name:        Text(s.Station),
			WalkingTime: Text(s.WalkingTime),
		})
	}
	return out
}

func buildTags(f *apimodels.Features) []TagGroup {
	if f == nil {
		return nil
	}

	var groups []TagGroup
	add := func(title, tone string, items []string) {
		if len(items) == 0 {
			return
		}
		g := TagGroup{Title: title, Tone: tone, Items: make([]string, 0, len(items))}
		for _, item := range items {
			g.Items = append(g.Items, orPlaceholder(item))
		}
		groups = append(groups, g)
	}

	add("設備・アメニティ", toneAmenities, f.Amenities)
	add("設備仕様", toneEquipment, f.Equipment)
	add("特別な特徴", toneSpecial, f.SpecialFeatures)
	return groups
}

func buildEvaluation(e *apimodels.Evaluation, fin *apimodels.FinancialAnalysis) Evaluation {
	if e == nil {
		e = &apimodels.Evaluation{}
	}

	ev := Evaluation{
		Rating:              NewRating(e.OverallRating),
		RecommendationScore: Text(e.RecommendationScore),
		Summary:             Text(e.Summary),
		Advantages:          points(markerAdvantage, e.Advantages),
		Disadvantages:       points(markerDisadvantage, e.Disadvantages),
	}

	if fin == nil {
		return ev
	}
	ev.Advantages = append(ev.Advantages, points(markerFinancialPositive, fin.PositiveFactors)...)
	ev.Disadvantages = append(ev.Disadvantages, points(markerFinancialNegative, fin.NegativeFactors)...)

	if summary := Text(fin.VertexAISearchSummary); summary != Placeholder {
		ev.Financial = &Financial{Summary: summary}
		if r := fin.DataReliability; r != nil {
			ev.Financial.Reliability = reliability(r)
		}
	}
	return ev
}

func points(marker string, items []string) []Point {
	out := make([]Point, 0, len(items))
	for _, item := range items {
		out = append(out, Point{Marker: marker, Text: orPlaceholder(item)})
	}
	return out
}

func reliability(r *apimodels.DataReliability) string {
	sources := Placeholder
	if r.DataSources != nil {
		sources = fmt.Sprintf("%d件", *r.DataSources)
	}
	search := Placeholder
	if r.VertexAISearchUsed != nil {
		search = "無効"
		if *r.VertexAISearchUsed {
			search = "有効"
		}
	}
	return fmt.Sprintf("データ信頼性: %s | データソース: %s | AI検索: %s", Text(r.ConfidenceLevel), sources, search)
}
