package render

import (
	"fmt"
	"strings"
)

// Markdown renders d as a markdown document for terminal output.
func Markdown(d Display) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 物件解析結果\n\n")
	if d.Query != Placeholder {
		fmt.Fprintf(&b, "`%s`\n\n", strings.ReplaceAll(d.Query, "`", "'"))
	}
	if !d.HasAnalysis {
		b.WriteString("解析結果が含まれていません。\n")
		return b.String()
	}

	b.WriteString("## 総合評価\n\n")
	ev := d.Evaluation
	fmt.Fprintf(&b, "**%s** %s\n\n", ev.Rating.Stars(), cell(ev.RecommendationScore))
	fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(ev.Summary, "\n", "\n> "))
	if ev.Financial != nil {
		b.WriteString("### 地域財政分析\n\n")
		fmt.Fprintf(&b, "%s\n\n", ev.Financial.Summary)
		if ev.Financial.Reliability != "" {
			fmt.Fprintf(&b, "_%s_\n\n", ev.Financial.Reliability)
		}
	}
	writePoints(&b, "メリット", ev.Advantages)
	writePoints(&b, "デメリット", ev.Disadvantages)

	b.WriteString("## 基本情報\n\n| 項目 | 内容 |\n| --- | --- |\n")
	for _, row := range d.Basic {
		value := cell(row.Value)
		if row.Emphasis && row.Value != Placeholder {
			value = "**" + value + "**"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, value)
	}
	b.WriteString("\n")

	b.WriteString("## アクセス情報\n\n| 路線 | 駅名 | 徒歩 |\n| --- | --- | --- |\n")
	if len(d.Stations) == 0 {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", Placeholder, Placeholder, Placeholder)
	}
	for _, s := range d.Stations {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(s.Line), cell(s.Name), cell(s.WalkingTime))
	}
	b.WriteString("\n")
	if d.Environment != Placeholder {
		fmt.Fprintf(&b, "周辺環境: %s\n\n", d.Environment)
	}

	b.WriteString("## 設備・特徴\n\n")
	if len(d.Tags) == 0 {
		fmt.Fprintf(&b, "%s\n\n", Placeholder)
	}
	for _, g := range d.Tags {
		fmt.Fprintf(&b, "**%s**: %s\n\n", g.Title, strings.Join(g.Items, "、"))
	}

	return b.String()
}

func writePoints(b *strings.Builder, title string, points []Point) {
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(points) == 0 {
		fmt.Fprintf(b, "%s\n\n", Placeholder)
		return
	}
	for _, p := range points {
		fmt.Fprintf(b, "- %s %s\n", p.Marker, p.Text)
	}
	b.WriteString("\n")
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
