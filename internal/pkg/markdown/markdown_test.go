package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "基础元素",
			input:    "# Title\n\nSome **bold** and *italic* text.",
			contains: []string{"<h1", "<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "GFM表格",
			input:    "| A | B |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "GFM删除线",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "自动链接",
			input:    "see https://example.com for details",
			contains: []string{`<a href="https://example.com"`},
		},
		{
			name:     "围栏代码块",
			input:    "```go\nfmt.Println(\"hi\")\n```",
			contains: []string{"<pre>", "<code"},
		},
		{
			name:     "脚本标签被清理",
			input:    "hello <script>alert(1)</script> world",
			contains: []string{"hello"},
			excludes: []string{"<script>"},
		},
		{
			name:     "内联事件被清理",
			input:    `<img src="x.png" onerror="alert(1)">`,
			excludes: []string{"onerror"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("渲染失败: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("输出缺少 %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("输出不应包含 %q:\n%s", bad, got)
				}
			}
		})
	}
}
