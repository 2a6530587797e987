package handler

import (
	"embed"
	"html/template"
	"math/rand/v2"
	"strings"

	"resume_optimizer/internal/feature/analysis/domain/entity"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// indexTemplate はトップページのテンプレート名です。
const indexTemplate = "index.html.tmpl"

// Gradients はヘッダー背景の候補です。表示のたびにランダムに1つ選びます。
var Gradients = []string{
	"linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	"linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%)",
	"linear-gradient(135deg, #6a11cb 0%, #2575fc 100%)",
	"linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
	"linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)",
}

// Theme はUIテーマです。
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeCards Theme = "cards"
)

// ParseTheme は文字列をテーマに変換します。不明な値はライトテーマになります。
func ParseTheme(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark
	case ThemeCards:
		return ThemeCards
	default:
		return ThemeLight
	}
}

// ViewConfig はページ描画の設定です。
type ViewConfig struct {
	Theme Theme
	// PickGradient は0以上n未満の添字を返します。nil の場合は乱数を使います。
	PickGradient func(n int) int
}

func (v ViewConfig) gradient() template.CSS {
	pick := v.PickGradient
	if pick == nil {
		pick = rand.IntN
	}
	return template.CSS(Gradients[pick(len(Gradients))])
}

// Templates は埋め込みテンプレートを解析して返します。
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"nl2br": nl2br,
		"css":   func(s string) template.CSS { return template.CSS(s) },
	}).ParseFS(templateFS, "templates/*.tmpl"))
}

// nl2br は改行を <br> に置き換えます。それ以外はエスケープします。
func nl2br(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// step はサイドバー「How It Works」の1手順です。
type step struct {
	Number      int
	Title       string
	Description string
}

var howItWorks = []step{
	{1, "Add Company Info", "Enter the company URL for tailored recommendations"},
	{2, "Upload Documents", "Provide the job description and your resume"},
	{3, "Get Analysis", "Receive personalized optimization suggestions"},
}

// notice はページ上部に表示するメッセージです。
type notice struct {
	Kind    string // warning / error / service
	Message string
}

// formValues は再描画時に保持するフォームの入力値です。
type formValues struct {
	JobText    string
	CompanyURL string
}

// pageData はトップページのテンプレートに渡す値です。
type pageData struct {
	Theme         Theme
	Gradient      template.CSS
	Steps         []step
	Notice        *notice
	Form          formValues
	Report        *entity.Report
	ProgressWidth int
}

func (v ViewConfig) newPage(report *entity.Report, n *notice, form formValues) pageData {
	p := pageData{
		Theme:    v.Theme,
		Gradient: v.gradient(),
		Steps:    howItWorks,
		Notice:   n,
		Form:     form,
		Report:   report,
	}
	if report != nil {
		p.ProgressWidth = min(max(report.Result.MatchScore.Value, 0), 100)
	}
	return p
}
