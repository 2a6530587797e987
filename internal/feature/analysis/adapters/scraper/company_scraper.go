package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/usecase"
	"resume_optimizer/internal/platform/textclean"
)

const (
	// NoDescription はmeta descriptionが無い場合の説明文です。
	NoDescription = "No description found"
	// AboutUnavailable はAboutページの取得に失敗した場合の本文です。
	AboutUnavailable = "Could not retrieve additional details"
	// MaxAboutChars はAboutページ本文の最大文字数です（省略記号は含まない）。
	MaxAboutChars = 1000

	maxBodyBytes = 5 << 20
)

// CompanyScraper は企業サイトのトップページと（見つかれば）Aboutページから企業情報を組み立てます。
type CompanyScraper struct {
	client *http.Client
}

// CompanyScraperがCompanyFetcherを実装していることをコンパイル時に検証します。
var _ usecase.CompanyFetcher = (*CompanyScraper)(nil)

// NewCompanyScraper は指定されたHTTPクライアントでCompanyScraperを生成します。
// User-Agentとタイムアウトはクライアント側で設定します。
func NewCompanyScraper(client *http.Client) *CompanyScraper {
	return &CompanyScraper{client: client}
}

// FetchCompany はrawURLのページを取得し、企業情報を返します。
// トップページの取得・解析に失敗した場合はエラーを返します。ステータスコードは問わず、本文を解析します。
// Aboutページの取得失敗はエラーにせず、AboutUnavailable を本文とします。
func (s *CompanyScraper) FetchCompany(ctx context.Context, rawURL string) (*entity.CompanySummary, error) {
	doc, err := s.fetchDocument(ctx, rawURL, false)
	if err != nil {
		return nil, fmt.Errorf("fetch main page: %w", err)
	}

	name := hostOf(rawURL)
	if title := doc.Find("title").First(); title.Length() > 0 {
		if t := strings.TrimSpace(title.Text()); t != "" {
			name = t
		}
	}

	description := NoDescription
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		description = content
	}

	var about string
	if href := FindAboutLink(doc); href != "" {
		about = s.fetchAbout(ctx, rawURL, href)
	}

	return &entity.CompanySummary{
		Name:        textclean.StripTags(name),
		Description: textclean.StripTags(description),
		About:       textclean.StripTags(about),
		Website:     textclean.StripTags(rawURL),
	}, nil
}

// FindAboutLink は文書順で最初に href に "about"（大文字小文字を区別しない）を含むリンクを返します。
// "about-the-weather-widget" のような意図しないリンクを拾うこともあります。
func FindAboutLink(doc *goquery.Document) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.Contains(strings.ToLower(href), "about") {
			found = href
			return false
		}
		return true
	})
	return found
}

// ResolveAboutURL はhrefをbaseURL基準で絶対URLに解決します（RFC 3986）。
func ResolveAboutURL(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parse about href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// VisibleText はscript/style等を除いた本文テキストを空白を詰めて返します。
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template").Remove()
	body := doc.Find("body")
	text := body.Text()
	if body.Length() == 0 {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// fetchAbout はAboutページを取得し、先頭 MaxAboutChars 文字に "..." を付けて返します。
func (s *CompanyScraper) fetchAbout(ctx context.Context, baseURL, href string) string {
	aboutURL, err := ResolveAboutURL(baseURL, href)
	if err != nil {
		slog.Warn("about link could not be resolved", "base", baseURL, "href", href, "error", err)
		return AboutUnavailable
	}

	doc, err := s.fetchDocument(ctx, aboutURL, true)
	if err != nil {
		slog.Warn("about page fetch failed", "url", aboutURL, "error", err)
		return AboutUnavailable
	}

	return textclean.Truncate(VisibleText(doc), MaxAboutChars) + "..."
}

// fetchDocument はGETでページを取得し、HTMLとして解析します。
// requireOK が true の場合、400以上のステータスはエラーです。
func (s *CompanyScraper) fetchDocument(ctx context.Context, target string, requireOK bool) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if requireOK && res.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d from %s", res.StatusCode, target)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// hostOf はURLのホスト部分を返します。解析できない場合は空文字を返します。
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
