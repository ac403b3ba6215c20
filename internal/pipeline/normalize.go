package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"go-campus-sync/internal/scraper"
)

var digitRunRegex = regexp.MustCompile(`\d+`)

// Rule maps company-name keywords to a classification. First match wins.
type Rule struct {
	Keywords    []string
	CompanyType string
	Industry    string
}

// DefaultRules covers the classifications the boards most often omit.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keywords:    []string{"lvmh", "gucci", "chanel", "hermes", "dior", "prada", "burberry", "cartier", "历峰", "开云", "欧莱雅", "雅诗兰黛"},
			CompanyType: "外企",
			Industry:    "奢侈品",
		},
		{
			Keywords:    []string{"腾讯", "阿里", "字节", "美团", "百度", "京东", "网易", "小米", "拼多多", "滴滴", "快手", "哔哩哔哩"},
			CompanyType: "民企",
			Industry:    "互联网",
		},
		{
			Keywords:    []string{"银行", "证券", "基金", "保险", "信托", "期货", "资管"},
			CompanyType: "国企",
			Industry:    "金融",
		},
		{
			Keywords:    []string{"中铁", "中建", "国家电网", "中石油", "中石化", "中海油", "中车", "航天", "电力"},
			CompanyType: "国企",
			Industry:    "基建能源",
		},
	}
}

// DefaultMarkers are deadline phrases that mean "no fixed date". Text
// containing one of these parses to an unknown deadline, never an
// expired one.
func DefaultMarkers() []string {
	return []string{
		"不限", "详见", "见详情", "另行通知", "滚动", "长期", "招满即止", "待定",
		"no limit", "see details", "deadline", "rolling", "long-term",
	}
}

// Normalizer cleans raw records: deadline text to a timestamp, blank
// classifications filled by keyword inference. Pure; all state is the
// rule table handed in at construction.
type Normalizer struct {
	rules            []Rule
	markers          []string
	fallbackType     string
	fallbackIndustry string
	now              func() time.Time
}

func NewNormalizer(rules []Rule, markers []string) *Normalizer {
	return &Normalizer{
		rules:            rules,
		markers:          markers,
		fallbackType:     "民企",
		fallbackIndustry: "综合",
		now:              time.Now,
	}
}

// Normalize trims every field and fills blank company_type/industry.
// Non-blank upstream values are never overwritten.
func (n *Normalizer) Normalize(raw scraper.RawRecord) scraper.RawRecord {
	out := make(scraper.RawRecord, len(raw))
	for k, v := range raw {
		out[k] = strings.TrimSpace(v)
	}

	if out[scraper.FieldCompanyType] == "" || out[scraper.FieldIndustry] == "" {
		companyType, industry := n.classify(out[scraper.FieldCompany])
		if out[scraper.FieldCompanyType] == "" {
			out[scraper.FieldCompanyType] = companyType
		}
		if out[scraper.FieldIndustry] == "" {
			out[scraper.FieldIndustry] = industry
		}
	}

	return out
}

func (n *Normalizer) classify(company string) (string, string) {
	name := strings.ToLower(company)
	for _, rule := range n.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				return rule.CompanyType, rule.Industry
			}
		}
	}
	return n.fallbackType, n.fallbackIndustry
}

// ParseDeadline resolves free-text deadline into local midnight of the
// date it names, or nil when the text has no usable date.
//
//   - marker phrase present            -> nil (unknown, not expired)
//   - >=3 digit runs                   -> year/month/day, 2-digit year is 20xx
//   - exactly 2 digit runs             -> month/day this year, rolled one
//     year forward when already past
//   - 0 or 1 runs, or an invalid date  -> nil
func (n *Normalizer) ParseDeadline(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Boards mix full-width and ASCII digits freely
	folded := strings.ToLower(width.Fold.String(text))
	for _, marker := range n.markers {
		if strings.Contains(folded, marker) {
			return nil
		}
	}

	groups := digitRunRegex.FindAllString(folded, -1)
	now := n.now()

	switch {
	case len(groups) >= 3:
		year, _ := strconv.Atoi(groups[0])
		month, _ := strconv.Atoi(groups[1])
		day, _ := strconv.Atoi(groups[2])
		if year < 100 {
			year += 2000
		}
		return makeDate(year, month, day, now.Location())

	case len(groups) == 2:
		month, _ := strconv.Atoi(groups[0])
		day, _ := strconv.Atoi(groups[1])
		d := makeDate(now.Year(), month, day, now.Location())
		if d == nil {
			return nil
		}
		// A bare month/day that has already passed belongs to next year
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if d.Before(today) {
			return makeDate(now.Year()+1, month, day, now.Location())
		}
		return d

	default:
		return nil
	}
}

// makeDate builds local midnight, rejecting dates time.Date would
// silently normalize (month 13, Feb 30).
func makeDate(year, month, day int, loc *time.Location) *time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return nil
	}
	return &t
}
