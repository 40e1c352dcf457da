package optimizer

import "strings"

// Boilerplate hits only reject short blocks. Long prose legitimately quotes
// phrases like "privacy policy", so blocks at or past this many runes pass.
const blacklistShortRunes = 120

var latinBoilerplate = []string{
	"all rights reserved",
	"terms of service",
	"terms of use",
	"privacy policy",
	"cookie policy",
	"cookie settings",
	"click here",
	"read more",
	"learn more",
	"sign up",
	"sign in",
	"log in",
	"subscribe",
	"newsletter",
	"follow us",
	"share this",
	"related articles",
	"related posts",
	"advertisement",
	"sponsored",
	"back to top",
	"skip to content",
	"accept cookies",
	"copyright ©",
}

var cjkBoilerplate = []string{
	"版权所有",
	"保留所有权利",
	"点击这里",
	"阅读更多",
	"查看更多",
	"立即注册",
	"登录",
	"订阅",
	"关注我们",
	"分享到",
	"相关文章",
	"相关阅读",
	"广告",
	"赞助",
	"返回顶部",
	"隐私政策",
	"服务条款",
	"免责声明",
	"扫码关注",
}

type qualityStats struct {
	TooShort    int
	LinkHeavy   int
	LowAlnum    int
	Boilerplate int
}

func (s qualityStats) total() int {
	return s.TooShort + s.LinkHeavy + s.LowAlnum + s.Boilerplate
}

// filterQuality drops blocks that fail any hard gate. Gates are checked in
// order and each rejection is attributed to the first failing rule only.
func filterQuality(blocks []*Block, cfg Config) ([]*Block, qualityStats) {
	var stats qualityStats
	kept := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		switch {
		case b.CharCount() < cfg.MinTextLength:
			stats.TooShort++
		case b.LinkDensity() > cfg.MaxLinkDensity:
			stats.LinkHeavy++
		case b.AlphanumericRatio() < cfg.MinAlphanumericRatio:
			stats.LowAlnum++
		case b.CharCount() < blacklistShortRunes && hasBoilerplate(b.Text):
			stats.Boilerplate++
		default:
			kept = append(kept, b)
		}
	}
	return kept, stats
}

func hasBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range latinBoilerplate {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, p := range cjkBoilerplate {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
