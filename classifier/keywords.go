package classifier

import "strings"

const DefaultCategory = "General"

type keywordRule struct {
	keywords []string
	category string
}

// Rules are tried in order; the first rule with any keyword contained in the
// text wins.
var keywordRules = []keywordRule{
	{[]string{"road", "street", "pothole", "traffic"}, "Infrastructure"},
	{[]string{"garbage", "trash", "waste", "dirty"}, "Environment"},
	{[]string{"light", "lamp", "dark", "illumination"}, "Infrastructure"},
	{[]string{"water", "leak", "pipe", "flood"}, "Infrastructure"},
	{[]string{"safety", "danger", "hazard", "unsafe"}, "Safety"},
	{[]string{"noise", "loud", "disturbance"}, "Environment"},
}

// ClassifyByKeywords is the deterministic local classifier. It never fails.
func ClassifyByKeywords(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}
