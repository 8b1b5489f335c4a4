package moderation

import "strings"

// Reason categories, in match priority order.
const (
	CategoryOffensive = "Offensive"
	CategoryFalseInfo = "False information"
	CategorySpam      = "Spam"
	CategoryCopyright = "Copyright"
	CategoryOther     = "Other"
)

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryOffensive, []string{"offensive", "hate", "abuse", "abusive", "harass", "racist", "violent", "insult"}},
	{CategoryFalseInfo, []string{"false", "fake", "misinformation", "misleading", "hoax", "inaccurate"}},
	{CategorySpam, []string{"spam", "advert", "scam", "clickbait", "promotion"}},
	{CategoryCopyright, []string{"copyright", "plagiar", "stolen", "dmca"}},
}

// Classify buckets a free-text report reason by keyword.
func Classify(reason string) string {
	r := strings.ToLower(reason)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(r, kw) {
				return c.category
			}
		}
	}
	return CategoryOther
}
