package provider

// platformMapping maps internal platform ids to the upstream API's platform
// parameter. The two are not always equal; several entries were corrected
// against the live API and must stay as-is.
var platformMapping = map[string]string{
	// social
	"weibo":    "weibo",
	"zhihu":    "zhihu",
	"douyin":   "douyin",
	"douban":   "douban", // corrected from douban-group
	"bilibili": "bilibili",

	// tech
	"36kr":          "36kr",
	"sspai":         "shaoshupai", // corrected from sspai
	"juejin":        "juejin",
	"v2ex":          "v2ex",
	"github":        "github", // corrected from github-trending
	"stackoverflow": "stackoverflow",
	"hackernews":    "hackernews",
	"52pojie":       "52pojie",

	// finance
	"sina_finance": "sina_finance",
	"eastmoney":    "eastmoney",
	"xueqiu":       "xueqiu",
	"cls":          "cls",

	// general
	"baidu":   "baidu",
	"toutiao": "jinritoutiao", // corrected from toutiao
	"qq":      "qq",           // slow upstream, may hit the timeout

	// other
	"hupu":  "hupu",
	"tieba": "tieba",
}

// APIParam returns the upstream API parameter for the given platform id. The
// second return value is false when no mapping exists; callers must report
// that as a distinct failure so operators can add the mapping before retrying.
func APIParam(platformID string) (string, bool) {
	param, ok := platformMapping[platformID]
	return param, ok
}

// MappedPlatformIDs returns all platform ids with a known API parameter.
func MappedPlatformIDs() []string {
	ids := make([]string, 0, len(platformMapping))
	for id := range platformMapping {
		ids = append(ids, id)
	}
	return ids
}
