package collector

// SourceConfig 描述一个新闻源：候选地址按偏好排序，采集时绝不重排
type SourceConfig struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Endpoints []string `json:"endpoints"`
}

// DefaultSources 内置的源清单，启动时固化，运行期不可编辑。
// 同一个源给出多个镜像地址，排在前面的优先。
var DefaultSources = []SourceConfig{
	{
		ID:       "zaobao",
		Name:     "联合早报",
		Category: "国际",
		Endpoints: []string{
			"https://rsshub.app/zaobao/znews/china",
			"https://rsshub.rssforever.com/zaobao/znews/china",
		},
	},
	{
		ID:       "bbc-zhongwen",
		Name:     "BBC 中文网",
		Category: "国际",
		Endpoints: []string{
			"https://feeds.bbci.co.uk/zhongwen/simp/rss.xml",
			"https://rsshub.app/bbc/zhongwen/simp",
		},
	},
	{
		ID:       "nyt-cn",
		Name:     "纽约时报中文网",
		Category: "国际",
		Endpoints: []string{
			"https://cn.nytimes.com/rss/",
			"https://rsshub.app/nytimes/dual",
		},
	},
	{
		ID:       "ithome",
		Name:     "IT之家",
		Category: "科技",
		Endpoints: []string{
			"https://www.ithome.com/rss/",
			"https://rsshub.app/ithome/it",
		},
	},
	{
		ID:       "sspai",
		Name:     "少数派",
		Category: "科技",
		Endpoints: []string{
			"https://sspai.com/feed",
			"https://rsshub.app/sspai/index",
		},
	},
	{
		ID:       "solidot",
		Name:     "Solidot",
		Category: "科技",
		Endpoints: []string{
			"https://www.solidot.org/index.rss",
			"https://rsshub.app/solidot/www",
		},
	},
}
