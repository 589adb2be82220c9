package conf

type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Pipeline *Pipeline `json:"pipeline"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr      string `json:"addr"`
	Timeout   string `json:"timeout"`
	StaticDir string `json:"static_dir"`
}

type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	Db       int32  `json:"db"`
}

type Pipeline struct {
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Geocode     *Geocode     `json:"geocode"`
	Scraper     *Scraper     `json:"scraper"`
	Highlights  *Highlights  `json:"highlights"`
	Concurrency *Concurrency `json:"concurrency"`
	Log         *Log         `json:"log"`
}

type LLM struct {
	BaseUrl     string  `json:"base_url"`
	ApiKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
}

type Search struct {
	Provider string   `json:"provider"`
	Google   *Google  `json:"google"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Google struct {
	ApiKey string `json:"api_key"`
	Cx     string `json:"cx"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Geocode struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	// Timeout 单次查询超时，秒
	Timeout int32 `json:"timeout"`
	// Locale 地名词表 YAML 文件，为空时使用内置印尼词表
	Locale string `json:"locale"`
}

type Scraper struct {
	Timeout   int32  `json:"timeout"`
	UserAgent string `json:"user_agent"`
}

type Highlights struct {
	Query      string `json:"query"`
	MaxResults int32  `json:"max_results"`
	// Ttl 缓存时长，秒
	Ttl int32 `json:"ttl"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
