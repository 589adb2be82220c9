package model

// 信任状态
const (
	StatusTrusted  = "Terpercaya"
	StatusVerify   = "Perlu Verifikasi"
	StatusHoax     = "Indikasi Hoaks"
	StatusFailed   = "Gagal Memuat"
	LocationNone   = "Tidak terdeteksi"
	SummaryMissing = "Ringkasan belum tersedia"
)

// Article 搜索到的相关新闻
type Article struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
	Image  string `json:"image"`
	// Snippet 仅用于 LLM 分析
	Snippet string `json:"snippet,omitempty"`
}

// Analysis LLM 对一条新闻的分析结果，字段名与前端保持一致
type Analysis struct {
	Location     string `json:"lokasi_kejadian"`
	Summary      string `json:"ringkasan_interaktif"`
	Validity     string `json:"status_validitas"`
	TrustScore   int    `json:"skor_kepercayaan"`
	HoaxAnalysis string `json:"analisis_hoaks"`
}

// ValidStatus 判断是否为允许的信任状态
func ValidStatus(s string) bool {
	switch s {
	case StatusTrusted, StatusVerify, StatusHoax:
		return true
	}
	return false
}
