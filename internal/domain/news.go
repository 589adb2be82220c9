package domain

import (
	"time"

	"github.com/iWorld-y/news_locator/pkg/geocode"
	"github.com/iWorld-y/news_locator/pkg/model"
)

// AnalyzeReply 搜索主题的分析结果
type AnalyzeReply struct {
	Location    string             `json:"lokasi_kejadian"`
	Summary     string             `json:"ringkasan_interaktif"`
	Validity    string             `json:"status_validitas"`
	TrustScore  int                `json:"skor_kepercayaan"`
	Coordinates *geocode.GeoResult `json:"koordinat"`
	Hierarchy   geocode.Hierarchy  `json:"lokasi_hirarki"`
	Articles    []model.Article    `json:"artikel_terkait"`
	Images      []string           `json:"gambar_pendukung"`
}

// DetailReply 单篇新闻的深度分析结果
type DetailReply struct {
	Title        string             `json:"judul_berita"`
	Location     string             `json:"lokasi_kejadian"`
	Summary      string             `json:"ringkasan_interaktif"`
	Validity     string             `json:"status_validitas"`
	TrustScore   int                `json:"skor_kepercayaan"`
	HoaxAnalysis string             `json:"analisis_hoaks"`
	Coordinates  *geocode.GeoResult `json:"koordinat"`
	Images       []string           `json:"gambar_pendukung"`
}

// Highlights 首页热点新闻
type Highlights struct {
	Status     string          `json:"status"`
	Highlights []model.Article `json:"highlights"`
}

// ArchivedAnalysis 已归档的单篇分析，不含坐标
type ArchivedAnalysis struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Location     string    `json:"lokasi_kejadian"`
	Summary      string    `json:"ringkasan_interaktif"`
	Validity     string    `json:"status_validitas"`
	TrustScore   int       `json:"skor_kepercayaan"`
	HoaxAnalysis string    `json:"analisis_hoaks"`
	CreatedAt    time.Time `json:"created_at"`
}
