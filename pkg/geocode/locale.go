package geocode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Locale 地点解析使用的地区词表
type Locale struct {
	// DefaultRegion 查询中缺失时追加的国家/地区限定词
	DefaultRegion string `yaml:"default_region"`
	// CountryCode 传给地理编码服务的国家代码过滤
	CountryCode string `yaml:"country_code"`

	FillerWords      []string `yaml:"filler_words"`
	RejectionPhrases []string `yaml:"rejection_phrases"`
	POIKeywords      []string `yaml:"poi_keywords"`
	POIConnectors    []string `yaml:"poi_connectors"`
	AdminLevels      []string `yaml:"admin_levels"`
}

// DefaultLocale 印度尼西亚词表
func DefaultLocale() *Locale {
	return &Locale{
		DefaultRegion:    "Indonesia",
		CountryCode:      "id",
		FillerWords:      []string{"di", "kawasan", "wilayah", "daerah", "sekitar"},
		RejectionPhrases: []string{"tidak terdeteksi"},
		POIKeywords: []string{
			"Taman", "Gedung", "Jalan", "Jl", "Jl.", "Pasar", "Rumah Sakit", "RSUD",
			"Bandara", "Pelabuhan", "Masjid", "Gereja", "Sekolah", "SD", "SMP",
			"Kampus", "Hotel", "SPBU", "Terminal",
		},
		POIConnectors: []string{"masuk", "dekat", "sebelah"},
		AdminLevels:   []string{"Kecamatan", "Distrik", "Kelurahan", "Desa", "Kabupaten", "Kota", "Provinsi"},
	}
}

// LoadLocale 从 YAML 文件加载词表，文件中缺省的字段使用默认值
func LoadLocale(path string) (*Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale failed: %w", err)
	}

	var loc Locale
	if err := yaml.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("unmarshal locale failed: %w", err)
	}

	loc.fillDefaults(DefaultLocale())
	return &loc, nil
}

func (l *Locale) fillDefaults(def *Locale) {
	if l.DefaultRegion == "" {
		l.DefaultRegion = def.DefaultRegion
	}
	if l.CountryCode == "" {
		l.CountryCode = def.CountryCode
	}
	if len(l.FillerWords) == 0 {
		l.FillerWords = def.FillerWords
	}
	if len(l.RejectionPhrases) == 0 {
		l.RejectionPhrases = def.RejectionPhrases
	}
	if len(l.POIKeywords) == 0 {
		l.POIKeywords = def.POIKeywords
	}
	if len(l.POIConnectors) == 0 {
		l.POIConnectors = def.POIConnectors
	}
	if len(l.AdminLevels) == 0 {
		l.AdminLevels = def.AdminLevels
	}
}
