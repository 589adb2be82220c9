package geocode

// Hierarchy 行政区划层级视图
type Hierarchy struct {
	Raw       map[string]string `json:"raw"`
	Fallback  string            `json:"fallback"`
	Provinsi  string            `json:"provinsi,omitempty"`
	KabKota   string            `json:"kab_kota,omitempty"`
	Kecamatan string            `json:"kecamatan,omitempty"`
}

// 不同地区的地理编码服务使用不同的字段名，按顺序取第一个非空值
var (
	provinceKeys = []string{"state", "province", "region"}
	cityKeys     = []string{"city", "county", "town"}
	districtKeys = []string{"suburb", "district"}
)

// BuildHierarchy 从地址组件构造层级视图，不会失败
func BuildHierarchy(components map[string]string, fallback string) Hierarchy {
	h := Hierarchy{
		Raw:      make(map[string]string, len(components)),
		Fallback: fallback,
	}
	if components == nil {
		return h
	}
	for k, v := range components {
		h.Raw[k] = v
	}

	h.Provinsi = firstPresent(components, provinceKeys)
	h.KabKota = firstPresent(components, cityKeys)
	h.Kecamatan = firstPresent(components, districtKeys)
	return h
}

// HierarchyOf 对可能为空的结果构造层级视图
func HierarchyOf(res *GeoResult, fallback string) Hierarchy {
	if res == nil {
		return BuildHierarchy(nil, fallback)
	}
	return BuildHierarchy(res.Components, fallback)
}

func firstPresent(components map[string]string, keys []string) string {
	for _, k := range keys {
		if v := components[k]; v != "" {
			return v
		}
	}
	return ""
}
