package legal

import (
	"fmt"
	"strings"
)

// regionNationwide is the fallback scope when a request carries no usable
// location. The register data itself is Chinese, so the scope label is too.
const regionNationwide = "全国"

// Location is the resolved scope of a search request.
type Location struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

// ResolveLocation normalizes the location hints of a request. A bare region
// stands in for the province, and an empty province widens to nationwide.
func ResolveLocation(province, city, region string) Location {
	province = strings.TrimSpace(province)
	city = strings.TrimSpace(city)
	region = strings.TrimSpace(region)

	if region != "" && province == "" {
		province = region
	}
	if province == "" {
		province = regionNationwide
	}
	if city == "" {
		city = province
	}
	return Location{Province: province, City: city}
}

// Result is one search hit.
type Result struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
	URL  string `json:"url"`
}

// Search returns every row whose name or region contains the keyword,
// case-insensitively, in register order.
func Search(rows []Row, keyword string) []Result {
	needle := strings.ToLower(keyword)
	results := []Result{}
	for _, row := range rows {
		if !strings.Contains(strings.ToLower(row.Name), needle) &&
			!strings.Contains(strings.ToLower(row.Region), needle) {
			continue
		}
		name := row.Name
		if name == "" {
			name = "未命名法律"
		}
		region := row.Region
		if region == "" {
			region = "未知"
		}
		results = append(results, Result{
			Name: name,
			Desc: fmt.Sprintf("地区: %s", region),
			URL:  row.URL,
		})
	}
	return results
}

// Page is one slice of paginated results.
type Page struct {
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Total    int      `json:"total"`
	Results  []Result `json:"results"`
}

// Paginate clamps page to at least 1 and pageSize to 1..50, then slices.
func Paginate(results []Result, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize > 50 {
		pageSize = 50
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(results)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Results:  results[start:end],
	}
}

// Recommendation is a law suggested for the caller's region.
type Recommendation struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

const maxRecommendations = 6

// Recommend picks up to six distinct laws matching the caller's province or
// city; a nationwide scope recommends from the whole register.
func Recommend(rows []Row, loc Location) []Recommendation {
	matched := rows
	if loc.Province != "" && loc.Province != regionNationwide {
		matched = nil
		for _, row := range rows {
			if strings.Contains(row.Region, loc.Province) || strings.Contains(row.Region, loc.City) {
				matched = append(matched, row)
			}
		}
	}

	recommended := []Recommendation{}
	seen := make(map[string]bool)
	for _, row := range matched {
		key := row.Name + "\x00" + row.URL
		if seen[key] {
			continue
		}
		seen[key] = true

		title := row.Name
		if title == "" {
			title = "未命名法律"
		}
		region := row.Region
		if region == "" {
			region = "未知"
		}
		recommended = append(recommended, Recommendation{
			Title: title,
			Desc:  fmt.Sprintf("来自: %s", region),
		})
		if len(recommended) >= maxRecommendations {
			break
		}
	}
	return recommended
}
