package steam

// PriceOverview Steam 社区市场 priceoverview 接口的响应
type PriceOverview struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

// BestPriceText 返回用于报警判断的价格文本
// 优先使用 lowest_price，缺失时回退到 median_price，
// 这一回退顺序是有意保留的行为，不是实现细节
func (p *PriceOverview) BestPriceText() string {
	if p.LowestPrice != "" {
		return p.LowestPrice
	}
	return p.MedianPrice
}
