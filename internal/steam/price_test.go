package steam

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{name: "pound with thousands separator", text: "£1,234.56", want: "1234.56", ok: true},
		{name: "dollar", text: "$12.50", want: "12.50", ok: true},
		{name: "euro decimal comma", text: "2,50€", want: "2.50", ok: true},
		{name: "plain number", text: "0.32", want: "0.32", ok: true},
		{name: "integer", text: "7", want: "7", ok: true},
		{name: "negative", text: "-£3.20", want: "-3.20", ok: true},
		{name: "several thousand groups", text: "$1,000,000.50", want: "1000000.50", ok: true},
		{name: "period thousands separators", text: "1.234.567", want: "1234.567", ok: true},
		{name: "surrounding text", text: "ca. 12.50 USD", want: "12.50", ok: true},
		{name: "empty", text: "", ok: false},
		{name: "whitespace only", text: "   ", ok: false},
		{name: "no digits", text: "n/a", ok: false},
		{name: "symbols only", text: "£", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				want := decimal.RequireFromString(tt.want)
				assert.True(t, got.Equal(want), "got %s, want %s", got, want)
			}
		})
	}
}

func TestParsePriceNeverPanics(t *testing.T) {
	// 各种畸形输入都只应返回 false
	inputs := []string{"-", ".", ",", "-.", "..", ",,", "1-2", "--5"}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			ParsePrice(input)
		}, "input %q", input)
	}
}

func TestBestPriceText(t *testing.T) {
	// lowest_price 优先，缺失时回退 median_price
	withLowest := &PriceOverview{LowestPrice: "£0.32", MedianPrice: "£0.35"}
	assert.Equal(t, "£0.32", withLowest.BestPriceText())

	medianOnly := &PriceOverview{MedianPrice: "£0.35"}
	assert.Equal(t, "£0.35", medianOnly.BestPriceText())

	empty := &PriceOverview{}
	assert.Equal(t, "", empty.BestPriceText())
}
