package steam

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice 将市场返回的价格文本解析为十进制数值
// 例如 "£1,234.56" -> 1234.56，"2,50€" -> 2.50
// 无法解析返回 false，这是正常情况而不是错误
func ParsePrice(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, false
	}

	// 去掉数字、逗号、句点、负号以外的所有字符（货币符号、空格等）
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	// 只有逗号没有句点时，逗号是小数分隔符（欧式写法）
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	// 剩余的逗号是千位分隔符
	s = strings.ReplaceAll(s, ",", "")

	// 多个句点时，最后一个才是小数点，其余是千位分隔符
	if parts := strings.Split(s, "."); len(parts) > 2 {
		s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	return v, true
}
