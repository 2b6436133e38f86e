package core

import "strconv"

// FormatAmount renders a whole-unit amount as a currency string with
// thousands separators, e.g. ₩1,234,500. Amounts are always whole units so
// there is no fractional part to render.
func FormatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	s := "₩" + string(out)
	if neg {
		return "-" + s
	}
	return s
}
