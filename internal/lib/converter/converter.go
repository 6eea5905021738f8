package converter

import (
	"math"
	"strconv"
)

// Amounts travel as rupee floats on the wire and in the settlement table,
// and live as integer paise inside the engine. 1.23 on the wire is 123
// internally.

func ConvertAmountFloatToInt(amount float64) int {
	return int(math.Round(amount * 100))
}

func ConvertAmountIntToFloat(amount int) float64 {
	return float64(amount) / 100
}

func ConvertAmountIntToString(amount int) string {
	return strconv.FormatFloat(ConvertAmountIntToFloat(amount), 'f', 2, 64)
}
