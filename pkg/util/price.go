package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidArgument is wrapped by every validation failure in this package.
var ErrInvalidArgument = errors.New("잘못된 입력입니다")

var (
	hundred      = decimal.NewFromInt(100)
	pricePrinter = message.NewPrinter(language.Korean)
)

// PriceValidation is the non-failing result of ValidatePriceInput.
type PriceValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// CalculateSalePrice applies discountRate (percent) to originalPrice and rounds
// half away from zero.
func CalculateSalePrice(originalPrice int64, discountRate float64) (int64, error) {
	if originalPrice < 0 {
		return 0, fmt.Errorf("%w: 정가는 0 이상이어야 합니다", ErrInvalidArgument)
	}
	if math.IsNaN(discountRate) || discountRate < 0 || discountRate > 100 {
		return 0, fmt.Errorf("%w: 할인율은 0에서 100 사이여야 합니다", ErrInvalidArgument)
	}

	multiplier := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discountRate).Div(hundred))
	return decimal.NewFromInt(originalPrice).Mul(multiplier).Round(0).IntPart(), nil
}

// CalculateDiscountRate returns the discount percent with one decimal place.
func CalculateDiscountRate(originalPrice, salePrice int64) (float64, error) {
	if originalPrice <= 0 {
		return 0, fmt.Errorf("%w: 정가는 0보다 커야 합니다", ErrInvalidArgument)
	}
	if salePrice < 0 {
		return 0, fmt.Errorf("%w: 판매가는 0 이상이어야 합니다", ErrInvalidArgument)
	}
	if salePrice > originalPrice {
		return 0, fmt.Errorf("%w: 판매가는 정가보다 클 수 없습니다", ErrInvalidArgument)
	}

	original := decimal.NewFromInt(originalPrice)
	rate := original.Sub(decimal.NewFromInt(salePrice)).Div(original).Mul(hundred)
	return rate.Round(1).InexactFloat64(), nil
}

// FormatPrice renders n with Korean digit grouping, e.g. "29,000원".
func FormatPrice(n int64) string {
	return pricePrinter.Sprintf("%d원", n)
}

func FormatDiscountRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// ValidatePriceInput is the form-facing guard; it never returns an error.
func ValidatePriceInput(originalPrice, discountRate float64) PriceValidation {
	if math.IsNaN(originalPrice) || math.IsInf(originalPrice, 0) || originalPrice < 0 {
		return PriceValidation{Error: "정가를 올바르게 입력해주세요"}
	}
	if math.IsNaN(discountRate) || math.IsInf(discountRate, 0) || discountRate < 0 || discountRate > 100 {
		return PriceValidation{Error: "할인율은 0에서 100 사이로 입력해주세요"}
	}
	return PriceValidation{Valid: true}
}
