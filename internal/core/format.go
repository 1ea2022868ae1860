// Package core holds the dashboard's domain: hour and money formatting,
// period and calendar derivation, and the payloads served by the backend.
//
// This file contains the display formatters shared by the web pages and the
// terminal client.
package core

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// HourFormat renders a decimal hour count as "H:MM".
//
// H is the floor of the value and MM the fractional remainder scaled to
// minutes, rounded to the nearest integer and zero padded. A remainder that
// rounds to 60 carries into the hour, so 0.999 renders "1:00".
//
// Examples:
//
//	HourFormat(1.5)  -> "1:30"
//	HourFormat(3.25) -> "3:15"
//	HourFormat(0)    -> "0:00"
func HourFormat(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return "0:00"
	}
	if hours < 0 {
		return "-" + HourFormat(-hours)
	}
	whole := math.Floor(hours)
	minutes := int(math.Round((hours - whole) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	mm := strconv.Itoa(minutes)
	if minutes < 10 {
		mm = "0" + mm
	}
	// whole can exceed the int64 range.
	return strconv.FormatFloat(whole, 'f', 0, 64) + ":" + mm
}

// Currency is the symbol prefixed to formatted amounts.
type Currency string

// Dollar is the default currency prefix.
const Dollar Currency = "$"

// Format truncates the amount toward zero and prefixes the symbol.
// Negative amounts keep their sign after the symbol: -3.2 renders "$-3".
func (c Currency) Format(amount decimal.Decimal) string {
	return string(c) + amount.Truncate(0).String()
}

// MoneyFormat formats an amount with the default currency.
func MoneyFormat(amount decimal.Decimal) string {
	return Dollar.Format(amount)
}

// Earnings returns hours multiplied by an hourly rate.
func Earnings(hours, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(hours).Mul(decimal.NewFromFloat(rate))
}

// PaceClass classifies a signed pace against the daily goal.
type PaceClass string

const (
	PaceBehind  PaceClass = "behind"
	PaceAhead   PaceClass = "ahead"
	PaceNeutral PaceClass = ""
)

// ClassifyPace reports PaceBehind when the deficit exceeds a full daily goal
// and PaceAhead for any surplus.
func ClassifyPace(pace, dailyGoal float64) PaceClass {
	switch {
	case pace < -dailyGoal:
		return PaceBehind
	case pace > 0:
		return PaceAhead
	default:
		return PaceNeutral
	}
}

// Percent renders a percentage at one decimal place without trailing zeros,
// e.g. "42%" or "12.5%".
func Percent(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "%"
}
