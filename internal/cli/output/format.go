package output

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a bold markdown key followed by its value.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("**%s:** %s", key, value)
}

// FormatWeight formats a molecular weight with digit grouping and a fixed
// number of decimal places.
func FormatWeight(w float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return printer.Sprintf("%."+strconv.Itoa(precision)+"f", w)
}

// FormatPercent formats a mass fraction as a percentage with two decimals.
func FormatPercent(p float64) string {
	return printer.Sprintf("%.2f%%", p)
}

// FormatCount formats an integer count with digit grouping.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
