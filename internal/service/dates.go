package service

import (
	"fmt"
	"strings"
	"time"
)

// Month names as used in Egypt (ar-EG).
var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

// FormatPostDate renders t as a long ar-EG date, e.g. "١٩ أكتوبر ٢٠٢٦".
func FormatPostDate(t time.Time) string {
	return arabicDigits.Replace(fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year()))
}

// FormatContactDate renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatContactDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
