package delivery

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// ParseLang negotiates a supported language from an explicit choice (e.g. a
// ?lang= query value) and/or an Accept-Language header. English wins ties.
func ParseLang(explicit, acceptLanguage string) Lang {
	_, idx := language.MatchStrings(matcher, explicit, acceptLanguage)
	if idx == 1 {
		return Arabic
	}
	return English
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatDuration renders a delivery window such as "1 hour and 30 minutes".
func FormatDuration(minutes int, lang Lang) string {
	if lang == Arabic {
		return formatArabic(minutes)
	}

	switch {
	case minutes < 60:
		return plural(minutes, "minute", "minutes")
	case minutes == 60:
		return "1 hour"
	case minutes < 1440:
		hours, rest := minutes/60, minutes%60
		if rest == 0 {
			return plural(hours, "hour", "hours")
		}
		return plural(hours, "hour", "hours") + " and " + plural(rest, "minute", "minutes")
	default:
		days, hours := minutes/1440, (minutes%1440)/60
		if hours == 0 {
			return plural(days, "day", "days")
		}
		return plural(days, "day", "days") + " and " + plural(hours, "hour", "hours")
	}
}

func formatArabic(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d دقيقة", minutes)
	case minutes == 60:
		return "ساعة واحدة"
	case minutes < 1440:
		hours, rest := minutes/60, minutes%60
		if rest == 0 {
			return fmt.Sprintf("%d ساعة", hours)
		}
		return fmt.Sprintf("%d ساعة و %d دقيقة", hours, rest)
	default:
		days, hours := minutes/1440, (minutes%1440)/60
		if hours == 0 {
			return fmt.Sprintf("%d يوم", days)
		}
		return fmt.Sprintf("%d يوم و %d ساعة", days, hours)
	}
}

// Progress is how an order is tracking against its estimate.
type Progress string

const (
	ProgressDelivered Progress = "Delivered"
	ProgressCanceled  Progress = "Canceled"
	ProgressDelayed   Progress = "Delayed"
	ProgressOnTime    Progress = "On Time"
)

// ProgressOf classifies an order from its status and estimated delivery date.
func ProgressOf(status string, eta, now time.Time) Progress {
	switch status {
	case "Delivered":
		return ProgressDelivered
	case "Canceled":
		return ProgressCanceled
	}
	if now.After(eta) {
		return ProgressDelayed
	}
	return ProgressOnTime
}

func (p Progress) Label(lang Lang) string {
	if lang != Arabic {
		return string(p)
	}
	switch p {
	case ProgressDelivered:
		return "تم التسليم"
	case ProgressCanceled:
		return "ملغي"
	case ProgressDelayed:
		return "متأخر"
	default:
		return "في الوقت المحدد"
	}
}
