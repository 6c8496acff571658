package format

import (
    "fmt"
    "strings"
    "time"
)

// Amount formats a whole-unit donation amount for display.
// Example: Amount(1500, "UAH", "uk") => "1 500 ₴"
func Amount(amount int64, currency, lang string) string {
    currency = strings.ToUpper(currency)
    sep := ","
    if strings.ToLower(lang) == "uk" {
        sep = " "
    }
    switch currency {
    case "", "UAH":
        return thousandSep(amount, sep) + " ₴"
    case "USD":
        return "$" + thousandSep(amount, sep)
    case "EUR":
        return "€" + thousandSep(amount, sep)
    default:
        return fmt.Sprintf("%s %s", thousandSep(amount, sep), currency)
    }
}

func thousandSep(n int64, sep string) string {
    s := fmt.Sprintf("%d", n)
    neg := false
    if strings.HasPrefix(s, "-") {
        neg = true
        s = s[1:]
    }
    var b strings.Builder
    for i, c := range s {
        if i != 0 && (len(s)-i)%3 == 0 {
            b.WriteString(sep)
        }
        b.WriteRune(c)
    }
    if neg {
        return "-" + b.String()
    }
    return b.String()
}

// Date formats an event date in a locale-friendly short form.
func Date(t time.Time, lang string) string {
    switch strings.ToLower(lang) {
    case "uk":
        return t.Format("02.01.2006")
    default:
        return t.Format("Jan 2, 2006")
    }
}
