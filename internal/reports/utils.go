package reports

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ReportFolderPath returns the storage folder of the files published for an analysis
func ReportFolderPath(station, pollutant string, cutoff time.Time) string {
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s",
		cutoff.Year(), cutoff.Month(), cutoff.Day(), folderName(station+" "+pollutant))
}

// folderName keeps letters and digits, joining the rest with dashes
func folderName(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
