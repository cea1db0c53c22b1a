package intent

import (
	"regexp"
	"strconv"
	"strings"

	"engmarket/orchestrator/pkg/models"
)

var (
	// A capitalized phrase following "for" is treated as a project name,
	// e.g. `... for Riyadh Tower` -> "Riyadh Tower".
	projectNameRe = regexp.MustCompile(`\bfor\s+([A-Z][\w-]*(?:\s+[A-Z][\w-]*)*)`)

	// Runs of digits with optional thousands separators and decimal point.
	numberRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

	// First date-shaped token, D/M/YY or D-M-YYYY style.
	dateRe = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
)

// ExtractParams pulls coarse parameters out of the original (case-preserved)
// message. It never fails: fields are simply absent when nothing matches.
func ExtractParams(message string) models.ExtractedParams {
	var params models.ExtractedParams

	if m := projectNameRe.FindStringSubmatch(message); m != nil {
		params.ProjectName = strings.TrimSpace(m[1])
	}

	for _, raw := range numberRe.FindAllString(message, -1) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		params.Numbers = append(params.Numbers, n)
	}

	if m := dateRe.FindString(message); m != "" {
		params.Date = m
	}

	return params
}
