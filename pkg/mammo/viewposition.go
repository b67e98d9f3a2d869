package mammo

import "strings"

// ViewPosition is the projection angle of a mammogram.
// The ordinal order matters: resolution picks the maximum candidate.
type ViewPosition int

const (
	ViewUnknown ViewPosition = iota
	ViewXCCL                 // cranio-caudal exaggerated laterally
	ViewXCCM                 // cranio-caudal exaggerated medially
	ViewCC                   // cranio-caudal
	ViewMLO                  // medio-lateral oblique
	ViewML                   // medio-lateral
	ViewLMO                  // latero-medial oblique
	ViewLM                   // latero-medial
	ViewAT                   // axillary tail
	ViewCV                   // cleavage view
)

var (
	ccStrings = []string{"cranio-caudal", "caudal-cranial"}
	mlStrings = []string{"medio-lateral", "medial-lateral"}
	lmStrings = []string{"latero-medial", "lateral-medial"}
	atStrings = []string{"axillary tail"}
	cvStrings = []string{"cleavage view", "valley-view"}
)

// String returns the abbreviation for a view position
func (v ViewPosition) String() string {
	switch v {
	case ViewXCCL:
		return "XCCL"
	case ViewXCCM:
		return "XCCM"
	case ViewCC:
		return "CC"
	case ViewMLO:
		return "MLO"
	case ViewML:
		return "ML"
	case ViewLMO:
		return "LMO"
	case ViewLM:
		return "LM"
	case ViewAT:
		return "AT"
	case ViewCV:
		return "CV"
	default:
		return "Unknown"
	}
}

// IsStandard reports whether this is one of the two standard screening views
func (v ViewPosition) IsStandard() bool {
	return v == ViewCC || v == ViewMLO
}

// IsObliqueLateralGroup reports whether the view belongs to the MLO-like
// family of lateral and oblique projections
func (v ViewPosition) IsObliqueLateralGroup() bool {
	switch v {
	case ViewMLO, ViewML, ViewLMO, ViewLM:
		return true
	}
	return false
}

// IsCraniocaudalGroup reports whether the view belongs to the CC-like
// family of cranio-caudal projections
func (v ViewPosition) IsCraniocaudalGroup() bool {
	switch v {
	case ViewCC, ViewXCCL, ViewXCCM:
		return true
	}
	return false
}

// ParseViewPosition parses a view position string. Strict mode matches
// only exact abbreviations and canonical phrases; loose mode additionally
// accepts abbreviations embedded as whole words in surrounding text.
func ParseViewPosition(s string, strict bool) ViewPosition {
	lower := strings.ToLower(strings.TrimSpace(s))

	if v, ok := matchStrict(lower); ok {
		return v
	}
	if !strict {
		if v, ok := matchLoose(lower); ok {
			return v
		}
	}
	return ViewUnknown
}

func matchStrict(s string) (ViewPosition, bool) {
	switch {
	case equalsAny(ccStrings, s) || s == "cc":
		return ViewCC, true
	// LMO before MLO, both contain "oblique" plus a laterality word
	case matchesLMO(s):
		return ViewLMO, true
	case matchesMLO(s):
		return ViewMLO, true
	// LM before ML for the same reason
	case equalsAny(lmStrings, s) || s == "lm":
		return ViewLM, true
	case equalsAny(mlStrings, s) || s == "ml":
		return ViewML, true
	case strings.Contains(s, "exaggerated laterally") || s == "xccl":
		return ViewXCCL, true
	case strings.Contains(s, "exaggerated medially") || s == "xccm":
		return ViewXCCM, true
	case containsAny(atStrings, s) || s == "at":
		return ViewAT, true
	case containsAny(cvStrings, s) || s == "cv":
		return ViewCV, true
	}
	return ViewUnknown, false
}

func matchesLMO(s string) bool {
	return s == "lmo" ||
		s == "latero-medial oblique" ||
		s == "lateral-medial oblique" ||
		(strings.Contains(s, "oblique") && strings.Contains(s, "latero"))
}

func matchesMLO(s string) bool {
	return s == "mlo" ||
		s == "medio-lateral oblique" ||
		s == "medial-lateral oblique" ||
		(strings.Contains(s, "oblique") && strings.Contains(s, "medio")) ||
		(strings.Contains(s, "oblique") && strings.Contains(s, "medial") && !strings.Contains(s, "latero"))
}

func matchLoose(s string) (ViewPosition, bool) {
	// more specific abbreviations first so "xccl" doesn't match as "cc"
	switch {
	case strings.Contains(s, "xccl"):
		return ViewXCCL, true
	case strings.Contains(s, "xccm"):
		return ViewXCCM, true
	case strings.Contains(s, "mlo"):
		return ViewMLO, true
	case strings.Contains(s, "lmo"):
		return ViewLMO, true
	case containsToken(s, "cc"):
		return ViewCC, true
	case containsToken(s, "ml"):
		return ViewML, true
	case containsToken(s, "lm"):
		return ViewLM, true
	case containsToken(s, "at"):
		return ViewAT, true
	case containsToken(s, "cv"):
		return ViewCV, true
	}
	return ViewUnknown, false
}

func equalsAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if s == p {
			return true
		}
	}
	return false
}

func containsAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func containsToken(s, token string) bool {
	isSep := func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}
	for _, part := range strings.FieldsFunc(s, isSep) {
		if part == token {
			return true
		}
	}
	return false
}
