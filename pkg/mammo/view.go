package mammo

import "fmt"

// CanonicalView is one of the four standard laterality/projection
// combinations of a complete bilateral screening study
type CanonicalView struct {
	Laterality Laterality
	Position   ViewPosition
}

// The four canonical views, in reporting order
var (
	ViewLeftMLO  = CanonicalView{LateralityLeft, ViewMLO}
	ViewRightMLO = CanonicalView{LateralityRight, ViewMLO}
	ViewLeftCC   = CanonicalView{LateralityLeft, ViewCC}
	ViewRightCC  = CanonicalView{LateralityRight, ViewCC}
)

// CanonicalViews lists all four canonical views in reporting order
func CanonicalViews() []CanonicalView {
	return []CanonicalView{ViewLeftMLO, ViewRightMLO, ViewLeftCC, ViewRightCC}
}

// String returns the short form, e.g. "L-MLO"
func (cv CanonicalView) String() string {
	return fmt.Sprintf("%s-%s", cv.Laterality.Code(), cv.Position)
}

// Matches reports whether a record qualifies as a candidate for this
// canonical view: exact laterality plus view-family membership.
func (cv CanonicalView) Matches(rec *Record) bool {
	if rec.Metadata.Laterality != cv.Laterality {
		return false
	}
	switch cv.Position {
	case ViewMLO:
		return rec.Metadata.ViewPosition.IsObliqueLateralGroup()
	case ViewCC:
		return rec.Metadata.ViewPosition.IsCraniocaudalGroup()
	}
	return false
}
