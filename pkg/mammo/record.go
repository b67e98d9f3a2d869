package mammo

// Record pairs one image's identity with its classified metadata and the
// handful of extra fields that drive preferred-view selection
type Record struct {
	// Source is an opaque reference to where the image came from,
	// typically a file path
	Source string

	Metadata *Metadata

	StudyInstanceUID string
	SOPInstanceUID   string

	// pixel geometry, zero when absent
	Rows    int
	Columns int

	// modifier flags lifted out of Metadata for selection
	SpotCompression  bool
	Magnified        bool
	ImplantDisplaced bool
}

// NewRecord classifies one image and captures its selection fields
func NewRecord(source string, r TagReader, opts ClassifyOptions) (*Record, error) {
	meta, err := Classify(r, opts)
	if err != nil {
		return nil, err
	}

	return &Record{
		Source:           source,
		Metadata:         meta,
		StudyInstanceUID: GetStudyInstanceUID(r),
		SOPInstanceUID:   GetSOPInstanceUID(r),
		Rows:             GetRows(r),
		Columns:          GetColumns(r),
		SpotCompression:  meta.SpotCompression,
		Magnified:        meta.Magnified,
		ImplantDisplaced: meta.ImplantDisplaced,
	}, nil
}

// ImageArea returns rows*columns, or 0 when geometry is absent
func (r *Record) ImageArea() int {
	if r.Rows <= 0 || r.Columns <= 0 {
		return 0
	}
	return r.Rows * r.Columns
}

// IsPreferredTo reports whether this record beats other under the given
// preference order. Six tiers, each resolved before the next:
// standard view, modifier-free, implant-displaced (same study only),
// technique rank, image area, SOP instance UID.
func (r *Record) IsPreferredTo(other *Record, order PreferenceOrder) bool {
	if a, b := r.Metadata.IsStandardView(), other.Metadata.IsStandardView(); a != b {
		return a
	}

	if a, b := r.modifierFree(), other.modifierFree(); a != b {
		return a
	}

	if r.StudyInstanceUID != "" && r.StudyInstanceUID == other.StudyInstanceUID {
		if r.ImplantDisplaced != other.ImplantDisplaced {
			return r.ImplantDisplaced
		}
	}

	if a, b := order.Rank(r.Metadata.Technique), order.Rank(other.Metadata.Technique); a != b {
		return a < b
	}

	if a, b := r.ImageArea(), other.ImageArea(); a != b {
		return a > b
	}

	// absent UIDs never compare, leaving equally preferred records tied
	if r.SOPInstanceUID != "" && other.SOPInstanceUID != "" {
		return r.SOPInstanceUID < other.SOPInstanceUID
	}
	return false
}

func (r *Record) modifierFree() bool {
	return !r.SpotCompression && !r.Magnified
}
