package mammo

import (
	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// Option configures a Dataset during construction
type Option func(*Dataset) error

// NewDataset creates a Dataset with the given options
func NewDataset(opts ...Option) (*Dataset, error) {
	ds := &Dataset{Elements: make(map[Tag]*Element)}
	for _, opt := range opts {
		if err := opt(ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// WithElement adds a single element to the dataset
func WithElement(t tag.Tag, value interface{}) Option {
	return func(ds *Dataset) error {
		internalTag := Tag{Group: t.Group, Element: t.Element}
		ds.Elements[internalTag] = &Element{
			Tag:   internalTag,
			VR:    GetVR(t),
			Value: value,
		}
		return nil
	}
}

// WithSequence adds a sequence element to the dataset
func WithSequence(t tag.Tag, items ...*Dataset) Option {
	return func(ds *Dataset) error {
		internalTag := Tag{Group: t.Group, Element: t.Element}
		ds.Elements[internalTag] = &Element{
			Tag:   internalTag,
			VR:    "SQ",
			Value: items,
		}
		return nil
	}
}

// GetVR returns the Value Representation (VR) for a standard tag
func GetVR(t tag.Tag) string {
	if t.Group == 0x0002 {
		return "UI"
	}

	switch t {
	case tag.PatientName:
		return "PN"
	case tag.PatientID:
		return "LO"
	case tag.PatientAge:
		return "AS"

	case tag.StudyDate:
		return "DA"
	case tag.AccessionNumber:
		return "SH"
	case tag.StudyDescription:
		return "LO"
	case tag.SeriesDescription:
		return "LO"
	case tag.StudyInstanceUID:
		return "UI"
	case tag.SeriesInstanceUID:
		return "UI"
	case tag.StudyID:
		return "SH"
	case tag.InstanceNumber:
		return "IS"

	case tag.Modality:
		return "CS"
	case tag.PresentationIntentType:
		return "CS"
	case tag.ImageType:
		return "CS"
	case tag.BodyPartExamined:
		return "CS"

	case tag.Manufacturer:
		return "LO"
	case tag.InstitutionName:
		return "LO"
	case tag.ManufacturerModelName:
		return "LO"

	case tag.PhotometricInterpretation:
		return "CS"
	case tag.Rows:
		return "US"
	case tag.Columns:
		return "US"
	case tag.BitsStored:
		return "US"
	case tag.NumberOfFrames:
		return "IS"
	case tag.PixelSpacing:
		return "DS"
	case tag.ImagerPixelSpacing:
		return "DS"

	case tag.ViewPosition:
		return "CS"
	case tag.Laterality:
		return "CS"
	case tag.ImageLaterality:
		return "CS"
	case tag.FrameLaterality:
		return "CS"
	case tag.CodeMeaning:
		return "LO"

	case tag.BodyPartThickness:
		return "DS"
	case tag.PaddleDescription:
		return "LO"
	case tag.BreastImplantPresent:
		return "CS"

	case tag.SOPClassUID:
		return "UI"
	case tag.SOPInstanceUID:
		return "UI"

	case tag.ViewCodeSequence:
		return "SQ"
	case tag.ViewModifierCodeSequence:
		return "SQ"
	case tag.FrameAnatomySequence:
		return "SQ"
	case tag.SharedFunctionalGroupsSequence:
		return "SQ"
	}

	return "UN"
}
