// Package tag defines the standard DICOM tags used for mammography metadata
package tag

// Tag represents a DICOM tag with Group and Element
type Tag struct {
	Group   uint16
	Element uint16
}

// New creates a new Tag
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// Equals compares two tags
func (t Tag) Equals(other Tag) bool {
	return t.Group == other.Group && t.Element == other.Element
}

// IsPrivate returns true if this is a private tag (odd group number)
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// File Meta Information (Group 0002)
var (
	TransferSyntaxUID = Tag{0x0002, 0x0010}
)

// General Study / Series Module
var (
	StudyDate              = Tag{0x0008, 0x0020}
	AccessionNumber        = Tag{0x0008, 0x0050}
	Modality               = Tag{0x0008, 0x0060}
	PresentationIntentType = Tag{0x0008, 0x0068}
	StudyDescription       = Tag{0x0008, 0x1030}
	SeriesDescription      = Tag{0x0008, 0x103E}
	StudyInstanceUID       = Tag{0x0020, 0x000D}
	SeriesInstanceUID      = Tag{0x0020, 0x000E}
	StudyID                = Tag{0x0020, 0x0010}
	InstanceNumber         = Tag{0x0020, 0x0013}
)

// SOP Common Module
var (
	SOPClassUID    = Tag{0x0008, 0x0016}
	SOPInstanceUID = Tag{0x0008, 0x0018}
)

// General Equipment Module
var (
	Manufacturer          = Tag{0x0008, 0x0070}
	InstitutionName       = Tag{0x0008, 0x0080}
	ManufacturerModelName = Tag{0x0008, 0x1090}
)

// General Image / Image Pixel Module
var (
	ImageType                 = Tag{0x0008, 0x0008}
	NumberOfFrames            = Tag{0x0028, 0x0008}
	PhotometricInterpretation = Tag{0x0028, 0x0004}
	Rows                      = Tag{0x0028, 0x0010}
	Columns                   = Tag{0x0028, 0x0011}
	BitsStored                = Tag{0x0028, 0x0101}
	PixelSpacing              = Tag{0x0028, 0x0030}
	ImagerPixelSpacing        = Tag{0x0018, 0x1164}
)

// Laterality and view tags
var (
	BodyPartExamined               = Tag{0x0018, 0x0015}
	ViewPosition                   = Tag{0x0018, 0x5101}
	Laterality                     = Tag{0x0020, 0x0060}
	ImageLaterality                = Tag{0x0020, 0x0062}
	FrameAnatomySequence           = Tag{0x0020, 0x9071}
	FrameLaterality                = Tag{0x0020, 0x9072}
	ViewCodeSequence               = Tag{0x0054, 0x0220}
	ViewModifierCodeSequence       = Tag{0x0054, 0x0222}
	CodeMeaning                    = Tag{0x0008, 0x0104}
	SharedFunctionalGroupsSequence = Tag{0x5200, 0x9229}
)

// Mammography acquisition tags
var (
	BodyPartThickness    = Tag{0x0018, 0x1075}
	PaddleDescription    = Tag{0x0018, 0x1405}
	BreastImplantPresent = Tag{0x0028, 0x1300}
)

// Patient Module
var (
	PatientName = Tag{0x0010, 0x0010}
	PatientID   = Tag{0x0010, 0x0020}
	PatientAge  = Tag{0x0010, 0x1010}
)

// Name returns a human-readable name for well-known tags
func (t Tag) Name() string {
	switch t {
	case ImageType:
		return "ImageType"
	case Modality:
		return "Modality"
	case PresentationIntentType:
		return "PresentationIntentType"
	case SeriesDescription:
		return "SeriesDescription"
	case SOPClassUID:
		return "SOPClassUID"
	case SOPInstanceUID:
		return "SOPInstanceUID"
	case StudyInstanceUID:
		return "StudyInstanceUID"
	case Manufacturer:
		return "Manufacturer"
	case ManufacturerModelName:
		return "ManufacturerModelName"
	case NumberOfFrames:
		return "NumberOfFrames"
	case Rows:
		return "Rows"
	case Columns:
		return "Columns"
	case PixelSpacing:
		return "PixelSpacing"
	case ImagerPixelSpacing:
		return "ImagerPixelSpacing"
	case ViewPosition:
		return "ViewPosition"
	case Laterality:
		return "Laterality"
	case ImageLaterality:
		return "ImageLaterality"
	case FrameAnatomySequence:
		return "FrameAnatomySequence"
	case FrameLaterality:
		return "FrameLaterality"
	case ViewCodeSequence:
		return "ViewCodeSequence"
	case ViewModifierCodeSequence:
		return "ViewModifierCodeSequence"
	case CodeMeaning:
		return "CodeMeaning"
	case SharedFunctionalGroupsSequence:
		return "SharedFunctionalGroupsSequence"
	case PaddleDescription:
		return "PaddleDescription"
	case BreastImplantPresent:
		return "BreastImplantPresent"
	default:
		return ""
	}
}
