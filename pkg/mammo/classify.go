package mammo

import (
	"strings"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// MammographyModality is the expected DICOM modality code
const MammographyModality = "MG"

// secondaryCaptureSOPClassPrefix covers the secondary-capture SOP class family
const secondaryCaptureSOPClassPrefix = "1.2.840.10008.5.1.4.1.1.7"

// Metadata is the classification result for one image
type Metadata struct {
	Technique        Technique
	Laterality       Laterality
	ViewPosition     ViewPosition
	ImageType        ImageTypeFields
	ForProcessing    bool
	HasImplant       bool
	SpotCompression  bool
	Magnified        bool
	ImplantDisplaced bool
	SecondaryCapture bool
	Manufacturer     string
	ModelName        string
	Frames           int
	Modality         string
}

// IsStandardView reports whether the image is a CC or MLO projection
func (m *Metadata) IsStandardView() bool {
	return m.ViewPosition.IsStandard()
}

// Is2D reports whether the image is a single 2D projection
func (m *Metadata) Is2D() bool {
	return m.Technique.Is2D()
}

// ClassifyOptions adjusts classification behavior
type ClassifyOptions struct {
	// FilmBased marks the source as a digitized film-screen image
	FilmBased bool
	// IgnoreModality skips the modality validation gate
	IgnoreModality bool
}

// Classify produces the full metadata classification for one image
func Classify(r TagReader, opts ClassifyOptions) (*Metadata, error) {
	technique, err := ClassifyTechnique(r, opts)
	if err != nil {
		return nil, err
	}

	manufacturer, _ := r.GetString(tag.Manufacturer)
	model, _ := r.GetString(tag.ManufacturerModelName)

	m := &Metadata{
		Technique:        technique,
		Laterality:       ExtractLaterality(r),
		ViewPosition:     ExtractViewPosition(r),
		ImageType:        ExtractImageType(r),
		ForProcessing:    isForProcessing(r),
		HasImplant:       hasImplant(r),
		SpotCompression:  isSpotCompression(r),
		Magnified:        isMagnified(r),
		ImplantDisplaced: isImplantDisplaced(r),
		SecondaryCapture: isSecondaryCapture(r),
		Manufacturer:     strings.TrimSpace(manufacturer),
		ModelName:        strings.TrimSpace(model),
		Frames:           GetNumberOfFrames(r),
		Modality:         GetModality(r),
	}
	return m, nil
}

// ClassifyTechnique runs the ordered technique classification cascade.
// Rules are evaluated in order, first match wins.
func ClassifyTechnique(r TagReader, opts ClassifyOptions) (Technique, error) {
	if !opts.IgnoreModality {
		if modality, ok := r.GetString(tag.Modality); ok {
			if strings.TrimSpace(modality) != MammographyModality {
				return TechniqueUnknown, ValidationError{
					Tag:     tag.Modality,
					Value:   modality,
					Message: "expected modality " + MammographyModality,
				}
			}
		}
	}

	// multi-frame volumes are always 3D
	if frames, ok := r.GetInt(tag.NumberOfFrames); ok && frames > 1 {
		return TechniqueTomosynthesis, nil
	}

	imgType := ExtractImageType(r)
	pixels := strings.ToLower(imgType.Pixels)
	exam := strings.ToLower(imgType.Exam)
	var flavor string
	if imgType.Flavor != nil {
		flavor = strings.ToLower(*imgType.Flavor)
	}

	machine, _ := r.GetString(tag.ManufacturerModelName)
	machine = strings.ToLower(strings.TrimSpace(machine))
	seriesDesc := strings.ToLower(GetSeriesDescription(r))

	if imgType.Pixels == "" || imgType.Exam == "" {
		return TechniqueFullFieldDigital, nil
	}

	if opts.FilmBased {
		return TechniqueFilmScreen, nil
	}

	if seriesDesc != "" && (strings.Contains(seriesDesc, "s-view") || strings.Contains(seriesDesc, "c-view")) {
		return TechniqueSynthetic2D, nil
	}

	if strings.Contains(pixels, "original") {
		return TechniqueFullFieldDigital, nil
	}

	if strings.Contains(flavor, "tomo_2d") {
		return TechniqueSynthetic2D, nil
	}

	for _, extra := range imgType.Extras {
		if strings.Contains(strings.ToLower(extra), "generated_2d") {
			return TechniqueSynthetic2D, nil
		}
	}

	// legacy Fuji units export synthetics without any of the usual markers
	if pixels == "derived" && exam == "primary" && machine == "fdr-3000aws" && flavor != "post_contrast" {
		return TechniqueSynthetic2D, nil
	}

	return TechniqueFullFieldDigital, nil
}

// ExtractLaterality resolves the breast side with ordered fallback:
// ImageLaterality, then Laterality, then the per-frame anatomy sequence.
func ExtractLaterality(r TagReader) Laterality {
	if s, ok := r.GetString(tag.ImageLaterality); ok && strings.TrimSpace(s) != "" {
		return ParseLaterality(s)
	}
	if s, ok := r.GetString(tag.Laterality); ok && strings.TrimSpace(s) != "" {
		return ParseLaterality(s)
	}
	for _, shared := range r.GetItems(tag.SharedFunctionalGroupsSequence) {
		for _, anatomy := range shared.GetItems(tag.FrameAnatomySequence) {
			if s, ok := anatomy.GetString(tag.FrameLaterality); ok && strings.TrimSpace(s) != "" {
				return ParseLaterality(s)
			}
		}
	}
	return LateralityUnknown
}

// ExtractViewPosition gathers view position candidates from the primary
// tag (loose mode) and from the code sequences (strict mode), returning
// the maximum-ordinal candidate.
func ExtractViewPosition(r TagReader) ViewPosition {
	result := ViewUnknown

	if s, ok := r.GetString(tag.ViewPosition); ok {
		if v := ParseViewPosition(s, false); v > result {
			result = v
		}
	}

	for _, item := range r.GetItems(tag.ViewCodeSequence) {
		if s, ok := item.GetString(tag.CodeMeaning); ok {
			if v := ParseViewPosition(s, true); v > result {
				result = v
			}
		}
		// modifier codes can be nested inside each view code item
		for _, mod := range item.GetItems(tag.ViewModifierCodeSequence) {
			if s, ok := mod.GetString(tag.CodeMeaning); ok {
				if v := ParseViewPosition(s, true); v > result {
					result = v
				}
			}
		}
	}

	for _, mod := range r.GetItems(tag.ViewModifierCodeSequence) {
		if s, ok := mod.GetString(tag.CodeMeaning); ok {
			if v := ParseViewPosition(s, true); v > result {
				result = v
			}
		}
	}

	return result
}

// viewModifierMeanings returns trimmed, lowercased code meanings from the
// top-level view modifier code sequence
func viewModifierMeanings(r TagReader) []string {
	var meanings []string
	for _, item := range r.GetItems(tag.ViewModifierCodeSequence) {
		if s, ok := item.GetString(tag.CodeMeaning); ok {
			meanings = append(meanings, strings.ToLower(strings.TrimSpace(s)))
		}
	}
	return meanings
}

func isSpotCompression(r TagReader) bool {
	// vendors encode the paddle in caps; "spot" in lowercase shows up in
	// unrelated words, so the paddle check stays case-sensitive
	if paddle, ok := r.GetString(tag.PaddleDescription); ok {
		if strings.Contains(paddle, "SPOT") || strings.Contains(paddle, "SPT") {
			return true
		}
	}
	if vp, ok := r.GetString(tag.ViewPosition); ok {
		if strings.Contains(strings.ToLower(vp), "spot") {
			return true
		}
	}
	for _, meaning := range viewModifierMeanings(r) {
		if strings.Contains(meaning, "spot compression") {
			return true
		}
	}
	return false
}

func isMagnified(r TagReader) bool {
	if paddle, ok := r.GetString(tag.PaddleDescription); ok {
		if strings.Contains(paddle, "MAG") {
			return true
		}
	}
	for _, meaning := range viewModifierMeanings(r) {
		if strings.Contains(meaning, "magnification") || strings.Contains(meaning, "magnified") {
			return true
		}
	}
	return false
}

func isImplantDisplaced(r TagReader) bool {
	for _, meaning := range viewModifierMeanings(r) {
		if strings.Contains(meaning, "implant displaced") {
			return true
		}
	}
	return false
}

func isForProcessing(r TagReader) bool {
	intent, ok := r.GetString(tag.PresentationIntentType)
	if !ok {
		return false
	}
	return strings.ToLower(strings.TrimSpace(intent)) == "for processing"
}

func hasImplant(r TagReader) bool {
	present, ok := r.GetString(tag.BreastImplantPresent)
	if !ok {
		return false
	}
	return strings.ToUpper(strings.TrimSpace(present)) == "YES"
}

func isSecondaryCapture(r TagReader) bool {
	return strings.HasPrefix(GetSOPClassUID(r), secondaryCaptureSOPClassPrefix)
}
