package mammo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// mgDataset builds a minimal MG dataset plus any extra options
func mgDataset(t *testing.T, opts ...Option) *Dataset {
	t.Helper()
	all := append([]Option{WithElement(tag.Modality, "MG")}, opts...)
	ds, err := NewDataset(all...)
	require.NoError(t, err)
	return ds
}

func TestClassifyTechnique_MultiFrameIsTomo(t *testing.T) {
	ds := mgDataset(t,
		WithElement(tag.NumberOfFrames, "10"),
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
	)
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueTomosynthesis, tech)
}

func TestClassifyTechnique_OriginalIsFFDM(t *testing.T) {
	ds := mgDataset(t, WithElement(tag.ImageType, `ORIGINAL\PRIMARY`))
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)
}

func TestClassifyTechnique_InsufficientImageTypeIsFFDM(t *testing.T) {
	// a single-valued or missing ImageType cannot drive the derived rules
	ds := mgDataset(t, WithElement(tag.ImageType, "ORIGINAL"))
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)

	ds = mgDataset(t)
	tech, err = ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)
}

func TestClassifyTechnique_FilmBasedOverride(t *testing.T) {
	ds := mgDataset(t, WithElement(tag.ImageType, `ORIGINAL\PRIMARY`))
	tech, err := ClassifyTechnique(ds, ClassifyOptions{FilmBased: true})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFilmScreen, tech)

	// the override beats markers that would otherwise classify synthetic
	ds = mgDataset(t,
		WithElement(tag.ImageType, `DERIVED\PRIMARY\TOMO_2D`),
		WithElement(tag.SeriesDescription, "C-View"),
	)
	tech, err = ClassifyTechnique(ds, ClassifyOptions{FilmBased: true})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFilmScreen, tech)
}

func TestClassifyTechnique_SeriesDescriptionSynthetic(t *testing.T) {
	for _, desc := range []string{"C-View Reconstruction", "Breast S-VIEW"} {
		ds := mgDataset(t,
			WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
			WithElement(tag.SeriesDescription, desc),
		)
		tech, err := ClassifyTechnique(ds, ClassifyOptions{})
		require.NoError(t, err)
		assert.Equal(t, TechniqueSynthetic2D, tech, desc)
	}
}

func TestClassifyTechnique_Tomo2DFlavor(t *testing.T) {
	ds := mgDataset(t, WithElement(tag.ImageType, `DERIVED\PRIMARY\TOMO_2D`))
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueSynthetic2D, tech)
}

func TestClassifyTechnique_Generated2DExtra(t *testing.T) {
	ds := mgDataset(t, WithElement(tag.ImageType, `DERIVED\PRIMARY\\generated_2d`))
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueSynthetic2D, tech)
}

func TestClassifyTechnique_FujiSynthetic(t *testing.T) {
	ds := mgDataset(t,
		WithElement(tag.ImageType, `DERIVED\PRIMARY`),
		WithElement(tag.ManufacturerModelName, "FDR-3000AWS"),
	)
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueSynthetic2D, tech)

	// post-contrast exports from the same unit are real acquisitions
	ds = mgDataset(t,
		WithElement(tag.ImageType, `DERIVED\PRIMARY\POST_CONTRAST`),
		WithElement(tag.ManufacturerModelName, "FDR-3000AWS"),
	)
	tech, err = ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)
}

func TestClassifyTechnique_DerivedDefaultsToFFDM(t *testing.T) {
	ds := mgDataset(t, WithElement(tag.ImageType, `DERIVED\PRIMARY`))
	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)
}

func TestClassifyTechnique_ModalityGate(t *testing.T) {
	ds, err := NewDataset(
		WithElement(tag.Modality, "CT"),
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
	)
	require.NoError(t, err)

	_, err = ClassifyTechnique(ds, ClassifyOptions{})
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, tag.Modality, verr.Tag)

	// the gate can be bypassed
	tech, err := ClassifyTechnique(ds, ClassifyOptions{IgnoreModality: true})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)
}

func TestClassifyTechnique_AbsentModalityPasses(t *testing.T) {
	ds, err := NewDataset(WithElement(tag.ImageType, `ORIGINAL\PRIMARY`))
	require.NoError(t, err)

	tech, err := ClassifyTechnique(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, tech)
}

func TestExtractLaterality_Fallback(t *testing.T) {
	// ImageLaterality wins over Laterality
	ds := mgDataset(t,
		WithElement(tag.ImageLaterality, "L"),
		WithElement(tag.Laterality, "R"),
	)
	assert.Equal(t, LateralityLeft, ExtractLaterality(ds))

	// blank ImageLaterality falls through
	ds = mgDataset(t,
		WithElement(tag.ImageLaterality, "  "),
		WithElement(tag.Laterality, "R"),
	)
	assert.Equal(t, LateralityRight, ExtractLaterality(ds))

	// per-frame anatomy is the last resort
	anatomy, err := NewDataset(WithElement(tag.FrameLaterality, "R"))
	require.NoError(t, err)
	shared, err := NewDataset(WithSequence(tag.FrameAnatomySequence, anatomy))
	require.NoError(t, err)
	ds = mgDataset(t, WithSequence(tag.SharedFunctionalGroupsSequence, shared))
	assert.Equal(t, LateralityRight, ExtractLaterality(ds))

	assert.Equal(t, LateralityUnknown, ExtractLaterality(mgDataset(t)))
}

func TestExtractViewPosition_Sources(t *testing.T) {
	// primary tag alone, loose matching
	ds := mgDataset(t, WithElement(tag.ViewPosition, "R-CC"))
	assert.Equal(t, ViewCC, ExtractViewPosition(ds))

	// code meaning refines the primary tag: ML outranks CC
	code, err := NewDataset(WithElement(tag.CodeMeaning, "medio-lateral"))
	require.NoError(t, err)
	ds = mgDataset(t,
		WithElement(tag.ViewPosition, "CC"),
		WithSequence(tag.ViewCodeSequence, code),
	)
	assert.Equal(t, ViewML, ExtractViewPosition(ds))

	// modifier codes nested inside a view code item also count
	mod, err := NewDataset(WithElement(tag.CodeMeaning, "axillary tail"))
	require.NoError(t, err)
	nested, err := NewDataset(
		WithElement(tag.CodeMeaning, "cranio-caudal"),
		WithSequence(tag.ViewModifierCodeSequence, mod),
	)
	require.NoError(t, err)
	ds = mgDataset(t, WithSequence(tag.ViewCodeSequence, nested))
	assert.Equal(t, ViewAT, ExtractViewPosition(ds))

	// code meanings are strict: descriptive text is not enough
	vague, err := NewDataset(WithElement(tag.CodeMeaning, "some cc view"))
	require.NoError(t, err)
	ds = mgDataset(t, WithSequence(tag.ViewCodeSequence, vague))
	assert.Equal(t, ViewUnknown, ExtractViewPosition(ds))
}

func TestClassify_Modifiers(t *testing.T) {
	spot, err := NewDataset(WithElement(tag.CodeMeaning, "Spot Compression"))
	require.NoError(t, err)
	ds := mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.ViewPosition, "CC"),
		WithSequence(tag.ViewModifierCodeSequence, spot),
	)
	m, err := Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.True(t, m.SpotCompression)
	assert.False(t, m.Magnified)

	// paddle descriptions are vendor caps
	ds = mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.PaddleDescription, "10CM MAG"),
	)
	m, err = Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.True(t, m.Magnified)
	assert.False(t, m.SpotCompression)

	// lowercase paddle text must not trip the spot check
	ds = mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.PaddleDescription, "spotless"),
	)
	m, err = Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.False(t, m.SpotCompression)

	// the primary view tag is checked case-insensitively
	ds = mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.ViewPosition, "CC Spot"),
	)
	m, err = Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.True(t, m.SpotCompression)

	displaced, err := NewDataset(WithElement(tag.CodeMeaning, "Implant Displaced"))
	require.NoError(t, err)
	ds = mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithSequence(tag.ViewModifierCodeSequence, displaced),
	)
	m, err = Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.True(t, m.ImplantDisplaced)
}

func TestClassify_Flags(t *testing.T) {
	ds := mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.PresentationIntentType, "FOR PROCESSING"),
		WithElement(tag.BreastImplantPresent, "YES"),
		WithElement(tag.SOPClassUID, SecondaryCaptureImageStorageUID),
	)
	m, err := Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.True(t, m.ForProcessing)
	assert.True(t, m.HasImplant)
	assert.True(t, m.SecondaryCapture)

	ds = mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.PresentationIntentType, "FOR PRESENTATION"),
		WithElement(tag.BreastImplantPresent, "NO"),
		WithElement(tag.SOPClassUID, DigitalMammographyXRayImageStorageForPresentationUID),
	)
	m, err = Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.False(t, m.ForProcessing)
	assert.False(t, m.HasImplant)
	assert.False(t, m.SecondaryCapture)
}

func TestClassify_FullMetadata(t *testing.T) {
	ds := mgDataset(t,
		WithElement(tag.ImageType, `ORIGINAL\PRIMARY`),
		WithElement(tag.ImageLaterality, "L"),
		WithElement(tag.ViewPosition, "MLO"),
		WithElement(tag.Manufacturer, "HOLOGIC, Inc."),
		WithElement(tag.ManufacturerModelName, "Selenia Dimensions"),
	)
	m, err := Classify(ds, ClassifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, TechniqueFullFieldDigital, m.Technique)
	assert.Equal(t, LateralityLeft, m.Laterality)
	assert.Equal(t, ViewMLO, m.ViewPosition)
	assert.Equal(t, "HOLOGIC, Inc.", m.Manufacturer)
	assert.Equal(t, "Selenia Dimensions", m.ModelName)
	assert.Equal(t, 1, m.Frames)
	assert.Equal(t, "MG", m.Modality)
	assert.True(t, m.IsStandardView())
	assert.True(t, m.Is2D())
}
