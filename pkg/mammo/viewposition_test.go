package mammo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseViewPosition_Abbreviations(t *testing.T) {
	cases := []struct {
		in   string
		want ViewPosition
	}{
		{"CC", ViewCC},
		{"MLO", ViewMLO},
		{"ML", ViewML},
		{"LMO", ViewLMO},
		{"LM", ViewLM},
		{"XCCL", ViewXCCL},
		{"XCCM", ViewXCCM},
		{"AT", ViewAT},
		{"CV", ViewCV},
		{"  mlo  ", ViewMLO},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseViewPosition(c.in, true), "strict %q", c.in)
		assert.Equal(t, c.want, ParseViewPosition(c.in, false), "loose %q", c.in)
	}
}

func TestParseViewPosition_CanonicalPhrases(t *testing.T) {
	cases := []struct {
		in   string
		want ViewPosition
	}{
		{"cranio-caudal", ViewCC},
		{"caudal-cranial", ViewCC},
		{"medio-lateral", ViewML},
		{"medial-lateral", ViewML},
		{"latero-medial", ViewLM},
		{"lateral-medial", ViewLM},
		{"medio-lateral oblique", ViewMLO},
		{"medial-lateral oblique", ViewMLO},
		{"latero-medial oblique", ViewLMO},
		{"lateral-medial oblique", ViewLMO},
		{"cranio-caudal exaggerated laterally", ViewXCCL},
		{"cranio-caudal exaggerated medially", ViewXCCM},
		{"axillary tail", ViewAT},
		{"cleavage view", ViewCV},
		{"valley-view", ViewCV},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseViewPosition(c.in, true), "strict %q", c.in)
	}
}

// The oblique projections share words with their non-oblique siblings;
// the oblique reading has to win whenever "oblique" is present.
func TestParseViewPosition_ObliqueDisambiguation(t *testing.T) {
	assert.Equal(t, ViewLMO, ParseViewPosition("latero-medial oblique", true))
	assert.Equal(t, ViewMLO, ParseViewPosition("medio-lateral oblique", true))
	assert.Equal(t, ViewLM, ParseViewPosition("latero-medial", true))
	assert.Equal(t, ViewML, ParseViewPosition("medio-lateral", true))
}

func TestParseViewPosition_StrictRejectsEmbeddedText(t *testing.T) {
	// strict mode only takes exact phrases for the equality lists
	assert.Equal(t, ViewUnknown, ParseViewPosition("some cc view", true))
	assert.Equal(t, ViewUnknown, ParseViewPosition("R CC spot", true))

	// substring phrases still hit in strict mode
	assert.Equal(t, ViewAT, ParseViewPosition("left axillary tail view", true))
}

func TestParseViewPosition_LooseTokenMatching(t *testing.T) {
	assert.Equal(t, ViewCC, ParseViewPosition("some cc view", false))
	assert.Equal(t, ViewCC, ParseViewPosition("R-CC", false))
	assert.Equal(t, ViewMLO, ParseViewPosition("r mlo spot", false))
	assert.Equal(t, ViewXCCL, ParseViewPosition("rxccl", false))

	// abbreviations embedded inside longer words must not match
	assert.Equal(t, ViewUnknown, ParseViewPosition("lateral", false))
	assert.Equal(t, ViewUnknown, ParseViewPosition("accession", false))
	assert.Equal(t, ViewUnknown, ParseViewPosition("cleavage", false))
}

func TestParseViewPosition_Unrecognized(t *testing.T) {
	assert.Equal(t, ViewUnknown, ParseViewPosition("", true))
	assert.Equal(t, ViewUnknown, ParseViewPosition("frontal", false))
}

func TestViewPosition_Groups(t *testing.T) {
	assert.True(t, ViewCC.IsStandard())
	assert.True(t, ViewMLO.IsStandard())
	assert.False(t, ViewML.IsStandard())
	assert.False(t, ViewXCCL.IsStandard())

	for _, v := range []ViewPosition{ViewMLO, ViewML, ViewLMO, ViewLM} {
		assert.True(t, v.IsObliqueLateralGroup(), v.String())
		assert.False(t, v.IsCraniocaudalGroup(), v.String())
	}
	for _, v := range []ViewPosition{ViewCC, ViewXCCL, ViewXCCM} {
		assert.True(t, v.IsCraniocaudalGroup(), v.String())
		assert.False(t, v.IsObliqueLateralGroup(), v.String())
	}
	assert.False(t, ViewAT.IsObliqueLateralGroup())
	assert.False(t, ViewAT.IsCraniocaudalGroup())
}
