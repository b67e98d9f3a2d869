package mammo

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jpfielding/mammo.go/pkg/util"
)

// MetadataReport is the serializable form of one image's classification
type MetadataReport struct {
	Source           string `json:"source,omitempty"`
	Technique        string `json:"technique"`
	Laterality       string `json:"laterality"`
	ViewPosition     string `json:"view_position"`
	ImageType        string `json:"image_type"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Model            string `json:"model,omitempty"`
	Frames           int    `json:"frames"`
	Modality         string `json:"modality,omitempty"`
	ForProcessing    bool   `json:"for_processing"`
	HasImplant       bool   `json:"has_implant"`
	ImplantDisplaced bool   `json:"implant_displaced"`
	SpotCompression  bool   `json:"spot_compression"`
	Magnified        bool   `json:"magnified"`
	SecondaryCapture bool   `json:"secondary_capture"`
	StandardView     bool   `json:"standard_view"`
	Is2D             bool   `json:"is_2d"`
}

// NewMetadataReport flattens classified metadata for rendering
func NewMetadataReport(source string, m *Metadata) MetadataReport {
	return MetadataReport{
		Source:           source,
		Technique:        m.Technique.String(),
		Laterality:       m.Laterality.String(),
		ViewPosition:     m.ViewPosition.String(),
		ImageType:        m.ImageType.String(),
		Manufacturer:     m.Manufacturer,
		Model:            m.ModelName,
		Frames:           m.Frames,
		Modality:         m.Modality,
		ForProcessing:    m.ForProcessing,
		HasImplant:       m.HasImplant,
		ImplantDisplaced: m.ImplantDisplaced,
		SpotCompression:  m.SpotCompression,
		Magnified:        m.Magnified,
		SecondaryCapture: m.SecondaryCapture,
		StandardView:     m.IsStandardView(),
		Is2D:             m.Is2D(),
	}
}

// WriteText renders the report in the two-column text layout
func (r MetadataReport) WriteText(w io.Writer) error {
	orUnknown := func(s string) string {
		if s == "" {
			return "unknown"
		}
		return s
	}

	lines := []struct {
		label string
		value interface{}
	}{
		{"Technique:", r.Technique},
		{"Laterality:", r.Laterality},
		{"View Position:", r.ViewPosition},
		{"Image Type:", r.ImageType},
		{"Manufacturer:", orUnknown(r.Manufacturer)},
		{"Model:", orUnknown(r.Model)},
		{"Frames:", r.Frames},
		{"Modality:", orUnknown(r.Modality)},
		{"For Processing:", r.ForProcessing},
		{"Has Implant:", r.HasImplant},
		{"Implant Displaced:", r.ImplantDisplaced},
		{"Spot Compression:", r.SpotCompression},
		{"Magnified:", r.Magnified},
		{"Secondary Capture:", r.SecondaryCapture},
		{"Standard View:", r.StandardView},
		{"Is 2D:", r.Is2D},
	}

	if _, err := fmt.Fprintf(w, "Mammogram Metadata\n==================\n\n"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-19s %v\n", line.label, line.value); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the report as indented JSON
func (r MetadataReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SelectionEntry is one canonical view's outcome in a selection report
type SelectionEntry struct {
	View      string          `json:"view"`
	Selected  bool            `json:"selected"`
	Source    string          `json:"source,omitempty"`
	SOPUID    string          `json:"sop_instance_uid,omitempty"`
	Technique string          `json:"technique,omitempty"`
	Area      int             `json:"image_area,omitempty"`
	Metadata  *MetadataReport `json:"metadata,omitempty"`
}

// SelectionReport is the serializable form of a preferred-view selection
type SelectionReport struct {
	// Digest identifies the selection outcome for change detection
	Digest  string           `json:"digest"`
	Order   string           `json:"preference_order"`
	Entries []SelectionEntry `json:"views"`
}

// NewSelectionReport flattens a selection in canonical view order
func NewSelectionReport(sel Selection, order PreferenceOrder) SelectionReport {
	report := SelectionReport{Order: order.String()}
	for _, view := range CanonicalViews() {
		entry := SelectionEntry{View: view.String()}
		if rec := sel[view]; rec != nil {
			meta := NewMetadataReport(rec.Source, rec.Metadata)
			entry.Selected = true
			entry.Source = rec.Source
			entry.SOPUID = rec.SOPInstanceUID
			entry.Technique = rec.Metadata.Technique.String()
			entry.Area = rec.ImageArea()
			entry.Metadata = &meta
		}
		report.Entries = append(report.Entries, entry)
	}
	report.Digest = util.HashUUID(report.Entries)
	return report
}

// WriteText renders one line per canonical view
func (r SelectionReport) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Preferred Views (%s)\n", r.Order); err != nil {
		return err
	}
	for _, entry := range r.Entries {
		if !entry.Selected {
			if _, err := fmt.Fprintf(w, "  %-6s (none)\n", entry.View); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "  %-6s %s [%s]\n", entry.View, entry.Source, entry.Technique); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "digest: %s\n", r.Digest)
	return err
}

// WriteJSON renders the selection as indented JSON
func (r SelectionReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
