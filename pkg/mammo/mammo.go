// Package mammo classifies mammography DICOM metadata and selects the
// preferred image for each of the four canonical screening views.
//
// This package provides:
//   - Metadata-only DICOM parsing with sequence navigation
//   - Technique, laterality, view position and modifier classification
//   - A deterministic preferred-view selection engine
//
// Basic usage:
//
//	// Classify one image
//	ds, err := mammo.ReadFile("/path/to/image.dcm")
//	if err != nil {
//		log.Fatal(err)
//	}
//	rec, err := mammo.NewRecord("image.dcm", ds, mammo.ClassifyOptions{})
//
//	// Pick the best image per canonical view
//	selection := mammo.PreferredViewsFiltered(records, mammo.DefaultFilterConfig(), mammo.OrderDefault)
package mammo

import (
	"bytes"
	"strings"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// Mammography SOP Class UIDs
const (
	DigitalMammographyXRayImageStorageForPresentationUID = "1.2.840.10008.5.1.4.1.1.1.2"
	DigitalMammographyXRayImageStorageForProcessingUID   = "1.2.840.10008.5.1.4.1.1.1.2.1"
	BreastTomosynthesisImageStorageUID                   = "1.2.840.10008.5.1.4.1.1.13.1.3"
	SecondaryCaptureImageStorageUID                      = "1.2.840.10008.5.1.4.1.1.7"
)

// ReadBuffer reads a DICOM file from a byte slice
func ReadBuffer(data []byte) (*Dataset, error) {
	return Parse(bytes.NewReader(data))
}

// IsMammogram returns true if the source declares the MG modality
func IsMammogram(r TagReader) bool {
	return GetModality(r) == MammographyModality
}

// GetModality returns the modality string, trimmed
func GetModality(r TagReader) string {
	s, _ := r.GetString(tag.Modality)
	return strings.TrimSpace(s)
}

// GetSOPClassUID returns the SOP Class UID
func GetSOPClassUID(r TagReader) string {
	s, _ := r.GetString(tag.SOPClassUID)
	return strings.TrimSpace(s)
}

// GetSOPInstanceUID returns the SOP Instance UID
func GetSOPInstanceUID(r TagReader) string {
	s, _ := r.GetString(tag.SOPInstanceUID)
	return strings.TrimSpace(s)
}

// GetStudyInstanceUID returns the Study Instance UID
func GetStudyInstanceUID(r TagReader) string {
	s, _ := r.GetString(tag.StudyInstanceUID)
	return strings.TrimSpace(s)
}

// GetSeriesDescription returns the series description
func GetSeriesDescription(r TagReader) string {
	s, _ := r.GetString(tag.SeriesDescription)
	return s
}

// GetRows returns the image row count, 0 when absent
func GetRows(r TagReader) int {
	n, _ := r.GetInt(tag.Rows)
	return n
}

// GetColumns returns the image column count, 0 when absent
func GetColumns(r TagReader) int {
	n, _ := r.GetInt(tag.Columns)
	return n
}

// GetNumberOfFrames returns the frame count, defaulting to 1
func GetNumberOfFrames(r TagReader) int {
	if n, ok := r.GetInt(tag.NumberOfFrames); ok && n > 0 {
		return n
	}
	return 1
}
