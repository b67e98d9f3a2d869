package mammo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader reads DICOM metadata. Pixel data is consumed but not decoded;
// this reader exists to feed the classifiers.
type Reader struct {
	r              io.Reader
	transferSyntax string
	explicitVR     bool
	littleEndian   bool
}

// NewReader creates a new metadata reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:            r,
		explicitVR:   true,
		littleEndian: true,
	}
}

// Parse reads a complete DICOM file from a stream
func Parse(r io.Reader) (*Dataset, error) {
	reader := NewReader(r)
	return reader.ReadDataset()
}

// ReadFile reads a complete DICOM file from disk
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ReadDataset reads the complete dataset
func (r *Reader) ReadDataset() (*Dataset, error) {
	ds := &Dataset{
		Elements: make(map[Tag]*Element),
	}

	// Read preamble (128 bytes) and DICM magic
	preamble := make([]byte, 128)
	if _, err := io.ReadFull(r.r, preamble); err != nil {
		return nil, fmt.Errorf("failed to read preamble: %w", err)
	}

	magic := make([]byte, 4)
	if _, err := io.ReadFull(r.r, magic); err != nil {
		return nil, fmt.Errorf("failed to read DICM magic: %w", err)
	}
	if string(magic) != "DICM" {
		return nil, errors.New("invalid DICOM file: missing DICM magic")
	}

	// Group 0002 (File Meta Information) is ALWAYS Explicit VR Little Endian
	r.explicitVR = true
	r.littleEndian = true

	for {
		tag, err := r.readTag()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tag: %w", err)
		}

		// Default to Implicit VR if no File Meta declared a transfer syntax
		if tag.Group != 0x0002 && r.transferSyntax == "" {
			r.transferSyntax = "1.2.840.10008.1.2"
			r.updateTransferSyntax()
		}

		elem, err := r.readElementWithTag(tag)
		if err != nil {
			return nil, fmt.Errorf("failed to read element %v: %w", tag, err)
		}

		ds.Elements[elem.Tag] = elem

		// TransferSyntaxUID governs the rest of the file
		if tag.Group == 0x0002 && tag.Element == 0x0010 {
			if tsStr, ok := elem.GetString(); ok {
				r.transferSyntax = tsStr
				r.updateTransferSyntax()
			}
		}
	}

	return ds, nil
}

// readElementWithTag reads a DICOM element after the tag has been read
func (r *Reader) readElementWithTag(tag Tag) (*Element, error) {
	var vr string
	var vl uint32

	if r.explicitVR {
		vrBytes := make([]byte, 2)
		if _, err := io.ReadFull(r.r, vrBytes); err != nil {
			return nil, err
		}
		vr = string(vrBytes)

		if isLongVR(vr) {
			// 2 reserved bytes, then 4-byte VL
			reserved := make([]byte, 2)
			if _, err := io.ReadFull(r.r, reserved); err != nil {
				return nil, err
			}
			if err := binary.Read(r.r, binary.LittleEndian, &vl); err != nil {
				return nil, err
			}
		} else {
			var vl16 uint16
			if err := binary.Read(r.r, binary.LittleEndian, &vl16); err != nil {
				return nil, err
			}
			vl = uint32(vl16)
		}
	} else {
		// Implicit VR: VL is always 4 bytes, VR is determined by tag
		if err := binary.Read(r.r, binary.LittleEndian, &vl); err != nil {
			return nil, err
		}
		vr = getImplicitVR(tag)
	}

	value, err := r.readValue(tag, vr, vl)
	if err != nil {
		return nil, err
	}

	return &Element{
		Tag:   tag,
		VR:    vr,
		Value: value,
	}, nil
}

// readTag reads a DICOM tag
func (r *Reader) readTag() (Tag, error) {
	var group, element uint16
	if err := binary.Read(r.r, binary.LittleEndian, &group); err != nil {
		return Tag{}, err
	}
	if err := binary.Read(r.r, binary.LittleEndian, &element); err != nil {
		return Tag{}, err
	}
	return Tag{Group: group, Element: element}, nil
}

// readValue reads the value based on VR and VL
func (r *Reader) readValue(tag Tag, vr string, vl uint32) (interface{}, error) {
	if vr == "SQ" {
		return r.readSequence(vl)
	}

	if vl == 0xFFFFFFFF {
		return r.readUndefinedLengthValue(tag, vr)
	}

	// pixel data is consumed without decoding
	if tag.Group == 0x7FE0 && tag.Element == 0x0010 {
		if _, err := io.CopyN(io.Discard, r.r, int64(vl)); err != nil {
			return nil, err
		}
		return nil, nil
	}

	data := make([]byte, vl)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, err
	}

	return parseValue(vr, data)
}

// readSequence materializes a sequence element as its items
func (r *Reader) readSequence(vl uint32) ([]*Dataset, error) {
	if vl == 0xFFFFFFFF {
		return r.readSequenceItems(nil)
	}

	// Defined length: the items live in the next vl bytes
	data := make([]byte, vl)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, err
	}
	sub := r.subReader(bytes.NewReader(data))
	return sub.readSequenceItems(io.EOF)
}

// readSequenceItems reads items until the sequence delimiter, or until
// stopErr (io.EOF for defined-length buffers) ends the stream
func (r *Reader) readSequenceItems(stopErr error) ([]*Dataset, error) {
	var items []*Dataset
	for {
		itemTag, err := r.readTag()
		if err != nil {
			if stopErr != nil && (err == stopErr || err == io.ErrUnexpectedEOF) {
				return items, nil
			}
			return nil, fmt.Errorf("reading sequence item tag: %w", err)
		}

		var itemLen uint32
		if err := binary.Read(r.r, binary.LittleEndian, &itemLen); err != nil {
			return nil, fmt.Errorf("reading item length: %w", err)
		}

		switch {
		case itemTag.Group == 0xFFFE && itemTag.Element == 0xE0DD:
			// Sequence Delimitation
			return items, nil
		case itemTag.Group == 0xFFFE && itemTag.Element == 0xE000:
			item, err := r.readItem(itemLen)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		default:
			return nil, fmt.Errorf("expected item tag, got %v", itemTag)
		}
	}
}

// readItem reads one sequence item into a Dataset
func (r *Reader) readItem(itemLen uint32) (*Dataset, error) {
	if itemLen != 0xFFFFFFFF {
		data := make([]byte, itemLen)
		if _, err := io.ReadFull(r.r, data); err != nil {
			return nil, err
		}
		sub := r.subReader(bytes.NewReader(data))
		return sub.readItemElements(true)
	}
	return r.readItemElements(false)
}

// readItemElements reads elements until Item Delimitation, or until the
// underlying buffer is exhausted when the item had a defined length
func (r *Reader) readItemElements(untilEOF bool) (*Dataset, error) {
	ds := &Dataset{Elements: make(map[Tag]*Element)}
	for {
		tag, err := r.readTag()
		if err != nil {
			if untilEOF && (err == io.EOF || err == io.ErrUnexpectedEOF) {
				return ds, nil
			}
			return nil, fmt.Errorf("reading item element tag: %w", err)
		}

		if tag.Group == 0xFFFE && tag.Element == 0xE00D {
			// Item Delimitation, discard its zero length
			var delimLen uint32
			if err := binary.Read(r.r, binary.LittleEndian, &delimLen); err != nil {
				return nil, err
			}
			return ds, nil
		}

		elem, err := r.readElementWithTag(tag)
		if err != nil {
			return nil, fmt.Errorf("reading item element %v: %w", tag, err)
		}
		ds.Elements[elem.Tag] = elem
	}
}

// subReader shares parsing settings with a nested byte stream
func (r *Reader) subReader(src io.Reader) *Reader {
	return &Reader{
		r:              src,
		transferSyntax: r.transferSyntax,
		explicitVR:     r.explicitVR,
		littleEndian:   r.littleEndian,
	}
}

// readUndefinedLengthValue consumes encapsulated pixel data or any other
// undefined-length element without materializing it
func (r *Reader) readUndefinedLengthValue(tag Tag, _ string) (interface{}, error) {
	// encapsulated pixel data shares the item framing of sequences
	_ = tag
	return r.skipUndefinedLength()
}

// skipUndefinedLength reads until a Sequence Delimitation Item
func (r *Reader) skipUndefinedLength() (interface{}, error) {
	for {
		itemTag, err := r.readTag()
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("reading item tag: %w", err)
		}

		if itemTag.Group == 0xFFFE {
			var delimLen uint32
			if err := binary.Read(r.r, binary.LittleEndian, &delimLen); err != nil {
				return nil, fmt.Errorf("reading delimiter length: %w", err)
			}

			switch itemTag.Element {
			case 0xE0DD: // Sequence Delimitation
				return nil, nil
			case 0xE00D: // Item Delimitation
				continue
			case 0xE000: // Item Start
				if delimLen != 0xFFFFFFFF && delimLen > 0 {
					if _, err := io.CopyN(io.Discard, r.r, int64(delimLen)); err != nil {
						return nil, fmt.Errorf("skipping item data: %w", err)
					}
				}
				continue
			}
		}

		// Regular element inside an undefined-length region
		var vl uint32
		if r.explicitVR {
			var vrBytes [2]byte
			if _, err := io.ReadFull(r.r, vrBytes[:]); err != nil {
				return nil, fmt.Errorf("reading VR: %w", err)
			}
			vr := string(vrBytes[:])

			if isLongVR(vr) {
				var reserved uint16
				binary.Read(r.r, binary.LittleEndian, &reserved)
				binary.Read(r.r, binary.LittleEndian, &vl)
			} else {
				var vl16 uint16
				binary.Read(r.r, binary.LittleEndian, &vl16)
				vl = uint32(vl16)
			}
		} else {
			binary.Read(r.r, binary.LittleEndian, &vl)
		}

		if vl != 0xFFFFFFFF && vl > 0 {
			if _, err := io.CopyN(io.Discard, r.r, int64(vl)); err != nil {
				return nil, fmt.Errorf("skipping element value: %w", err)
			}
		} else if vl == 0xFFFFFFFF {
			if _, err := r.skipUndefinedLength(); err != nil {
				return nil, err
			}
		}
	}
}

// updateTransferSyntax updates reader settings based on transfer syntax
func (r *Reader) updateTransferSyntax() {
	switch r.transferSyntax {
	case "1.2.840.10008.1.2": // Implicit VR Little Endian
		r.explicitVR = false
		r.littleEndian = true
	default:
		// Explicit VR Little Endian and every encapsulated syntax
		r.explicitVR = true
		r.littleEndian = true
	}
}

// isLongVR returns true if VR uses 4-byte VL (OB, OD, OF, OL, OW, SQ, UC, UR, UT, UN)
func isLongVR(vr string) bool {
	switch vr {
	case "OB", "OD", "OF", "OL", "OW", "SQ", "UC", "UR", "UT", "UN":
		return true
	}
	return false
}

// getImplicitVR returns VR for a tag when using Implicit VR transfer syntax
func getImplicitVR(t Tag) string {
	switch t {
	case Tag{Group: 0x0054, Element: 0x0220}, Tag{Group: 0x0054, Element: 0x0222}, Tag{Group: 0x0020, Element: 0x9071}, Tag{Group: 0x5200, Element: 0x9229}:
		return "SQ"
	}
	switch {
	case t.Group == 0x0002:
		return "UL"
	case t.Group == 0x7FE0 && t.Element == 0x0010:
		return "OW"
	case t.Group == 0x0028:
		switch t.Element {
		case 0x0002, 0x0010, 0x0011, 0x0100, 0x0101, 0x0102, 0x0103:
			return "US"
		case 0x0008:
			return "IS"
		case 0x0030:
			return "DS"
		case 0x0004, 0x1300:
			return "CS"
		}
	case t.Group == 0x0008:
		switch t.Element {
		case 0x0016, 0x0018:
			return "UI"
		case 0x0008, 0x0060, 0x0068:
			return "CS"
		case 0x0070, 0x0080, 0x0104, 0x1030, 0x103E, 0x1090:
			return "LO"
		}
	case t.Group == 0x0018:
		switch t.Element {
		case 0x5101, 0x0015:
			return "CS"
		case 0x1405:
			return "LO"
		case 0x1164, 0x1075:
			return "DS"
		}
	case t.Group == 0x0020:
		switch t.Element {
		case 0x000D, 0x000E:
			return "UI"
		case 0x0060, 0x0062, 0x9072:
			return "CS"
		case 0x0013:
			return "IS"
		}
	}
	return "UN"
}

// parseValue converts raw bytes to typed value based on VR
func parseValue(vr string, data []byte) (interface{}, error) {
	switch vr {
	case "UI", "SH", "LO", "ST", "LT", "UT", "PN", "CS", "DA", "TM", "DT", "AS", "IS", "DS":
		// String types - trim null padding
		s := string(data)
		for len(s) > 0 && (s[len(s)-1] == 0 || s[len(s)-1] == ' ') {
			s = s[:len(s)-1]
		}
		return s, nil
	case "US":
		if len(data) == 2 {
			return binary.LittleEndian.Uint16(data), nil
		}
		values := make([]uint16, len(data)/2)
		for i := range values {
			values[i] = binary.LittleEndian.Uint16(data[i*2:])
		}
		return values, nil
	case "UL":
		if len(data) == 4 {
			return binary.LittleEndian.Uint32(data), nil
		}
		values := make([]uint32, len(data)/4)
		for i := range values {
			values[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
		return values, nil
	case "SS":
		if len(data) == 2 {
			return int16(binary.LittleEndian.Uint16(data)), nil
		}
	case "SL":
		if len(data) == 4 {
			return int32(binary.LittleEndian.Uint32(data)), nil
		}
	case "FL":
		if len(data) == 4 {
			var f float32
			binary.Read(bytes.NewReader(data), binary.LittleEndian, &f)
			return f, nil
		}
	case "FD":
		if len(data) == 8 {
			var f float64
			binary.Read(bytes.NewReader(data), binary.LittleEndian, &f)
			return f, nil
		}
	case "OB", "OW", "UN":
		return data, nil
	}
	return data, nil
}
