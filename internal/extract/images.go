package extract

import (
	"bytes"
)

var (
	dctDecodeMarker = []byte("/DCTDecode")
	streamKeyword   = []byte("stream")
	endstreamMarker = []byte("endstream")
	jpegSOI         = []byte{0xFF, 0xD8}
)

// extractJPEGs walks the raw PDF and collects embedded JPEG image streams.
// Images in PDFs are XObject streams; JPEG ones are marked with the
// DCTDecode filter, so the stream payload between the stream/endstream
// keywords is a complete JFIF blob that can be stored as-is. Other filter
// chains (FlateDecode raster data, JBIG2, CCITT) are skipped rather than
// re-encoded.
func extractJPEGs(data []byte) [][]byte {
	var images [][]byte

	offset := 0
	for {
		idx := bytes.Index(data[offset:], dctDecodeMarker)
		if idx < 0 {
			break
		}
		pos := offset + idx + len(dctDecodeMarker)

		payload, next := streamPayloadAfter(data, pos)
		if payload == nil {
			offset = pos
			continue
		}
		if bytes.HasPrefix(payload, jpegSOI) {
			img := make([]byte, len(payload))
			copy(img, payload)
			images = append(images, img)
		}
		offset = next
	}

	return images
}

// streamPayloadAfter returns the bytes between the next stream/endstream
// pair at or after pos, and the offset just past the endstream keyword.
func streamPayloadAfter(data []byte, pos int) ([]byte, int) {
	streamIdx := bytes.Index(data[pos:], streamKeyword)
	if streamIdx < 0 {
		return nil, len(data)
	}
	start := pos + streamIdx + len(streamKeyword)

	// The stream keyword is followed by CRLF or LF before the payload.
	if start < len(data) && data[start] == '\r' {
		start++
	}
	if start < len(data) && data[start] == '\n' {
		start++
	}

	endIdx := bytes.Index(data[start:], endstreamMarker)
	if endIdx < 0 {
		return nil, len(data)
	}
	end := start + endIdx
	next := end + len(endstreamMarker)

	// Trim the EOL that precedes endstream.
	for end > start && (data[end-1] == '\n' || data[end-1] == '\r') {
		end--
	}
	if end <= start {
		return nil, next
	}
	return data[start:end], next
}
