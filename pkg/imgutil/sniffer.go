package imgutil

import (
	"io"
	"os"
)

// Kind identifies a supported image type.
type Kind int

const (
	KindUnknown Kind = iota
	KindPNG
	KindJPEG
	KindGIF
	KindWEBP
)

func (k Kind) String() string {
	switch k {
	case KindPNG:
		return "png"
	case KindJPEG:
		return "jpeg"
	case KindGIF:
		return "gif"
	case KindWEBP:
		return "webp"
	default:
		return "unknown"
	}
}

// Ext returns the canonical file extension for k, without the dot.
// KindUnknown has no canonical extension.
func (k Kind) Ext() string {
	switch k {
	case KindPNG:
		return "png"
	case KindJPEG:
		return "jpg"
	case KindGIF:
		return "gif"
	case KindWEBP:
		return "webp"
	default:
		return ""
	}
}

// HeaderSize is the number of leading bytes needed to test every
// supported signature. WEBP needs the full 12: "RIFF" at offset 0 and
// "WEBP" at offset 8.
const HeaderSize = 12

var (
	pngSig  = []byte{0x89, 0x50, 0x4e, 0x47}
	jpegSig = []byte{0xff, 0xd8, 0xff}
	gifSig  = []byte("GIF8") // shared prefix of GIF87a and GIF89a
	riffSig = []byte("RIFF")
	webpTag = []byte("WEBP")
)

// DetectHeader inspects up to the first HeaderSize bytes of a file for
// known signatures. A header shorter than a signature simply fails that
// signature's test; DetectHeader never errors.
func DetectHeader(header []byte) Kind {
	if hasPrefix(header, pngSig) {
		return KindPNG
	}
	if hasPrefix(header, jpegSig) {
		return KindJPEG
	}
	if hasPrefix(header, gifSig) {
		return KindGIF
	}
	if hasPrefix(header, riffSig) && len(header) >= HeaderSize && hasPrefix(header[8:], webpTag) {
		return KindWEBP
	}
	return KindUnknown
}

// SniffFile reads the first HeaderSize bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads at most HeaderSize bytes from r and determines its
// type. A source shorter than HeaderSize is not an error; the short
// header just matches fewer signatures.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return KindUnknown, err
	}

	return DetectHeader(header[:n]), nil
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
