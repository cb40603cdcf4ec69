// Package carriertype maps file extensions onto the container formats
// OpenPuff recognizes as carriers.
package carriertype

import (
	"errors"
	"strings"
)

// CarrierType tags a carrier by its container format family.
type CarrierType int

const (
	ThreeGP CarrierType = iota
	AIFF
	FLV
	JPEG
	MP3
	MP4
	AU
	PCX
	PDF
	PNG
	SWF
	TGA
	VOB
	WAV
)

// ErrUnknownFiletype is returned when an extension matches no known carrier type.
var ErrUnknownFiletype = errors.New("unknown file type")

var names = map[CarrierType]string{
	ThreeGP: "3GP",
	AIFF:    "AIFF",
	FLV:     "FLV",
	JPEG:    "JPEG",
	MP3:     "MP3",
	MP4:     "MP4",
	AU:      "AU",
	PCX:     "PCX",
	PDF:     "PDF",
	PNG:     "PNG",
	SWF:     "SWF",
	TGA:     "TGA",
	VOB:     "VOB",
	WAV:     "WAV",
}

func (t CarrierType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// extensionTable maps every recognized, lowercased extension (without the
// leading dot) to its carrier type.
var extensionTable = map[string]CarrierType{
	"3gp": ThreeGP, "3gpp": ThreeGP, "3g2": ThreeGP, "3gp2": ThreeGP,
	"aif": AIFF, "aiff": AIFF,
	"flv": FLV, "f4v": FLV, "f4p": FLV, "f4a": FLV, "f4b": FLV,
	"jpg": JPEG, "jpe": JPEG, "jpeg": JPEG, "jfif": JPEG,
	"mp3": MP3,
	"mp4": MP4, "mpg4": MP4, "mpeg4": MP4, "m4a": MP4, "m4v": MP4, "mp4a": MP4,
	"au": AU, "snd": AU,
	"pcx": PCX,
	"pdf": PDF,
	"png": PNG,
	"swf": SWF,
	"tga": TGA, "vda": TGA, "icb": TGA, "vst": TGA,
	"vob":  VOB,
	"wav":  WAV,
	"wave": WAV,
}

// FromExtension resolves a file extension (with or without a leading dot,
// any case) to a CarrierType. The reference implementation's match is
// literal; this lookup is explicitly case-insensitive because that is what
// callers of a carrier-type resolver expect from a real file extension.
func FromExtension(ext string) (CarrierType, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if t, ok := extensionTable[ext]; ok {
		return t, nil
	}
	return 0, ErrUnknownFiletype
}
