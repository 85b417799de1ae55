package media

import (
	"path/filepath"
	"strings"
)

// Kind is the closed set of media variants the upload pipeline handles.
// It is resolved once at the request boundary; downstream components receive
// the already-resolved variant and never re-inspect filenames.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindVideo
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var videoExts = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
}

// Resolve dispatches a filename to its media kind by extension,
// case-insensitive.
func Resolve(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	default:
		return KindUnsupported
	}
}

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unsupported"
	}
}
