package domain

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MediaKind classifies an attachment for rendering purposes.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// MediaAttachment references a piece of media carried by a message.
// Immutable once constructed.
type MediaAttachment struct {
	URL  string
	Kind MediaKind
	Name string
	Size int64
}

// KindFromMIME maps a MIME type string onto a MediaKind.
// Anything that is neither image nor video renders as a document.
func KindFromMIME(mime string) MediaKind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return MediaImage
	case strings.HasPrefix(mime, "video/"):
		return MediaVideo
	default:
		return MediaDocument
	}
}

// AttachmentFromFile builds an attachment from a local file, sniffing the
// content to classify it. The URL is the local path; persisting the blob
// somewhere durable is the caller's concern.
func AttachmentFromFile(path string, size int64) (MediaAttachment, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return MediaAttachment{}, err
	}
	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		name = path[i+1:]
	}
	return MediaAttachment{
		URL:  path,
		Kind: KindFromMIME(mtype.String()),
		Name: name,
		Size: size,
	}, nil
}
