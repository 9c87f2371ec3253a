package dynval

import "github.com/cespare/xxhash/v2"

// Blobs travel inside documents as tagged mappings, the same convention the
// engine uses: a dict with a reserved "@type" key. The digest lets callers
// compare blob contents without materializing them.

const (
	blobTypeTag = "@type"
	blobTypeVal = "blob"

	blobContentTypeKey = "content_type"
	blobDigestKey      = "digest"
	blobDataKey        = "data"

	DefaultContentType = "application/octet-stream"
)

type Blob struct {
	ContentType string
	Digest      uint64
	Data        []byte
}

// NewBlob makes a blob value over data. A "" content type means
// DefaultContentType. The data slice is not copied.
func NewBlob(contentType string, data []byte) *Blob {
	if contentType == "" {
		contentType = DefaultContentType
	}
	return &Blob{
		ContentType: contentType,
		Digest:      xxhash.Sum64(data),
		Data:        data,
	}
}

func (b *Blob) taggedMap() map[string]any {
	return map[string]any{
		blobTypeTag:        blobTypeVal,
		blobContentTypeKey: b.ContentType,
		blobDigestKey:      b.Digest,
		blobDataKey:        b.Data,
	}
}

func isBlobMap(m map[string]any) bool {
	tag, _ := m[blobTypeTag].(string)
	return tag == blobTypeVal
}

// AsBlob returns the blob form of v, whether v is a live *Blob or a
// blob-tagged mapping decoded from storage.
func AsBlob(v any) (*Blob, bool) {
	switch v := v.(type) {
	case *Blob:
		if v == nil {
			return nil, false
		}
		return v, true
	case map[string]any:
		if !isBlobMap(v) {
			return nil, false
		}
		b := &Blob{}
		b.ContentType, _ = AsString(v[blobContentTypeKey])
		b.Digest, _ = AsUint64(v[blobDigestKey])
		switch data := v[blobDataKey].(type) {
		case []byte:
			b.Data = data
		case string:
			b.Data = []byte(data)
		}
		return b, true
	default:
		return nil, false
	}
}
