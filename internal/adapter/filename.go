package adapter

import (
	"crypto/sha256"
	"fmt"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/voxtool/mcp-elevenlabs/internal/registry"
)

// fileSeq disambiguates outputs generated within the same millisecond.
var fileSeq atomic.Uint64

// generateFilename creates a unique filename for file-like output.
// Format: {prefix}_{unix_millis}_{8char_hash}.{ext}. The hash covers the
// payload and a process-wide sequence number, so repeated invocations never
// collide even when the timestamp and content are identical.
func generateFilename(prefix, ext string, payload []byte) string {
	if prefix == "" {
		prefix = "out"
	}
	millis := time.Now().UnixMilli()
	h := sha256.New()
	fmt.Fprintf(h, "%d_%d_", millis, fileSeq.Add(1))
	h.Write(payload)
	return fmt.Sprintf("%s_%d_%x.%s", prefix, millis, h.Sum(nil)[:4], ext)
}

// fileType resolves the filename extension and MIME type of a binary result
// from the requested output format, defaulting to MP3.
func fileType(d *registry.Descriptor, args registry.Args) (ext, mime string) {
	if d.ResultShape == registry.ShapeBinaryImage {
		return "png", "image/png"
	}

	format := args.String("output_format")
	if format == "" {
		ext := d.FileExt
		if ext == "" {
			ext = "mp3"
		}
		return ext, mimeForExt(ext)
	}

	switch {
	case strings.HasPrefix(format, "mp3"):
		return "mp3", "audio/mpeg"
	case strings.HasPrefix(format, "pcm"):
		return "wav", "audio/wav"
	case strings.HasPrefix(format, "opus"):
		return "opus", "audio/ogg"
	case strings.HasPrefix(format, "ulaw"), strings.HasPrefix(format, "alaw"):
		return "wav", "audio/basic"
	}
	return "mp3", "audio/mpeg"
}

// splitName breaks a vendor-suggested item name into a filename stem and
// extension, falling back to the descriptor's default extension.
func splitName(name, defaultExt string) (stem, ext string) {
	stem = sanitizeStem(name)
	ext = strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		ext = defaultExt
	}
	if ext == "" {
		ext = "bin"
	}
	return stem, ext
}

// sanitizeStem reduces an arbitrary vendor name to a safe filename stem.
func sanitizeStem(name string) string {
	name = strings.TrimSuffix(path.Base(name), path.Ext(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	stem := b.String()
	if len(stem) > 48 {
		stem = stem[:48]
	}
	if stem == "" {
		stem = "item"
	}
	return stem
}

func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "opus", "ogg":
		return "audio/ogg"
	case "txt":
		return "text/plain"
	case "json":
		return "application/json"
	case "png":
		return "image/png"
	}
	return "application/octet-stream"
}

func isTextMime(mime string) bool {
	return strings.HasPrefix(mime, "text/") || mime == "application/json"
}
