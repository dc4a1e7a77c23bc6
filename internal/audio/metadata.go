package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Metadata is the descriptive information shown alongside a visualiser.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ReadMetadata reads ID3/Vorbis/MP4 tags from filename. Missing or
// unreadable tags are not an error: the title falls back to the file name.
func ReadMetadata(filename string) Metadata {
	md := Metadata{Title: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))}

	f, err := os.Open(filename)
	if err != nil {
		return md
	}
	defer f.Close()

	tags, err := tag.ReadFrom(f)
	if err != nil || tags == nil {
		return md
	}

	if title := strings.TrimSpace(tags.Title()); title != "" {
		md.Title = title
	}
	md.Artist = strings.TrimSpace(tags.Artist())
	md.Album = strings.TrimSpace(tags.Album())
	return md
}

// Label is "Artist - Title" when an artist is known, otherwise the title.
func (m Metadata) Label() string {
	if m.Artist == "" {
		return m.Title
	}
	return m.Artist + " - " + m.Title
}
