package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pair is an audio clip and its transcript, sharing one basename.
type Pair struct {
	Base      string
	AudioPath string
	TextPath  string
}

// AudioName returns the audio file's name without its directory.
func (p Pair) AudioName() string { return filepath.Base(p.AudioPath) }

// Listing is the result of scanning an input directory.
type Listing struct {
	Pairs []Pair
	// Unpaired holds audio file names that have no transcript.
	Unpaired []string
	// Duplicates holds audio file names whose basename differs only in
	// extension case from an earlier file, e.g. a.MP3 next to a.mp3. Pairing
	// both would export them to the same wavs/<base>.wav.
	Duplicates []string
	AudioCount int
	TextCount  int
}

// Discover lists dir (non-recursively) and pairs every audio file with the
// transcript of the same basename. Extensions are matched case-insensitively.
// Pairs, Unpaired and Duplicates are sorted by file name. When several
// files share a basename the first by name is used and the rest are
// reported as duplicates.
func Discover(dir, audioExt, textExt string) (Listing, error) {
	audioExt, textExt = normalizeExt(audioExt), normalizeExt(textExt)
	if audioExt == "" || textExt == "" {
		return Listing{}, fmt.Errorf("audio and text extensions are required")
	}
	if audioExt == textExt {
		return Listing{}, fmt.Errorf("audio and text extensions must differ (both %q)", audioExt)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, fmt.Errorf("list input dir: %w", err)
	}

	var audioNames []string
	textCount := 0
	texts := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case audioExt:
			audioNames = append(audioNames, name)
		case textExt:
			textCount++
			base := strings.TrimSuffix(name, filepath.Ext(name))
			if _, dup := texts[base]; !dup {
				texts[base] = name
			}
		}
	}
	sort.Strings(audioNames)

	listing := Listing{AudioCount: len(audioNames), TextCount: textCount}
	seen := make(map[string]bool, len(audioNames))
	for _, name := range audioNames {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if seen[base] {
			listing.Duplicates = append(listing.Duplicates, name)
			continue
		}
		seen[base] = true
		textName, ok := texts[base]
		if !ok {
			listing.Unpaired = append(listing.Unpaired, name)
			continue
		}
		listing.Pairs = append(listing.Pairs, Pair{
			Base:      base,
			AudioPath: filepath.Join(dir, name),
			TextPath:  filepath.Join(dir, textName),
		})
	}

	return listing, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
