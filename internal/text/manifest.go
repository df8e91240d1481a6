package text

import "strings"

// ManifestSeparator separates the audio path from the transcript in a
// filelist line.
const ManifestSeparator = "|"

// separatorReplacement stands in for a literal separator inside transcript text.
const separatorReplacement = "/"

// ManifestField folds s into a single manifest field: every run of line
// breaks and tabs becomes one space and the separator is replaced, so one
// transcript always occupies exactly one line. Other spacing is kept.
func ManifestField(s string) string {
	s = strings.ReplaceAll(s, ManifestSeparator, separatorReplacement)

	return strings.Join(strings.FieldsFunc(s, isLineBreakOrTab), " ")
}

func isLineBreakOrTab(r rune) bool {
	return r == '\n' || r == '\r' || r == '\t'
}

// ManifestLine formats one filelist entry.
func ManifestLine(audioPath, transcript string) string {
	return audioPath + ManifestSeparator + ManifestField(transcript)
}

// ParseManifestLine splits a filelist entry into its audio path and
// transcript. ok is false when the line has no separator.
func ParseManifestLine(line string) (audioPath, transcript string, ok bool) {
	audioPath, transcript, ok = strings.Cut(strings.TrimRight(line, "\r\n"), ManifestSeparator)

	return audioPath, transcript, ok
}
