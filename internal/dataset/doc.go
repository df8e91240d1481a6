// Package dataset builds a speech-synthesis training corpus from a
// directory of audio clips and same-named transcript files.
//
// A run has four stages:
//   - Discover pairs audio files with transcripts by basename
//   - Validate rejects pairs that are too small, undecodable or untranscribed,
//     recording a reason for each and never aborting on a single file
//   - SplitItems shuffles the accepted pairs with an injected random source
//     and cuts them into train and validation sets
//   - Export resamples every clip into wavs/ and writes the filelists;
//     the first error aborts the run and leaves partial output in place
//
// Prepare chains the stages and returns a Report.
package dataset
