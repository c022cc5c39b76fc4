// Package snd reads, writes and edits uncompressed PCM sounds stored either
// as AIFF or as CS229, a line oriented text format.
//
// Both containers decode into the same SoundFile value: header fields plus
// an interleaved, frame-major buffer of signed integer samples at 8, 16 or
// 32 bits. Decode sniffs the container from its first bytes, so callers that
// do not care about the source format can use ReadFile and WriteFile:
//
//	s, err := snd.ReadFile("in.aif")
//	if err != nil {
//		return err
//	}
//
//	s, err = snd.Cut(s, []snd.Range{{Low: 0, High: 99}})
//	if err != nil {
//		return err
//	}
//
//	return snd.WriteFile("out.cs229", s, snd.FormatText)
//
// Cut and Splice never modify their input. Every writer validates the sound
// before emitting a byte, so a failed write leaves nothing behind.
//
// The AIFF decoder walks chunks through a ChunkRegistry. COMM and SSND are
// registered by default; other chunks are skipped and reported in
// AIFFDecoder.SkippedChunks unless a custom ChunkHandler claims them.
package snd
