package retrieval

import "strings"

// ChunkText splits text into overlapping word windows. Windows are snapped
// back to the last sentence terminator when one falls in the second half of
// the window, so chunks tend to end on sentence boundaries.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		// Keep the step positive for any window size
		overlap = chunkSize / 10
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := chunkSize - overlap
	chunks := make([]string, 0, (len(words)/step)+1)

	start := 0
	for start < len(words) {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}

		end = snapToSentence(words, start, end)
		chunk := strings.Join(words[start:end], " ")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(words) {
			break
		}

		// The next window overlaps the snapped end, not the nominal one,
		// so words trimmed by the snap still land in a chunk
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// snapToSentence moves end back to just after the last sentence-ending word,
// provided the boundary keeps at least half the window
func snapToSentence(words []string, start, end int) int {
	if end == len(words) {
		return end
	}

	min := start + (end-start)/2
	for i := end - 1; i > min; i-- {
		if endsSentence(words[i]) {
			return i + 1
		}
	}
	return end
}

func endsSentence(word string) bool {
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
