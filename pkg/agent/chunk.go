package agent

import "unicode/utf8"

// SynthesisMaxChars is the largest text Murf accepts per synthesis call.
const SynthesisMaxChars = 3000

// SplitText splits text into contiguous chunks of at most maxChars runes
// each. The chunks concatenate back to the input exactly; boundaries carry no
// meaning and may fall mid-word. Empty input yields no chunks.
func SplitText(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	if maxChars <= 0 {
		maxChars = SynthesisMaxChars
	}
	var chunks []string
	for len(text) > 0 {
		cut := cutByteIndexAtRuneCount(text, maxChars)
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	return chunks
}

func cutByteIndexAtRuneCount(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	i := 0
	for r := 0; r < runes && i < len(s); r++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			return i
		}
		i += size
	}
	return i
}
