package chunker

import (
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// TokenChunker splits cleaned text into overlapping token-bounded
// segments. Chunk size and overlap are measured in tokens of the
// configured encoding.
type TokenChunker struct {
	splitter textsplitter.TokenSplitter
}

var (
	spaceRunRe = regexp.MustCompile(` [ \t]+`)
	blankRunRe = regexp.MustCompile(`\n[\n\t ]+`)
)

func NewTokenChunker(chunkSize, chunkOverlap int, encoding string) *TokenChunker {
	if chunkSize <= 0 {
		chunkSize = 150
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if encoding == "" {
		encoding = "cl100k_base"
	}
	return &TokenChunker{
		splitter: textsplitter.NewTokenSplitter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithEncodingName(encoding),
		),
	}
}

// Split normalizes whitespace and returns the non-empty token-bounded
// segments of the text.
func (c *TokenChunker) Split(text string) ([]string, error) {
	cleaned := Clean(text)
	if cleaned == "" {
		return nil, nil
	}
	segments, err := c.splitter.SplitText(cleaned)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Clean collapses runs of horizontal whitespace and blank lines and
// normalizes line endings.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
