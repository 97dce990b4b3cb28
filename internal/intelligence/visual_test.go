package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

func TestVisualClassifyColoredSpanAtBodySize(t *testing.T) {
	// A saturated red line at body size carries no size signal at all;
	// the foreground color term alone must qualify it.
	red := extraction.RGB{R: 255, G: 0, B: 0}
	spans := indexed(
		mkSpan("Section Marker", 1, 72, 200, 12),
		mkSpan("ordinary body text below the marker", 1, 72, 260, 12),
	)
	spans[0].Color = red

	cands := NewVisualClassifier(DefaultVisualConfig()).Classify(spans, bodyProfile())

	require.Len(t, cands, 1)
	assert.Equal(t, "Section Marker", cands[0].Text)
	assert.Equal(t, LevelH3, cands[0].Level)
}

func TestVisualClassifyRejectsBodyText(t *testing.T) {
	// Black-on-white body text scores only the size term, which stays
	// below the floor no matter how many spans there are.
	spans := indexed(
		mkSpan("plain paragraph one", 1, 72, 200, 12),
		mkSpan("plain paragraph two", 1, 72, 230, 12),
	)

	cands := NewVisualClassifier(DefaultVisualConfig()).Classify(spans, bodyProfile())

	assert.Empty(t, cands)
}

func TestVisualClassifyBackgroundContrast(t *testing.T) {
	// White text on a dark banner: both color terms contribute.
	dark := extraction.RGB{R: 20, G: 20, B: 80}
	spans := indexed(
		mkSpan("Banner Heading", 1, 72, 100, 14),
		mkSpan("ordinary body text", 1, 72, 300, 12),
		mkSpan("more body text", 1, 72, 330, 12),
		mkSpan("and a final paragraph", 1, 72, 360, 12),
	)
	spans[0].Color = extraction.White
	spans[0].Background = dark

	cands := NewVisualClassifier(DefaultVisualConfig()).Classify(spans, bodyProfile())

	require.Len(t, cands, 1)
	assert.Equal(t, "Banner Heading", cands[0].Text)
	assert.Equal(t, LevelH1, cands[0].Level)
}

func TestVisualClassifySizeRatioIsCapped(t *testing.T) {
	// An enormous black-on-white line gains at most the full size term,
	// which cannot reach the H2 band on its own.
	spans := indexed(
		mkBoldSpan("GIANT", 1, 72, 100, 96),
		mkSpan("body", 1, 72, 300, 12),
	)

	cands := NewVisualClassifier(DefaultVisualConfig()).Classify(spans, bodyProfile())

	require.Len(t, cands, 1)
	assert.Equal(t, LevelH3, cands[0].Level)
}

func TestVisualClassifyRejectsLongLines(t *testing.T) {
	long := "word"
	for i := 0; i < 40; i++ {
		long += " word"
	}
	spans := indexed(mkSpan(long, 1, 72, 100, 12))
	spans[0].Color = extraction.RGB{R: 255, G: 0, B: 0}

	cands := NewVisualClassifier(DefaultVisualConfig()).Classify(spans, bodyProfile())

	assert.Empty(t, cands)
}

func TestVisualClassifyBackgroundIsPerPage(t *testing.T) {
	// A dark first page must not make plain black-on-white body text on a
	// later page look like it contrasts with the document.
	dark := extraction.RGB{R: 25, G: 25, B: 60}

	var spans []extraction.TextSpan
	heading := mkSpan("Agenda", 1, 72, 80, 12)
	heading.Color = extraction.White
	heading.Background = dark
	spans = append(spans, heading)
	for i := 0; i < 5; i++ {
		s := mkSpan("dark slide body text", 1, 72, 140+float64(i)*30, 12)
		s.Background = dark
		spans = append(spans, s)
	}
	spans = append(spans,
		mkSpan("plain body paragraph on white", 2, 72, 100, 12),
		mkSpan("another plain paragraph", 2, 72, 140, 12),
	)
	spans = indexed(spans...)

	cands := NewVisualClassifier(DefaultVisualConfig()).Classify(spans, bodyProfile())

	require.Len(t, cands, 1)
	assert.Equal(t, "Agenda", cands[0].Text)
	assert.Equal(t, 1, cands[0].Page)
}

func TestDominantBackgroundByPage(t *testing.T) {
	blue := extraction.RGB{R: 30, G: 30, B: 200}

	spans := indexed(
		mkSpan("a", 1, 72, 72, 12),
		mkSpan("b", 1, 72, 100, 12),
		mkSpan("c", 2, 72, 72, 12),
	)
	spans[2].Background = blue

	byPage := dominantBackgroundByPage(spans)

	assert.Equal(t, extraction.White, byPage[1])
	assert.Equal(t, blue, byPage[2])
	assert.Empty(t, dominantBackgroundByPage(nil))
}

func TestDominantBackgroundByPageTieBreaksFirstSeen(t *testing.T) {
	blue := extraction.RGB{R: 30, G: 30, B: 200}
	spans := indexed(
		mkSpan("a", 1, 72, 72, 12),
		mkSpan("b", 1, 72, 100, 12),
	)
	spans[0].Background = blue

	// One blue, one white on the page: the first-seen background wins.
	assert.Equal(t, blue, dominantBackgroundByPage(spans)[1])
}
