package intelligence

import (
	"sort"
)

// BuildOutline merges classifier output into the final outline: selects
// the title, collapses extraction artifacts, and normalizes levels so the
// tier numbering has no gaps. Candidates arrive in document order and the
// outline preserves it.
func BuildOutline(candidates []HeadingCandidate) Outline {
	outline := Outline{Entries: []OutlineEntry{}}
	if len(candidates) == 0 {
		return outline
	}

	outline.Title = selectTitle(candidates)

	normalized := normalizeLevels(candidates)

	for _, cand := range normalized {
		entry := OutlineEntry{
			Level:     cand.Level,
			Text:      cand.Text,
			Page:      cand.Page,
			SpanIndex: cand.SpanIndex,
		}
		if n := len(outline.Entries); n > 0 {
			prev := outline.Entries[n-1]
			if prev.Text == entry.Text && prev.Level == entry.Level {
				// Same heading re-detected across extraction artifacts.
				continue
			}
		}
		outline.Entries = append(outline.Entries, entry)
	}

	return outline
}

// selectTitle picks the highest-scoring candidate on the first page,
// preferring the topmost position on ties. The title stays in the outline
// as a heading; no extra entry is fabricated for it. Documents with no
// first-page candidate have an empty title.
func selectTitle(candidates []HeadingCandidate) string {
	var best *HeadingCandidate
	for i := range candidates {
		c := &candidates[i]
		if c.Page != 1 {
			continue
		}
		if best == nil || c.Score > best.Score || (c.Score == best.Score && c.Y < best.Y) {
			best = c
		}
	}
	if best == nil {
		return ""
	}
	return best.Text
}

// normalizeLevels re-derives tiers from the relative ordering of the
// distinct levels actually observed, so a document using only two heading
// styles yields H1/H2, never H1/H3. Candidates keep their relative depth
// ordering; only the numbering compacts.
func normalizeLevels(candidates []HeadingCandidate) []HeadingCandidate {
	seen := make(map[HeadingLevel]struct{})
	for _, c := range candidates {
		seen[c.Level] = struct{}{}
	}

	depths := make([]int, 0, len(seen))
	for level := range seen {
		depths = append(depths, level.Depth())
	}
	sort.Ints(depths)

	remap := make(map[HeadingLevel]HeadingLevel, len(depths))
	for rank, depth := range depths {
		remap[levelForDepth(depth)] = levelForDepth(rank + 1)
	}

	out := make([]HeadingCandidate, len(candidates))
	copy(out, candidates)
	for i := range out {
		out[i].Level = remap[out[i].Level]
	}
	return out
}
