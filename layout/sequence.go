package layout

import (
	"sort"

	"github.com/tsawler/docmorph/model"
)

// Sequence interleaves logical lines, images, and rule candidates into
// one page-ordered stream sorted ascending by vertical position. The sort
// is stable: items at equal positions keep extraction order, except that
// a text line always precedes an image at the same position.
//
// Images without a resolvable bounding box receive a synthetic position
// interpolated across the detected text positions, so they land in a
// plausible reading-order slot instead of piling up at the page top.
func Sequence(lines []*model.Line, images []*model.ImageRef, rules []*model.RuleLine) []model.ContentItem {
	items := make([]model.ContentItem, 0, len(lines)+len(images)+len(rules))

	seq := 0
	textPositions := make([]float64, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.TextItem(l, seq))
		textPositions = append(textPositions, l.Position())
		seq++
	}
	sort.Float64s(textPositions)

	for i, img := range images {
		pos := img.BBox.Y0
		if !img.HasBBox {
			pos = syntheticPosition(textPositions, i, len(images))
		}
		items = append(items, model.ImageItem(img, pos, seq))
		seq++
	}

	for _, r := range rules {
		items = append(items, model.RuleItem(r, seq))
		seq++
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		// Text reads before an image sharing its position.
		if a.Kind == model.ItemText && b.Kind == model.ItemImage {
			return true
		}
		return false
	})
	return items
}

// syntheticPosition spreads the i-th of n geometry-less images evenly
// across the span of observed text positions.
func syntheticPosition(textPositions []float64, i, n int) float64 {
	switch {
	case len(textPositions) > 1:
		first := textPositions[0]
		last := textPositions[len(textPositions)-1]
		avgGap := (last - first) / float64(len(textPositions)-1)
		return first + float64(i+1)*avgGap/float64(n+1)
	case len(textPositions) == 1:
		return textPositions[0] + 200 + float64(i)*100
	default:
		return 400 + float64(i)*200
	}
}
