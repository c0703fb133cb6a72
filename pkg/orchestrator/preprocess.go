package orchestrator

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/image/draw"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/rng"
)

// maxPaletteColors is the cap on caller-supplied palette entries, per §3.
const maxPaletteColors = 10

// logoKMeansK is the fixed cluster count for logo dominant-color
// extraction, per §4.9 step 3 ("k-means (k = 5)").
const logoKMeansK = 5

// logoMaxDimension bounds the side length pixels are scaled to before
// clustering, per §4.9 step 3 ("scaled pixels ≤ 500×500").
const logoMaxDimension = 500

// kmeansIterations is a fixed iteration budget; k-means over a handful of
// clusters on ≤500×500 pixels converges well within this in practice.
const kmeansIterations = 12

// normalizePalette strips a leading '#', lowercases, validates, and caps
// a caller-supplied palette at maxPaletteColors entries, per §3's
// "optional ordered palette of up to 10 hex colors" and §4.9 step 3's
// "parse palette (normalise hex)". Invalid entries are dropped rather
// than rejecting the whole request — the palette is a hint, not a
// contract the caller must get exactly right.
func normalizePalette(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c), "#"))
		if brief.IsValidHex(hex) {
			out = append(out, hex)
		}
		if len(out) == maxPaletteColors {
			break
		}
	}
	return out
}

// extractLogoPalette decodes logoBytes, scales it down to at most
// logoMaxDimension on a side with golang.org/x/image/draw, and runs
// k-means (k=5) over the scaled pixels to return the dominant colors as
// lowercase hex strings, ordered by cluster population descending, per
// §4.9 step 3. Centroid seeding is deterministic: the RNG is derived from
// the logo's own content hash (pkg/rng, same sub-seed derivation the
// teacher used per pipeline stage) so re-uploading the same logo always
// extracts the same palette.
func extractLogoPalette(logoBytes []byte) ([]string, error) {
	img, _, err := image.Decode(bytes.NewReader(logoBytes))
	if err != nil {
		return nil, apperr.New("orchestrator", apperr.InputInvalid, fmt.Errorf("decoding logo: %w", err))
	}

	scaled := scaleDown(img, logoMaxDimension)
	pixels := samplePixels(scaled)
	if len(pixels) == 0 {
		return nil, apperr.Newf("orchestrator", apperr.InputInvalid, "logo has no opaque pixels to sample")
	}

	hash := sha256.Sum256(logoBytes)
	r := rng.NewRNG(0, "logo_kmeans", hash[:])

	centroids := seedCentroids(pixels, logoKMeansK, r)
	counts := make([]int, len(centroids))
	for iter := 0; iter < kmeansIterations; iter++ {
		sums := make([][3]int64, len(centroids))
		counts = make([]int, len(centroids))
		for _, p := range pixels {
			idx := nearestCentroid(p, centroids)
			sums[idx][0] += int64(p[0])
			sums[idx][1] += int64(p[1])
			sums[idx][2] += int64(p[2])
			counts[idx]++
		}
		for i, n := range counts {
			if n == 0 {
				continue
			}
			centroids[i] = [3]uint8{
				uint8(sums[i][0] / int64(n)),
				uint8(sums[i][1] / int64(n)),
				uint8(sums[i][2] / int64(n)),
			}
		}
	}

	type weighted struct {
		hex   string
		count int
	}
	ranked := make([]weighted, 0, len(centroids))
	for i, c := range centroids {
		if counts[i] == 0 {
			continue
		}
		ranked = append(ranked, weighted{hex: hexOfRGB(c), count: counts[i]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })

	out := make([]string, len(ranked))
	for i, w := range ranked {
		out[i] = w.hex
	}
	return out, nil
}

func scaleDown(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// samplePixels flattens img's opaque pixels into [3]uint8 RGB triples,
// skipping fully transparent ones so a logo's padding doesn't dominate
// the palette.
func samplePixels(img image.Image) [][3]uint8 {
	b := img.Bounds()
	out := make([][3]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			out = append(out, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)})
		}
	}
	return out
}

func seedCentroids(pixels [][3]uint8, k int, r *rng.RNG) [][3]uint8 {
	if k > len(pixels) {
		k = len(pixels)
	}
	idx := make([]int, len(pixels))
	for i := range idx {
		idx[i] = i
	}
	r.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	out := make([][3]uint8, k)
	for i := 0; i < k; i++ {
		out[i] = pixels[idx[i]]
	}
	return out
}

func nearestCentroid(p [3]uint8, centroids [][3]uint8) int {
	best, bestDist := 0, -1
	for i, c := range centroids {
		dr := int(p[0]) - int(c[0])
		dg := int(p[1]) - int(c[1])
		db := int(p[2]) - int(c[2])
		dist := dr*dr + dg*dg + db*db
		if bestDist == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func hexOfRGB(c [3]uint8) string {
	return fmt.Sprintf("%02x%02x%02x", c[0], c[1], c[2])
}

// templateSnapshot is the shallow read §4.9 step 3 allows: colors and a
// font family only, never a structural re-parse of the template (that
// full ingestion is the excluded PPTX-to-DSL parser named in §1's
// Non-goals).
type templateSnapshot struct {
	Primary    string
	Accent     string
	Background string
	FontFamily string
}

// extractTemplateTheme shallow-reads an uploaded OOXML presentation's
// ppt/theme/theme1.xml part for its color scheme and major font, using
// the stdlib archive/zip reader (hidez8891/zip, used elsewhere in this
// module for writing, exposes no documented reader API) and the same
// etree parser pkg/render/slide uses to write an equivalent part. Absence
// of a recognizable theme part is not an error: the snapshot is a hint,
// and a missing or unparsable one simply yields nothing to merge in.
func extractTemplateTheme(templateBytes []byte) (*templateSnapshot, bool) {
	zr, err := zip.NewReader(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, false
	}

	var themeXML []byte
	for _, f := range zr.File {
		if f.Name == "ppt/theme/theme1.xml" {
			rc, err := f.Open()
			if err != nil {
				return nil, false
			}
			themeXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, false
			}
			break
		}
	}
	if themeXML == nil {
		return nil, false
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(themeXML); err != nil {
		return nil, false
	}

	snap := &templateSnapshot{}
	if el := doc.FindElement("//a:clrScheme/a:dk2/a:srgbClr"); el != nil {
		snap.Primary = strings.ToLower(el.SelectAttrValue("val", ""))
	}
	if el := doc.FindElement("//a:clrScheme/a:accent1/a:srgbClr"); el != nil {
		snap.Accent = strings.ToLower(el.SelectAttrValue("val", ""))
	}
	if el := doc.FindElement("//a:clrScheme/a:lt1/a:srgbClr"); el != nil {
		snap.Background = strings.ToLower(el.SelectAttrValue("val", ""))
	}
	if el := doc.FindElement("//a:fontScheme/a:majorFont/a:latin"); el != nil {
		snap.FontFamily = el.SelectAttrValue("typeface", "")
	}

	if snap.Primary == "" && snap.Accent == "" && snap.Background == "" && snap.FontFamily == "" {
		return nil, false
	}
	return snap, true
}
