package docx

import (
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/zeebo/blake3"

	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

// FormatParts are the package parts that carry format definitions.
var FormatParts = []string{
	"word/styles.xml",
	"word/settings.xml",
	"word/numbering.xml",
	"word/fontTable.xml",
	"word/theme/theme1.xml",
	"word/webSettings.xml",
}

// Similarity levels.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// PartComparison is the outcome of comparing one format part.
type PartComparison struct {
	Identical  bool    `json:"identical"`
	Similarity float64 `json:"similarity"`
	Reason     string  `json:"reason,omitempty"`
}

// PackageComparison summarizes how closely two packages agree on format
// definitions and paragraph content.
type PackageComparison struct {
	OverallSimilarity float64                   `json:"overall_similarity"`
	Parts             map[string]PartComparison `json:"file_comparisons"`
	ContentConsistent bool                      `json:"content_consistent"`
	SimilarityLevel   string                    `json:"similarity_level"`
}

// Checksum returns the hex BLAKE3 digest of a package.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Level classifies OverallSimilarity.
func (c *PackageComparison) Level() string {
	switch {
	case c.OverallSimilarity >= 0.9:
		return LevelHigh
	case c.OverallSimilarity >= 0.7:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ComparePackages compares the format parts of two .docx packages and
// reports whether their paragraph texts agree.
func ComparePackages(left, right []byte) (*PackageComparison, error) {
	ld, err := Parse("left", left)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	rd, err := Parse("right", right)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	return CompareParsed(left, right, ld, rd)
}

// CompareParsed is ComparePackages for packages whose paragraph records
// are already parsed. ld and rd must be the records of left and right.
func CompareParsed(left, right []byte, ld, rd *paragraphs.DocumentRecord) (*PackageComparison, error) {
	la, err := openArchive(left)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	ra, err := openArchive(right)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}

	result := &PackageComparison{
		Parts: make(map[string]PartComparison, len(FormatParts)),
	}

	var total float64
	for _, name := range FormatParts {
		pc, ok, err := comparePart(la, ra, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		result.Parts[name] = pc
		total += pc.Similarity
	}

	result.OverallSimilarity = 1
	if len(result.Parts) > 0 {
		result.OverallSimilarity = total / float64(len(result.Parts))
	}
	result.SimilarityLevel = result.Level()

	result.ContentConsistent = contentConsistent(ld, rd)

	return result, nil
}

// comparePart reports ok=false when the part is absent from both packages.
func comparePart(left, right *archive, name string) (PartComparison, bool, error) {
	inLeft, inRight := left.has(name), right.has(name)

	switch {
	case !inLeft && !inRight:
		return PartComparison{}, false, nil
	case !inLeft:
		return PartComparison{Reason: "missing in left"}, true, nil
	case !inRight:
		return PartComparison{Reason: "missing in right"}, true, nil
	}

	l, err := left.read(name)
	if err != nil {
		return PartComparison{}, false, fmt.Errorf("left: %w", err)
	}
	r, err := right.read(name)
	if err != nil {
		return PartComparison{}, false, fmt.Errorf("right: %w", err)
	}

	if blake3.Sum256(l) == blake3.Sum256(r) {
		return PartComparison{Identical: true, Similarity: 1}, true, nil
	}

	ls, err := signatures(name, l)
	if err != nil {
		return PartComparison{}, false, fmt.Errorf("left: %w", err)
	}
	rs, err := signatures(name, r)
	if err != nil {
		return PartComparison{}, false, fmt.Errorf("right: %w", err)
	}

	return PartComparison{Similarity: dice(ls, rs)}, true, nil
}

// signatures counts the elements of a part by name and sorted attributes.
func signatures(name string, data []byte) (map[string]int, error) {
	root, err := parseXML(name, data)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		if n.Type == xmlquery.ElementNode {
			counts[signature(n)]++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return counts, nil
}

func signature(n *xmlquery.Node) string {
	attrs := make([]string, 0, len(n.Attr))
	for _, a := range n.Attr {
		key := a.Name.Local
		if a.Name.Space != "" {
			key = a.Name.Space + ":" + key
		}
		attrs = append(attrs, key+"="+a.Value)
	}
	sort.Strings(attrs)

	tag := n.Data
	if n.Prefix != "" {
		tag = n.Prefix + ":" + tag
	}
	return tag + "[" + strings.Join(attrs, " ") + "]"
}

// dice is the Dice coefficient of two multisets.
func dice(a, b map[string]int) float64 {
	var size, shared int
	for k, n := range a {
		size += n
		shared += min(n, b[k])
	}
	for _, n := range b {
		size += n
	}
	if size == 0 {
		return 1
	}
	return 2 * float64(shared) / float64(size)
}

func contentConsistent(left, right *paragraphs.DocumentRecord) bool {
	return slices.EqualFunc(left.Paragraphs, right.Paragraphs, func(a, b paragraphs.ParagraphRecord) bool {
		return a.Text == b.Text
	})
}
