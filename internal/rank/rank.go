package rank

import (
	"math"
	"sort"

	"github.com/jkendall327/VoynichBruteForce/internal/analysis"
	"github.com/jkendall327/VoynichBruteForce/internal/model"
)

// WeightTier classifies how strongly a scoring rule pulls on the total
// error. Each tier carries a fixed error multiplier.
type WeightTier int

const (
	TierLow WeightTier = iota
	TierNormal
	TierHigh
	TierCritical
)

func (t WeightTier) Multiplier() float64 {
	switch t {
	case TierLow:
		return 0.1
	case TierNormal:
		return 1.0
	case TierHigh:
		return 10.0
	case TierCritical:
		return 50.0
	default:
		return 1.0
	}
}

// Ranker converts a statistical view of finished text into a normalized
// deviation from one target value. Implementations are pure and safe for
// concurrent use.
type Ranker interface {
	Name() string
	Tier() WeightTier
	Rank(text *analysis.Text) model.RankerResult
}

// DefaultSet returns the standard rule set with targets drawn from the
// Voynich manuscript's published statistics.
func DefaultSet() []Ranker {
	return []Ranker{
		LetterEntropy{Target: 3.85},
		BigramConditionalEntropy{Target: 2.2},
		ZipfSlope{Target: -1.07},
		MeanWordLength{Target: 5.0},
		RepeatedWordRate{Target: 0.06},
	}
}

func score(name string, raw, target, scale float64, tier WeightTier) model.RankerResult {
	if scale <= 0 {
		scale = 1
	}
	return model.RankerResult{
		RuleName:        name,
		RawValue:        raw,
		TargetValue:     target,
		NormalizedError: math.Abs(raw-target) / scale,
		Weight:          tier.Multiplier(),
	}
}

// LetterEntropy measures the Shannon entropy (bits) of the letter
// distribution.
type LetterEntropy struct {
	Target float64
}

func (LetterEntropy) Name() string {
	return "letter_entropy"
}

func (LetterEntropy) Tier() WeightTier {
	return TierHigh
}

func (r LetterEntropy) Rank(text *analysis.Text) model.RankerResult {
	raw := letterEntropy(text)
	return score(r.Name(), raw, r.Target, 1.0, r.Tier())
}

func letterEntropy(text *analysis.Text) float64 {
	total := float64(text.TotalLetters())
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, count := range text.LetterFrequencies() {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}

// BigramConditionalEntropy measures H(next letter | current letter), the
// statistic on which the Voynich manuscript is famously anomalous.
type BigramConditionalEntropy struct {
	Target float64
}

func (BigramConditionalEntropy) Name() string {
	return "bigram_conditional_entropy"
}

func (BigramConditionalEntropy) Tier() WeightTier {
	return TierCritical
}

func (r BigramConditionalEntropy) Rank(text *analysis.Text) model.RankerResult {
	raw := bigramEntropy(text) - firstLetterEntropy(text)
	if raw < 0 {
		raw = 0
	}
	return score(r.Name(), raw, r.Target, 1.0, r.Tier())
}

func bigramEntropy(text *analysis.Text) float64 {
	total := float64(text.TotalBigrams())
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, count := range text.Bigrams() {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}

// firstLetterEntropy is the entropy of the first-of-pair marginal, so the
// subtraction yields a true conditional entropy over the same sample.
func firstLetterEntropy(text *analysis.Text) float64 {
	total := float64(text.TotalBigrams())
	if total == 0 {
		return 0
	}
	marginal := make(map[rune]int)
	for pair, count := range text.Bigrams() {
		marginal[pair[0]] += count
	}
	h := 0.0
	for _, count := range marginal {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}

// ZipfSlope fits log frequency against log rank over the most frequent
// words; natural language sits near -1.
type ZipfSlope struct {
	Target float64
}

func (ZipfSlope) Name() string {
	return "zipf_slope"
}

func (ZipfSlope) Tier() WeightTier {
	return TierNormal
}

func (r ZipfSlope) Rank(text *analysis.Text) model.RankerResult {
	raw := zipfSlope(text, 50)
	return score(r.Name(), raw, r.Target, 0.5, r.Tier())
}

func zipfSlope(text *analysis.Text, maxRanks int) float64 {
	counts := make(map[string]int)
	for _, word := range text.Words() {
		counts[word]++
	}
	if len(counts) < 2 {
		return 0
	}

	freqs := make([]int, 0, len(counts))
	for _, count := range counts {
		freqs = append(freqs, count)
	}
	// Descending by frequency; rank 1 is the most common word.
	sort.Slice(freqs, func(i, j int) bool { return freqs[i] > freqs[j] })
	if len(freqs) > maxRanks {
		freqs = freqs[:maxRanks]
	}

	n := float64(len(freqs))
	var sumX, sumY, sumXX, sumXY float64
	for i, freq := range freqs {
		x := math.Log(float64(i + 1))
		y := math.Log(float64(freq))
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// MeanWordLength targets the Voynich mean of roughly five glyphs per word.
type MeanWordLength struct {
	Target float64
}

func (MeanWordLength) Name() string {
	return "mean_word_length"
}

func (MeanWordLength) Tier() WeightTier {
	return TierNormal
}

func (r MeanWordLength) Rank(text *analysis.Text) model.RankerResult {
	words := text.Words()
	raw := 0.0
	if len(words) > 0 {
		total := 0
		for _, word := range words {
			total += len([]rune(word))
		}
		raw = float64(total) / float64(len(words))
	}
	return score(r.Name(), raw, r.Target, 2.0, r.Tier())
}

// RepeatedWordRate measures adjacent duplicate words, unusually common in
// the manuscript.
type RepeatedWordRate struct {
	Target float64
}

func (RepeatedWordRate) Name() string {
	return "repeated_word_rate"
}

func (RepeatedWordRate) Tier() WeightTier {
	return TierLow
}

func (r RepeatedWordRate) Rank(text *analysis.Text) model.RankerResult {
	words := text.Words()
	raw := 0.0
	if len(words) > 1 {
		repeats := 0
		for i := 1; i < len(words); i++ {
			if words[i] == words[i-1] {
				repeats++
			}
		}
		raw = float64(repeats) / float64(len(words)-1)
	}
	return score(r.Name(), raw, r.Target, 0.1, r.Tier())
}
