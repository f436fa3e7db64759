package extras

// Tier classifies a bundle by how likely its dependencies are to fail to install.
type Tier int

const (
	// TierLight bundles install reliably; no intermediate fallback is generated for them.
	TierLight Tier = iota
	// TierMid bundles have lighter dependencies and double as the intermediate fallback.
	TierMid
	// TierHeavy bundles transitively pull in large or fragile dependencies.
	TierHeavy
)

// String returns the lower-case tier name.
func (t Tier) String() string {
	switch t {
	case TierHeavy:
		return "heavy"
	case TierMid:
		return "mid"
	default:
		return "light"
	}
}

// tiers is the closed tier table. Names not listed are light.
var tiers = map[string]Tier{
	Recommended: TierHeavy,
	All:         TierHeavy,
	Dashboard:   TierMid,
}

// TierOf returns the tier of a bundle name.
func TierOf(name string) Tier {
	if tier, ok := tiers[normalizeName(name)]; ok {
		return tier
	}
	return TierLight
}

// FallbackChain is the ordered list of reduced sets retried after the
// requested set fails. It always ends with the bare set.
type FallbackChain []FeatureSet

// Last returns the final candidate of the chain.
func (c FallbackChain) Last() FeatureSet {
	if len(c) == 0 {
		return FeatureSet{}
	}
	return c[len(c)-1]
}

// Strings renders every candidate with FeatureSet.String.
func (c FallbackChain) Strings() []string {
	out := make([]string, len(c))
	for i, set := range c {
		out[i] = set.String()
	}
	return out
}

// HighestTier returns the most severe tier present in requested.
func HighestTier(requested FeatureSet) Tier {
	highest := TierLight
	for name := range requested {
		if tier := TierOf(name); tier > highest {
			highest = tier
		}
	}
	return highest
}

// BuildFallbackChain returns the candidates to try, in order, after requested fails.
//
// Heavy bundles retreat to dashboard and then bare. A set that is exactly
// dashboard goes straight to bare, since retrying dashboard would repeat the
// failed attempt. Dashboard mixed with light bundles retreats to dashboard
// then bare. Everything else, including the empty set, retries bare once.
func BuildFallbackChain(requested FeatureSet) FallbackChain {
	switch {
	case HighestTier(requested) == TierHeavy:
		return FallbackChain{NewFeatureSet(Dashboard), NewFeatureSet()}
	case requested.Equal(NewFeatureSet(Dashboard)):
		return FallbackChain{NewFeatureSet()}
	case HighestTier(requested) == TierMid:
		return FallbackChain{NewFeatureSet(Dashboard), NewFeatureSet()}
	default:
		return FallbackChain{NewFeatureSet()}
	}
}
