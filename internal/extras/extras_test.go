package extras

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{name: "none", values: nil, want: []string{}},
		{name: "comma separated", values: []string{"dashboard,browser"}, want: []string{"browser", "dashboard"}},
		{name: "repeated flag", values: []string{"telegram", "slack"}, want: []string{"slack", "telegram"}},
		{name: "blanks and spaces", values: []string{" dashboard , ,"}, want: []string{"dashboard"}},
		{name: "case and duplicates", values: []string{"Dashboard", "dashboard"}, want: []string{"dashboard"}},
		{name: "fullwidth letters", values: []string{"ｄａｓｈｂｏａｒｄ"}, want: []string{"dashboard"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.values...).Sorted())
		})
	}
}

func TestFeatureSetRequirement(t *testing.T) {
	assert.Equal(t, "pocketpaw", NewFeatureSet().Requirement("pocketpaw"))
	assert.Equal(t, "pocketpaw[browser,dashboard]", NewFeatureSet("dashboard", "browser").Requirement("pocketpaw"))
}

func TestFeatureSetString(t *testing.T) {
	assert.Equal(t, "bare", NewFeatureSet().String())
	assert.Equal(t, "browser,dashboard", NewFeatureSet("dashboard", "browser").String())
}

func TestFeatureSetValidate(t *testing.T) {
	require.NoError(t, NewFeatureSet().Validate())
	require.NoError(t, Parse("Dashboard,browser", "mem0.ai", "voice_v2", "x-1").Validate())

	for _, bad := range []string{"dash board", "-dashboard", "dashboard.", "pocketpaw[x]", "über"} {
		err := NewFeatureSet(bad).Validate()
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "invalid extra")
	}
}

func TestFeatureSetEqualAndHas(t *testing.T) {
	set := NewFeatureSet("a", "b")
	assert.True(t, set.Equal(NewFeatureSet("B", "a")))
	assert.False(t, set.Equal(NewFeatureSet("a", "b", "c")))
	assert.False(t, set.Equal(NewFeatureSet("a", "c")))
	assert.False(t, set.Has("c"))
	assert.True(t, set.Has(" A "))
}

func TestKnownIncludesTieredBundles(t *testing.T) {
	names := map[string]bool{}
	for _, bundle := range Known() {
		assert.NotEmpty(t, bundle.Description, bundle.Name)
		names[bundle.Name] = true
	}
	assert.True(t, names[Recommended])
	assert.True(t, names[All])
	assert.True(t, names[Dashboard])
}
