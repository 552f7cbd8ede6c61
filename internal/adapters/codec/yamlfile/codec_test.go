package yamlfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modscan/internal/adapters/codec/yamlfile"
	"go.trai.ch/modscan/internal/core/domain"
)

func TestCodec_Decode(t *testing.T) {
	src := `
module: FlurryEditor
settings:
  PCHUsage: UseExplicitOrSharedPCHs
  bEnforceIWYU: true
properties:
  PrivateIncludePaths:
    - FlurryEditor/Private
  PrivateDependencyModuleNames:
    - Core
    - CoreUObject
    - Core
  PublicIncludePaths: []
  PrivateIncludePathModuleNames:
`
	d, err := yamlfile.New().Decode("FlurryEditor.module.yaml", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "FlurryEditor", d.Name)
	assert.Equal(t, "FlurryEditor.module.yaml", d.Source)
	assert.Equal(t, []string{"FlurryEditor/Private"}, d.List(domain.PrivateIncludePaths))
	assert.Equal(t, []string{"Core", "CoreUObject", "Core"}, d.List(domain.PrivateDependencyModuleNames))
	assert.True(t, d.Has(domain.PublicIncludePaths))
	assert.True(t, d.Has(domain.PrivateIncludePathModuleNames))
	assert.Empty(t, d.List(domain.PublicDependencyModuleNames))

	mode, ok := d.PCHUsage()
	require.True(t, ok)
	assert.Equal(t, domain.PCHUseExplicitOrSharedPCHs, mode)
	iwyu, ok := d.Setting("bEnforceIWYU")
	require.True(t, ok)
	assert.Equal(t, "true", iwyu)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty document", src: ""},
		{name: "missing module", src: "properties:\n  PublicIncludePaths: [Public]\n"},
		{name: "unknown field", src: "module: A\ndependencies: [Core]\n"},
		{name: "invalid yaml", src: "module: [unclosed\n"},
		{name: "list instead of mapping", src: "- module: A\n"},
		{name: "settings only", src: "settings: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := yamlfile.New().Decode("A.module.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, domain.ErrMalformedDescriptor)
		})
	}
}

func TestCodec_Encode(t *testing.T) {
	d := domain.NewDescriptor("ComposureEditor")
	d.Append(domain.PrivateIncludePaths)
	d.Append(domain.PublicDependencyModuleNames, "Core", "CoreUObject")
	d.SetSetting("bUseRTTI", "false")

	out, err := yamlfile.New().Encode(d)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "module: ComposureEditor\n"))
	assert.Contains(t, text, `bUseRTTI: "false"`)
	assert.Contains(t, text, "PrivateIncludePaths: []")
	assert.Contains(t, text, "- CoreUObject")
	assert.Less(t, strings.Index(text, "settings:"), strings.Index(text, "properties:"))
	assert.Less(t, strings.Index(text, "PrivateIncludePaths"), strings.Index(text, "PublicDependencyModuleNames"))
}

func TestCodec_RoundTrip(t *testing.T) {
	d := domain.NewDescriptor("DataprepEditor")
	d.Append(domain.PrivateDependencyModuleNames, "EditorWidgets", "EditorWidgets", "yes", "123")
	d.Append(domain.PrivateIncludePaths, "DataprepCore/Private/Shared")
	d.Append(domain.PublicIncludePaths)
	d.Append("PublicDefinitions", "WITH_DATAPREP=1")
	d.SetSetting(domain.PCHUsageSetting, string(domain.PCHNoSharedPCHs))
	d.SetSetting("MinFilesUsingPrecompiledHeaderOverride", "1")

	c := yamlfile.New()
	out, err := c.Encode(d)
	require.NoError(t, err)

	back, err := c.Decode("DataprepEditor.module.yaml", out)
	require.NoError(t, err)
	assert.True(t, d.Equal(back), "round trip changed descriptor:\n%s", out)
	assert.Equal(t, d.Properties(), back.Properties())
}

func TestCodec_Match(t *testing.T) {
	c := yamlfile.New()
	assert.Equal(t, domain.FormatYAML, c.Format())
	assert.True(t, c.Match("mods/Water.module.yaml"))
	assert.False(t, c.Match("modscan.yaml"))
	assert.False(t, c.Match("Water.Build.cs"))
}
