package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/modscan/internal/adapters/fs"
	"go.trai.ch/modscan/internal/core/domain"
)

func waterEditor() *domain.Descriptor {
	d := domain.NewDescriptor("WaterEditor")
	d.Source = "Plugins/Water/Source/Editor/WaterEditor.Build.cs"
	d.Append(domain.PrivateIncludePaths, "Editor/Private")
	d.Append(domain.PrivateDependencyModuleNames, "Core", "CoreUObject", "Water")
	d.SetSetting(domain.PCHUsageSetting, string(domain.PCHUseExplicitOrSharedPCHs))
	return d
}

func TestHasher_Fingerprint_Stable(t *testing.T) {
	h := fs.NewHasher()

	a := waterEditor()
	b := waterEditor()
	b.Source = "elsewhere/WaterEditor.module.yaml"
	b.Append(domain.PublicDependencyModuleNames)

	fp := h.Fingerprint(a)
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, h.Fingerprint(b), "source and declared-empty lists do not contribute")
}

func TestHasher_Fingerprint_ContentChanges(t *testing.T) {
	h := fs.NewHasher()
	base := h.Fingerprint(waterEditor())

	tests := []struct {
		name   string
		mutate func(d *domain.Descriptor)
	}{
		{"name", func(d *domain.Descriptor) { d.Name = "Water" }},
		{"added dependency", func(d *domain.Descriptor) { d.Append(domain.PrivateDependencyModuleNames, "Engine") }},
		{"moved to public", func(d *domain.Descriptor) {
			*d = *domain.NewDescriptor("WaterEditor")
			d.Append(domain.PrivateIncludePaths, "Editor/Private")
			d.Append(domain.PublicDependencyModuleNames, "Core", "CoreUObject", "Water")
			d.SetSetting(domain.PCHUsageSetting, string(domain.PCHUseExplicitOrSharedPCHs))
		}},
		{"setting", func(d *domain.Descriptor) { d.SetSetting(domain.PCHUsageSetting, string(domain.PCHNoPCHs)) }},
		{"duplicate entry", func(d *domain.Descriptor) { d.Append(domain.PrivateDependencyModuleNames, "Core") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := waterEditor()
			tt.mutate(d)
			assert.NotEqual(t, base, fs.NewHasher().Fingerprint(d))
		})
	}
}

func TestHasher_Fingerprint_ValueBoundaries(t *testing.T) {
	tests := []struct {
		name string
		a, b func() *domain.Descriptor
	}{
		{
			name: "entry split",
			a: func() *domain.Descriptor {
				d := domain.NewDescriptor("Flurry")
				d.Append(domain.PrivateDependencyModuleNames, "Core\x00Engine")
				return d
			},
			b: func() *domain.Descriptor {
				d := domain.NewDescriptor("Flurry")
				d.Append(domain.PrivateDependencyModuleNames, "Core", "Engine")
				return d
			},
		},
		{
			name: "empty entry",
			a: func() *domain.Descriptor {
				d := domain.NewDescriptor("Flurry")
				d.Append(domain.PrivateDependencyModuleNames, "Core", "")
				return d
			},
			b: func() *domain.Descriptor {
				d := domain.NewDescriptor("Flurry")
				d.Append(domain.PrivateDependencyModuleNames, "Core")
				return d
			},
		},
		{
			name: "setting key and value",
			a: func() *domain.Descriptor {
				d := domain.NewDescriptor("Flurry")
				d.SetSetting("ShortName", "")
				return d
			},
			b: func() *domain.Descriptor {
				d := domain.NewDescriptor("Flurry")
				d.SetSetting("Short", "Name")
				return d
			},
		},
	}

	h := fs.NewHasher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, h.Fingerprint(tt.a()), h.Fingerprint(tt.b()))
		})
	}
}
