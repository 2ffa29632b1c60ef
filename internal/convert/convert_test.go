package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumiyoshikawa/dscgen/internal/mof"
)

func fileInstance(id string, props ...mof.Property) mof.Instance {
	base := []mof.Property{
		{Name: "ResourceID", Value: mof.String(id)},
		{Name: "SourceInfo", Value: mof.String("::3::9::File")},
		{Name: "ModuleName", Value: mof.String("PSDesiredStateConfiguration")},
		{Name: "ModuleVersion", Value: mof.String("1.0")},
		{Name: "ConfigurationName", Value: mof.String("Sample")},
	}
	return mof.Instance{
		ClassName:  "MSFT_FileDirectoryConfiguration",
		Properties: append(base, props...),
	}
}

func TestInstancesDependsOn(t *testing.T) {
	instances := []mof.Instance{
		fileInstance("[File]TempDir",
			mof.Property{Name: "DestinationPath", Value: mof.String(`C:\Temp`)},
		),
		fileInstance("[File]TestFile",
			mof.Property{Name: "DestinationPath", Value: mof.String(`C:\Temp\test.txt`)},
			mof.Property{Name: "DependsOn", Value: mof.List{mof.String("[File]TempDir")}},
		),
		{ClassName: mof.DocumentClass, Properties: []mof.Property{{Name: "Version", Value: mof.String("2.0.0")}}},
	}

	resources := Instances(instances, "")
	require.Len(t, resources, 2)

	first := resources[0]
	assert.Equal(t, "PSDesiredStateConfiguration/File", first.Type)
	assert.Equal(t, "TempDir", first.Name)
	assert.Empty(t, first.DependsOn)
	_, hasDeps := first.Map().Get("dependsOn")
	assert.False(t, hasDeps)

	second := resources[1]
	assert.Equal(t, "TestFile", second.Name)
	assert.Equal(t, []string{"[resourceId('PSDesiredStateConfiguration/File', 'TempDir')]"}, second.DependsOn)
}

func TestInstancesStripMetadata(t *testing.T) {
	resources := Instances([]mof.Instance{
		fileInstance("[File]TempDir",
			mof.Property{Name: "Ensure", Value: mof.String("Present")},
			mof.Property{Name: "Checksum", Value: mof.Null{}},
			mof.Property{Name: "Attributes", Value: mof.List{mof.Null{}, mof.String("Hidden")}},
		),
	}, "")
	require.Len(t, resources, 1)

	props := resources[0].Properties
	require.NotNil(t, props)
	var names []string
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"Ensure", "Attributes"}, names)
	attrs, _ := props.Get("Attributes")
	assert.Equal(t, []any{"Hidden"}, attrs)
}

func TestInstancesMetadataOnly(t *testing.T) {
	resources := Instances([]mof.Instance{fileInstance("[File]Bare")}, "")
	require.Len(t, resources, 1)

	assert.Nil(t, resources[0].Properties)
	_, ok := resources[0].Map().Get("properties")
	assert.False(t, ok)
}

func TestInstancesForwardReference(t *testing.T) {
	instances := []mof.Instance{
		fileInstance("[File]Later", mof.Property{Name: "dependson", Value: mof.String("[Script]Setup")}),
		{
			ClassName: "MSFT_ScriptResource",
			Properties: []mof.Property{
				{Name: "ResourceID", Value: mof.String("[Script]Setup")},
				{Name: "ModuleName", Value: mof.String("PSDscResources")},
			},
		},
	}

	resources := Instances(instances, "")
	require.Len(t, resources, 2)
	assert.Equal(t, []string{"[resourceId('PSDscResources/Script', 'Setup')]"}, resources[0].DependsOn)
}

func TestInstancesUnresolvedDependency(t *testing.T) {
	instances := []mof.Instance{
		fileInstance("[File]A", mof.Property{Name: "DependsOn", Value: mof.List{
			mof.String("[Registry]Missing"),
			mof.String("not-an-identity"),
		}}),
	}

	resources := Instances(instances, "")
	require.Len(t, resources, 1)
	assert.Equal(t, []string{
		"[resourceId('PSDesiredStateConfiguration/Registry', 'Missing')]",
		"not-an-identity",
	}, resources[0].DependsOn)
}

func TestInstancesPrefixOverridesModuleName(t *testing.T) {
	instances := []mof.Instance{
		fileInstance("[File]A"),
		fileInstance("[File]B", mof.Property{Name: "DependsOn", Value: mof.List{mof.String("[File]A")}}),
	}

	resources := Instances(instances, "Contoso")
	require.Len(t, resources, 2)
	assert.Equal(t, "Contoso/File", resources[0].Type)
	assert.Equal(t, []string{"[resourceId('Contoso/File', 'A')]"}, resources[1].DependsOn)
}

func TestResolveIdentityFallbacks(t *testing.T) {
	withAlias := mof.Instance{ClassName: "MSFT_Thing", Alias: "MSFT_Thing1ref"}
	id := ResolveIdentity(withAlias, "")
	assert.Equal(t, Identity{Type: "MSFT_Thing/MSFT_Thing", Name: "MSFT_Thing1ref"}, id)

	bare := mof.Instance{
		ClassName:  "MSFT_Thing",
		Properties: []mof.Property{{Name: "ModuleName", Value: mof.String("ThingDsc")}},
	}
	id = ResolveIdentity(bare, "")
	assert.Equal(t, Identity{Type: "ThingDsc/MSFT_Thing", Name: "MSFT_Thing"}, id)

	malformed := mof.Instance{
		ClassName:  "MSFT_Thing",
		Properties: []mof.Property{{Name: "resourceid", Value: mof.String("NoBrackets")}},
	}
	id = ResolveIdentity(malformed, "Contoso")
	assert.Equal(t, Identity{Declared: "NoBrackets", Type: "Contoso/MSFT_Thing", Name: "MSFT_Thing"}, id)
}

func TestResourceID(t *testing.T) {
	assert.Equal(t, "[resourceId('A/B', 'c')]", ResourceID("A/B", "c"))
}
