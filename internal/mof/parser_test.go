package mof

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumiyoshikawa/dscgen/internal/input"
)

const document = `/*
@TargetNode='localhost'
*/
#pragma namespace("root/microsoft/windows/desiredstateconfiguration")

instance of MSFT_Credential as $MSFT_Credential1ref
{
    UserName = "admin";
    Password = "secret";
};

// the directory
instance of MSFT_FileDirectoryConfiguration as $MSFT_FileDirectoryConfiguration1ref
{
    ResourceID = "[File]TempDir";
    DestinationPath = "C:\\Temp";
    Recurse = True;
    Force = false;
    Retries = -3;
    Ratio = 1.5;
    Checksum = NULL;
    Type = Directory;
    Credential = $MSFT_Credential1ref;
    Message = "part one, "
              "part two";
    Ports = {80, 443};
    Empty = {};
    ModuleName = "PSDesiredStateConfiguration";
};

INSTANCE OF OMI_ConfigurationDocument
{
    Version = "2.0.0";
}
`

func TestParse(t *testing.T) {
	instances, err := Parse("doc.mof", []byte(document))
	require.NoError(t, err)
	require.Len(t, instances, 3)

	cred := instances[0]
	assert.Equal(t, "MSFT_Credential", cred.ClassName)
	assert.Equal(t, "MSFT_Credential1ref", cred.Alias)

	file := instances[1]
	assert.Equal(t, "MSFT_FileDirectoryConfiguration", file.ClassName)

	want := []Property{
		{Name: "ResourceID", Value: String("[File]TempDir")},
		{Name: "DestinationPath", Value: String(`C:\Temp`)},
		{Name: "Recurse", Value: Boolean(true)},
		{Name: "Force", Value: Boolean(false)},
		{Name: "Retries", Value: Integer(-3)},
		{Name: "Ratio", Value: Real(1.5)},
		{Name: "Checksum", Value: Null{}},
		{Name: "Type", Value: EnumName("Directory")},
		{Name: "Credential", Value: Reference("MSFT_Credential1ref")},
		{Name: "Message", Value: String("part one, part two")},
		{Name: "Ports", Value: List{Integer(80), Integer(443)}},
		{Name: "Empty", Value: List{}},
		{Name: "ModuleName", Value: String("PSDesiredStateConfiguration")},
	}
	assert.Equal(t, want, file.Properties)

	doc := instances[2]
	assert.Equal(t, DocumentClass, doc.ClassName)
	assert.Empty(t, doc.Alias)
}

func TestParseEmpty(t *testing.T) {
	instances, err := Parse("empty.mof", []byte("// nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestParseError(t *testing.T) {
	_, err := Parse("bad.mof", []byte("instance of Foo\n{\n    Name = ;\n};\n"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.mof", perr.Path)
	assert.Equal(t, 3, perr.Pos.Line)
	assert.Contains(t, err.Error(), "bad.mof:3:")
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.mof"))
	assert.ErrorIs(t, err, input.ErrInputNotFound)
}

func TestText(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("x"), "x"},
		{EnumName("Present"), "Present"},
		{Integer(-1), "-1"},
		{Boolean(true), "True"},
		{Real(2.5), "2.5"},
		{Null{}, "NULL"},
		{Reference("a1ref"), "$a1ref"},
		{List{String("a"), Integer(1)}, "{a, 1}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.v))
	}
}
