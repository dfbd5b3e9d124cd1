package contenttype

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/schema"
)

func TestLookupPrecedence(t *testing.T) {
	r := New()
	r.AddDefault("jpg", "image/jpeg")
	r.AddDefault("xml", schema.CTXML)
	r.AddOverride("/foo/bar.xml", "application/vnd.x")

	ct, err := r.Lookup("/foo/BAR.XML")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.x", ct)

	ct, err = r.Lookup("/ppt/media/image1.JPG")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	ct, err = r.Lookup("/foo/other.xml")
	require.NoError(t, err)
	assert.Equal(t, schema.CTXML, ct)
}

func TestLookupUnresolvable(t *testing.T) {
	r := New()
	r.AddDefault("xml", schema.CTXML)

	_, err := r.Lookup("!blat/rhumba.1x&")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLookup))

	_, err = r.Lookup("/ppt/media/noext")
	assert.True(t, errors.Is(err, errors.ErrCodeLookup))
}

const manifest = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="jpeg" ContentType="image/jpeg"/>
  <Override PartName="/ppt/presentation.xml" ContentType="` + schema.CTPresentationMain + `"/>
  <Default Extension="rels" ContentType="` + schema.CTRelationships + `"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/slides/slide10.xml" ContentType="` + schema.CTSlide + `"/>
  <Override PartName="/ppt/slides/slide9.xml" ContentType="` + schema.CTSlide + `"/>
</Types>`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(manifest))
	require.NoError(t, err)
	assert.Equal(t, 6, r.Len())

	ct, err := r.Lookup("/ppt/presentation.xml")
	require.NoError(t, err)
	assert.Equal(t, schema.CTPresentationMain, ct)

	assert.Equal(t, []Default{
		{"jpeg", "image/jpeg"},
		{"rels", schema.CTRelationships},
		{"xml", schema.CTXML},
	}, r.Defaults())

	var names []packuri.URI
	for _, o := range r.Overrides() {
		names = append(names, o.PartName)
	}
	assert.Equal(t, []packuri.URI{
		"/ppt/presentation.xml",
		"/ppt/slides/slide9.xml",
		"/ppt/slides/slide10.xml",
	}, names)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "this is not a manifest"},
		{"bad partname", `<Types xmlns="` + schema.NSContentTypes + `"><Override PartName="ppt/x.xml" ContentType="a/b"/></Types>`},
		{"missing extension", `<Types xmlns="` + schema.NSContentTypes + `"><Default ContentType="a/b"/></Types>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeCorruptedPackage))
		})
	}
}

func TestMarshal(t *testing.T) {
	r, err := Parse([]byte(manifest))
	require.NoError(t, err)

	out, err := r.Marshal()
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, schema.XMLHeader))
	assert.Contains(t, s, `<Types xmlns="`+schema.NSContentTypes+`">`)
	assert.Less(t, strings.Index(s, `Extension="xml"`), strings.Index(s, "<Override"))
	assert.Less(t, strings.Index(s, "slide9.xml"), strings.Index(s, "slide10.xml"))

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, r.Defaults(), again.Defaults())
	assert.Equal(t, r.Overrides(), again.Overrides())
}

func fixtureParts() []Entry {
	parts := []Entry{
		{"/docProps/thumbnail.jpeg", schema.CTJPEG},
		{"/docProps/core.xml", schema.CTCoreProperties},
		{"/docProps/app.xml", schema.CTExtendedProperties},
		{"/ppt/presentation.xml", schema.CTPresentationMain},
		{"/ppt/presProps.xml", schema.CTPresProps},
		{"/ppt/viewProps.xml", schema.CTViewProps},
		{"/ppt/tableStyles.xml", schema.CTTableStyles},
		{"/ppt/theme/theme1.xml", schema.CTTheme},
		{"/ppt/slideMasters/slideMaster1.xml", schema.CTSlideMaster},
	}
	for i := 1; i <= 11; i++ {
		parts = append(parts, Entry{packuri.URI(fmt.Sprintf("/ppt/slideLayouts/slideLayout%d.xml", i)), schema.CTSlideLayout})
	}
	parts = append(parts, Entry{"/ppt/slides/slide1.xml", schema.CTSlide})
	parts = append(parts, Entry{"/ppt/slides/slide2.xml", schema.CTSlide})
	return parts
}

func TestComposeFixture(t *testing.T) {
	parts := fixtureParts()
	require.Len(t, parts, 22)
	before := append([]Entry(nil), parts...)

	r, err := Compose(parts, nil)
	require.NoError(t, err)
	assert.Equal(t, 24, r.Len())
	assert.Len(t, r.Defaults(), 3)
	assert.Len(t, r.Overrides(), 21)
	assert.Equal(t, before, parts)

	for _, p := range parts {
		ct, err := r.Lookup(p.PartName)
		require.NoError(t, err)
		assert.Equal(t, p.ContentType, ct, p.PartName)
	}
}

func TestComposeMismatchedMedia(t *testing.T) {
	r, err := Compose([]Entry{
		{"/ppt/media/image1.png", schema.CTPNG},
		{"/ppt/media/image2.png", "image/x-weird"},
		{"/ppt/custom.xml", schema.CTXML},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []Override{{"/ppt/media/image2.png", "image/x-weird"}}, r.Overrides())
	ct, err := r.Lookup("/ppt/media/image1.png")
	require.NoError(t, err)
	assert.Equal(t, schema.CTPNG, ct)
}

func TestComposeUnresolvable(t *testing.T) {
	_, err := Compose([]Entry{
		{"/ppt/presentation.xml", schema.CTPresentationMain},
		{"!blat/rhumba.1x&", "application/octet-stream"},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLookup))
}

func TestComposeUsesKnownDefaults(t *testing.T) {
	known := New()
	known.AddDefault("odttf", "application/vnd.openxmlformats-officedocument.obfuscatedFont")

	parts := []Entry{{"/ppt/fonts/font1.odttf", "application/vnd.openxmlformats-officedocument.obfuscatedFont"}}

	_, err := Compose(parts, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeLookup))

	r, err := Compose(parts, known)
	require.NoError(t, err)
	ct, ok := r.DefaultFor("odttf")
	assert.True(t, ok)
	assert.Equal(t, parts[0].ContentType, ct)
}
