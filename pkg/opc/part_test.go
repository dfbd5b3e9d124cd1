package opc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/schema"
)

func TestSingletonPartnameIsFixed(t *testing.T) {
	pkg := NewEmpty()
	part, err := pkg.NewPart(schema.CTPresentationMain, nil)
	require.NoError(t, err)

	_, ok := part.AssignedPartname()
	assert.False(t, ok)

	name, err := part.Partname()
	require.NoError(t, err)
	assert.Equal(t, packuri.URI("/ppt/presentation.xml"), name)

	again, err := part.Partname()
	require.NoError(t, err)
	assert.Equal(t, name, again)
}

func TestTuplePartnameFillsGaps(t *testing.T) {
	pkg := NewEmpty()
	pres, err := pkg.NewPart(schema.CTPresentationMain, nil)
	require.NoError(t, err)
	_, err = pkg.AddRelationship(schema.RTOfficeDocument, pres)
	require.NoError(t, err)

	for _, n := range []string{"/ppt/slides/slide1.xml", "/ppt/slides/slide2.xml", "/ppt/slides/slide4.xml"} {
		s, err := pkg.NewPartNamed(packuri.URI(n), schema.CTSlide, nil)
		require.NoError(t, err)
		_, err = pres.AddRelationship(schema.RTSlide, s)
		require.NoError(t, err)
	}

	fresh, err := pkg.NewPart(schema.CTSlide, nil)
	require.NoError(t, err)
	name, err := fresh.Partname()
	require.NoError(t, err)
	assert.Equal(t, packuri.URI("/ppt/slides/slide3.xml"), name)

	next, err := pkg.NewPart(schema.CTSlide, nil)
	require.NoError(t, err)
	name, err = next.Partname()
	require.NoError(t, err)
	assert.Equal(t, packuri.URI("/ppt/slides/slide5.xml"), name)
}

func TestTuplePartnameIgnoresOtherTypes(t *testing.T) {
	pkg := NewEmpty()
	_, err := pkg.NewPartNamed("/ppt/notesSlides/notesSlide1.xml", schema.CTNotesSlide, nil)
	require.NoError(t, err)

	slide, err := pkg.NewPart(schema.CTSlide, nil)
	require.NoError(t, err)
	name, err := slide.Partname()
	require.NoError(t, err)
	assert.Equal(t, packuri.URI("/ppt/slides/slide1.xml"), name)
}

func TestPartnameOutsidePackage(t *testing.T) {
	loose := newPart("", schema.CTSlide, nil)
	_, err := loose.Partname()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))

	unknown := newPart("", "application/x-unknown", nil)
	_, err = unknown.Partname()
	assert.True(t, errors.Is(err, errors.ErrCodeLookup))
}

func TestSetPartname(t *testing.T) {
	pkg := NewEmpty()
	taken, err := pkg.NewPartNamed("/ppt/slides/slide1.xml", schema.CTSlide, nil)
	require.NoError(t, err)
	require.NotNil(t, taken)

	part, err := pkg.NewPart(schema.CTSlide, nil)
	require.NoError(t, err)

	err = part.SetPartname("/ppt/slides/slide1.xml")
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateKey))

	err = part.SetPartname("ppt/slides/slide7.xml")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPartname))

	require.NoError(t, part.SetPartname("/ppt/slides/slide7.xml"))
	err = part.SetPartname("/ppt/slides/slide8.xml")
	assert.True(t, errors.Is(err, errors.ErrCodePartnameAssigned))

	name, err := part.Partname()
	require.NoError(t, err)
	assert.Equal(t, packuri.URI("/ppt/slides/slide7.xml"), name)
}

func TestNewPartRejectsUnknownType(t *testing.T) {
	_, err := NewEmpty().NewPart("application/x-unknown", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeLookup))

	_, err = NewEmpty().NewPartNamed("/custom/blob.dat", "application/x-unknown", nil)
	assert.NoError(t, err)
}

func TestIsXML(t *testing.T) {
	tests := []struct {
		name packuri.URI
		ct   string
		want bool
	}{
		{"/ppt/slides/slide1.xml", schema.CTSlide, true},
		{"/customXml/item1.xml", schema.CTXML, true},
		{"/ppt/media/image1.png", schema.CTPNG, false},
		{"/ppt/drawings/vmlDrawing1.vml", schema.CTVMLDrawing, false},
		{"/ppt/custom.xml", "application/octet-stream", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			assert.Equal(t, tt.want, newPart(tt.name, tt.ct, nil).IsXML())
		})
	}
}

func TestCheckWellFormed(t *testing.T) {
	assert.NoError(t, checkWellFormed([]byte(xmlPart("p:sld"))))
	assert.Error(t, checkWellFormed([]byte("<p:sld><unclosed></p:sld>")))
	assert.Error(t, checkWellFormed([]byte("plain text")))
	assert.Error(t, checkWellFormed(nil))
}
