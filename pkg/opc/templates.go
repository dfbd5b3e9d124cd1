package opc

import (
	"embed"

	"github.com/matzehuels/opcpack/pkg/schema"
)

//go:embed templates/*.xml
var templates embed.FS

// defaultBlob returns the embedded default content for a new part.
func defaultBlob(name string) []byte {
	b, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic("opc: missing template " + name)
	}
	return b
}

// New returns a minimal, savable presentation package: one part for each
// required part type, wired the way a presentation application writes them.
func New(opts ...Option) (*Package, error) {
	p := NewEmpty(opts...)

	add := func(ct, template string) (*Part, error) {
		return p.NewPart(ct, defaultBlob(template))
	}

	pres, err := add(schema.CTPresentationMain, "presentation.xml")
	if err != nil {
		return nil, err
	}
	core, err := add(schema.CTCoreProperties, "core.xml")
	if err != nil {
		return nil, err
	}
	app, err := add(schema.CTExtendedProperties, "app.xml")
	if err != nil {
		return nil, err
	}
	master, err := add(schema.CTSlideMaster, "slideMaster.xml")
	if err != nil {
		return nil, err
	}
	layout, err := add(schema.CTSlideLayout, "slideLayout.xml")
	if err != nil {
		return nil, err
	}
	theme, err := add(schema.CTTheme, "theme.xml")
	if err != nil {
		return nil, err
	}
	presProps, err := add(schema.CTPresProps, "presProps.xml")
	if err != nil {
		return nil, err
	}
	viewProps, err := add(schema.CTViewProps, "viewProps.xml")
	if err != nil {
		return nil, err
	}
	tableStyles, err := add(schema.CTTableStyles, "tableStyles.xml")
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		relType string
		target  *Part
	}{
		{schema.RTOfficeDocument, pres},
		{schema.RTCoreProperties, core},
		{schema.RTExtendedProperties, app},
	} {
		if _, err := p.AddRelationship(e.relType, e.target); err != nil {
			return nil, err
		}
	}

	// r:id values in the templates depend on this order.
	for _, e := range []struct {
		source  *Part
		relType string
		target  *Part
	}{
		{pres, schema.RTSlideMaster, master},
		{pres, schema.RTPresProps, presProps},
		{pres, schema.RTViewProps, viewProps},
		{pres, schema.RTTheme, theme},
		{pres, schema.RTTableStyles, tableStyles},
		{master, schema.RTSlideLayout, layout},
		{master, schema.RTTheme, theme},
		{layout, schema.RTSlideMaster, master},
	} {
		if _, err := e.source.AddRelationship(e.relType, e.target); err != nil {
			return nil, err
		}
	}

	return p, nil
}
