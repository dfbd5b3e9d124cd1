package nodelink

import (
	"strings"
	"testing"

	pkgio "github.com/matzehuels/opcpack/pkg/io"
	"github.com/matzehuels/opcpack/pkg/schema"
)

func sampleListing() *pkgio.Listing {
	return &pkgio.Listing{
		Parts: []pkgio.Part{
			{Partname: "/ppt/presentation.xml", ContentType: schema.CTPresentationMain, Size: 120},
			{Partname: "/ppt/slideMasters/slideMaster1.xml", ContentType: schema.CTSlideMaster, Size: 80},
			{Partname: "/ppt/slideLayouts/slideLayout1.xml", ContentType: schema.CTSlideLayout, Size: 60},
		},
		Relationships: []pkgio.Relationship{
			{Source: "/", ID: "rId1", Type: schema.RTOfficeDocument, Target: "/ppt/presentation.xml"},
			{Source: "/ppt/presentation.xml", ID: "rId1", Type: schema.RTSlideMaster, Target: "/ppt/slideMasters/slideMaster1.xml"},
			{Source: "/ppt/presentation.xml", ID: "rId2", Type: schema.RTHyperlink, Target: "https://example.com/", External: true},
			{Source: "/ppt/slideMasters/slideMaster1.xml", ID: "rId1", Type: schema.RTSlideLayout, Target: "/ppt/slideLayouts/slideLayout1.xml"},
			{Source: "/ppt/slideLayouts/slideLayout1.xml", ID: "rId1", Type: schema.RTSlideMaster, Target: "/ppt/slideMasters/slideMaster1.xml"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleListing(), Options{})

	for _, want := range []string{
		`digraph G {`,
		`"/" [label="package", shape=ellipse`,
		`"/ppt/presentation.xml" [label="/ppt/presentation.xml"];`,
		`"/ppt/slideMasters/slideMaster1.xml" -> "/ppt/slideLayouts/slideLayout1.xml";`,
		`"/ppt/slideLayouts/slideLayout1.xml" -> "/ppt/slideMasters/slideMaster1.xml";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT lacks %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "example.com") {
		t.Error("external targets should be hidden by default")
	}
}

func TestToDOTDetailedExternal(t *testing.T) {
	dot := ToDOT(sampleListing(), Options{Detailed: true, External: true})

	for _, want := range []string{
		`"ext:https://example.com/" [label="https://example.com/", shape=ellipse, style=dashed];`,
		`"/ppt/presentation.xml" -> "ext:https://example.com/" [label="rId2 hyperlink"];`,
		`[label="rId1 slideLayout"]`,
		`120 bytes`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT lacks %s\n%s", want, dot)
		}
	}
}

func TestShortType(t *testing.T) {
	tests := map[string]string{
		schema.RTSlideLayout:    "slideLayout",
		schema.RTCoreProperties: "core-properties",
		"custom/":               "custom",
	}
	for in, want := range tests {
		if got := ShortType(in); got != want {
			t.Errorf("ShortType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sampleListing(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("unexpected output %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
