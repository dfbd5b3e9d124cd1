package opc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/opcpack/pkg/schema"
)

// container is an in-memory zip under construction.
type container struct {
	names []string
	items map[string]string
}

func newContainer() *container {
	return &container{items: make(map[string]string)}
}

func (c *container) add(name, content string) *container {
	if _, ok := c.items[name]; !ok {
		c.names = append(c.names, name)
	}
	c.items[name] = content
	return c
}

func (c *container) bytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range c.names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(c.items[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type rel struct {
	id, relType, target string
	external            bool
}

func relsXML(rels ...rel) string {
	var b strings.Builder
	b.WriteString(schema.XMLHeader)
	b.WriteString(`<Relationships xmlns="` + schema.NSRelationships + `">`)
	for _, r := range rels {
		mode := ""
		if r.external {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.id, r.relType, r.target, mode)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func typesXML(defaults map[string]string, overrides [][2]string) string {
	var b strings.Builder
	b.WriteString(schema.XMLHeader)
	b.WriteString(`<Types xmlns="` + schema.NSContentTypes + `">`)
	for ext, ct := range defaults {
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`, ext, ct)
	}
	for _, o := range overrides {
		fmt.Fprintf(&b, `<Override PartName="%s" ContentType="%s"/>`, o[0], o[1])
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func xmlPart(root string) string {
	return schema.XMLHeader + "<" + root +
		` xmlns:a="` + schema.NSDrawingML + `" xmlns:p="` + schema.NSPresentation + `" xmlns:cp="` + schema.NSCoreProps + `"/>`
}

// referenceDeck builds a 22-part presentation with four root relationships:
// a thumbnail, core and extended properties and the presentation, which
// holds one master with eleven layouts and two slides. Every layout points
// back at the master.
func referenceDeck(t *testing.T) []byte {
	t.Helper()
	c := newContainer()
	var overrides [][2]string
	part := func(name, ct, root string) {
		c.add(name[1:], xmlPart(root))
		overrides = append(overrides, [2]string{name, ct})
	}

	c.add("[Content_Types].xml", "") // placeholder keeps the manifest first
	c.add("_rels/.rels", relsXML(
		rel{"rId3", schema.RTCoreProperties, "docProps/core.xml", false},
		rel{"rId2", schema.RTThumbnail, "docProps/thumbnail.jpeg", false},
		rel{"rId1", schema.RTOfficeDocument, "ppt/presentation.xml", false},
		rel{"rId4", schema.RTExtendedProperties, "docProps/app.xml", false},
	))
	c.add("docProps/thumbnail.jpeg", "\xff\xd8\xff\xe0 not really a jpeg")
	part("/docProps/core.xml", schema.CTCoreProperties, "cp:coreProperties")
	part("/docProps/app.xml", schema.CTExtendedProperties, "Properties")
	part("/ppt/presentation.xml", schema.CTPresentationMain, "p:presentation")
	part("/ppt/presProps.xml", schema.CTPresProps, "p:presentationPr")
	part("/ppt/viewProps.xml", schema.CTViewProps, "p:viewPr")
	part("/ppt/tableStyles.xml", schema.CTTableStyles, "a:tblStyleLst")
	part("/ppt/theme/theme1.xml", schema.CTTheme, "a:theme")
	part("/ppt/slideMasters/slideMaster1.xml", schema.CTSlideMaster, "p:sldMaster")

	c.add("ppt/_rels/presentation.xml.rels", relsXML(
		rel{"rId1", schema.RTSlideMaster, "slideMasters/slideMaster1.xml", false},
		rel{"rId2", schema.RTSlide, "slides/slide1.xml", false},
		rel{"rId3", schema.RTSlide, "slides/slide2.xml", false},
		rel{"rId4", schema.RTPresProps, "presProps.xml", false},
		rel{"rId5", schema.RTViewProps, "viewProps.xml", false},
		rel{"rId6", schema.RTTheme, "theme/theme1.xml", false},
		rel{"rId7", schema.RTTableStyles, "tableStyles.xml", false},
	))

	masterRels := []rel{{"rId12", schema.RTTheme, "../theme/theme1.xml", false}}
	for i := 1; i <= 11; i++ {
		name := fmt.Sprintf("/ppt/slideLayouts/slideLayout%d.xml", i)
		part(name, schema.CTSlideLayout, "p:sldLayout")
		c.add(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i), relsXML(
			rel{"rId1", schema.RTSlideMaster, "../slideMasters/slideMaster1.xml", false},
		))
		masterRels = append(masterRels, rel{fmt.Sprintf("rId%d", i), schema.RTSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i), false})
	}
	c.add("ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML(masterRels...))

	for i := 1; i <= 2; i++ {
		part(fmt.Sprintf("/ppt/slides/slide%d.xml", i), schema.CTSlide, "p:sld")
		c.add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i), relsXML(
			rel{"rId1", schema.RTSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i), false},
			rel{"rId2", schema.RTHyperlink, "https://example.com/", true},
		))
	}

	c.add("[Content_Types].xml", typesXML(map[string]string{
		"jpeg": schema.CTJPEG,
		"rels": schema.CTRelationships,
		"xml":  schema.CTXML,
	}, overrides))
	return c.bytes(t)
}
