package contenttype

import (
	"strings"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/schema"
)

// mediaDefaults are the extensions a composed manifest may cover with a
// Default entry.
var mediaDefaults = map[string]string{
	"bin":     schema.CTPrinterSettings,
	"bmp":     schema.CTBMP,
	"emf":     schema.CTEMF,
	"gif":     schema.CTGIF,
	"jpe":     schema.CTJPEG,
	"jpeg":    schema.CTJPEG,
	"jpg":     schema.CTJPEG,
	"png":     schema.CTPNG,
	"tif":     schema.CTTIFF,
	"tiff":    schema.CTTIFF,
	"vml":     schema.CTVMLDrawing,
	"wdp":     schema.CTMSPhoto,
	"wmf":     schema.CTWMF,
	"xlsx":    schema.CTSpreadsheet,
	"fntdata": "application/x-fontdata",
}

// Compose builds a minimal manifest describing parts.
//
// Defaults for "rels" and "xml" are always present. An .xml part whose content
// type is not plain application/xml gets an Override. Any other part needs an
// extension with a known default content type; the part is covered by that
// Default when the types agree and gets an Override when they do not. Known
// extensions are those of the built-in media table plus the Defaults of known,
// which may be nil.
//
// parts is not modified.
func Compose(parts []Entry, known *Registry) (*Registry, error) {
	r := New()
	r.AddDefault("rels", schema.CTRelationships)
	r.AddDefault("xml", schema.CTXML)

	for _, p := range parts {
		ext := strings.ToLower(p.PartName.Ext())
		if ext == "xml" {
			if p.ContentType != schema.CTXML {
				r.AddOverride(p.PartName, p.ContentType)
			}
			continue
		}

		def, ok := mediaDefaults[ext]
		if !ok && known != nil {
			def, ok = known.DefaultFor(ext)
		}
		if !ok || ext == "" {
			return nil, errors.New(errors.ErrCodeLookup, "no default content type for partname %q", p.PartName)
		}
		if def == p.ContentType {
			r.AddDefault(ext, def)
		} else {
			r.AddOverride(p.PartName, p.ContentType)
		}
	}
	return r, nil
}
