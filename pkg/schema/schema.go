// Package schema holds the fixed vocabulary of an OPC presentation package:
// XML namespaces, content types and relationship types.
//
// The values are defined by ECMA-376 and never change at runtime. Content types
// are prefixed CT, relationship types RT and namespaces NS.
package schema

// Namespaces.
const (
	NSContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSExtendedProps = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NSDocPropsVT    = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	NSOfficeRels    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NSDublinCore    = "http://purl.org/dc/elements/1.1/"
	NSDCTerms       = "http://purl.org/dc/terms/"
	NSDCMIType      = "http://purl.org/dc/dcmitype/"
	NSXSI           = "http://www.w3.org/2001/XMLSchema-instance"
)

// TargetModeExternal is the TargetMode attribute value marking a relationship
// whose target lives outside the package.
const TargetModeExternal = "External"

// Package-level and shared content types.
const (
	CTXML                = "application/xml"
	CTRelationships      = "application/vnd.openxmlformats-package.relationships+xml"
	CTCoreProperties     = "application/vnd.openxmlformats-package.core-properties+xml"
	CTExtendedProperties = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	CTCustomProperties   = "application/vnd.openxmlformats-officedocument.custom-properties+xml"
	CTTheme              = "application/vnd.openxmlformats-officedocument.theme+xml"
	CTVMLDrawing         = "application/vnd.openxmlformats-officedocument.vmlDrawing"
	CTOLEObject          = "application/vnd.openxmlformats-officedocument.oleObject"
	CTChart              = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	CTSpreadsheet        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PresentationML content types.
const (
	ctPML = "application/vnd.openxmlformats-officedocument.presentationml."

	CTPresentationMain = ctPML + "presentation.main+xml"
	CTSlideshowMain    = ctPML + "slideshow.main+xml"
	CTTemplateMain     = ctPML + "template.main+xml"
	CTSlide            = ctPML + "slide+xml"
	CTSlideLayout      = ctPML + "slideLayout+xml"
	CTSlideMaster      = ctPML + "slideMaster+xml"
	CTNotesMaster      = ctPML + "notesMaster+xml"
	CTNotesSlide       = ctPML + "notesSlide+xml"
	CTHandoutMaster    = ctPML + "handoutMaster+xml"
	CTPresProps        = ctPML + "presProps+xml"
	CTViewProps        = ctPML + "viewProps+xml"
	CTTableStyles      = ctPML + "tableStyles+xml"
	CTComments         = ctPML + "comments+xml"
	CTCommentAuthors   = ctPML + "commentAuthors+xml"
	CTTags             = ctPML + "tags+xml"
	CTPrinterSettings  = ctPML + "printerSettings"
)

// Media content types.
const (
	CTBMP     = "image/bmp"
	CTGIF     = "image/gif"
	CTJPEG    = "image/jpeg"
	CTPNG     = "image/png"
	CTTIFF    = "image/tiff"
	CTEMF     = "image/x-emf"
	CTWMF     = "image/x-wmf"
	CTMSPhoto = "image/vnd.ms-photo"
)

// Relationship types.
const (
	rtOffice  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	rtPackage = "http://schemas.openxmlformats.org/package/2006/relationships/"

	RTOfficeDocument     = rtOffice + "officeDocument"
	RTCoreProperties     = rtPackage + "metadata/core-properties"
	RTThumbnail          = rtPackage + "metadata/thumbnail"
	RTExtendedProperties = rtOffice + "extended-properties"
	RTCustomProperties   = rtOffice + "custom-properties"
	RTSlide              = rtOffice + "slide"
	RTSlideLayout        = rtOffice + "slideLayout"
	RTSlideMaster        = rtOffice + "slideMaster"
	RTNotesMaster        = rtOffice + "notesMaster"
	RTNotesSlide         = rtOffice + "notesSlide"
	RTHandoutMaster      = rtOffice + "handoutMaster"
	RTPresProps          = rtOffice + "presProps"
	RTViewProps          = rtOffice + "viewProps"
	RTTableStyles        = rtOffice + "tableStyles"
	RTTheme              = rtOffice + "theme"
	RTComments           = rtOffice + "comments"
	RTCommentAuthors     = rtOffice + "commentAuthors"
	RTTags               = rtOffice + "tags"
	RTPrinterSettings    = rtOffice + "printerSettings"
	RTImage              = rtOffice + "image"
	RTChart              = rtOffice + "chart"
	RTPackage            = rtOffice + "package"
	RTOLEObject          = rtOffice + "oleObject"
	RTVMLDrawing         = rtOffice + "vmlDrawing"
	RTHyperlink          = rtOffice + "hyperlink"
)

// XMLHeader is the declaration every serialized package XML item begins with.
const XMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
