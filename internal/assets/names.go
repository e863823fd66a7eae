package assets

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// DefaultTemplateName is the name of the built-in page template.
const DefaultTemplateName = "document"

// Asset subdirectories and extensions, shared by all loaders.
const (
	stylesDir    = "styles"
	templatesDir = "templates"
	styleExt     = ".css"
	templateExt  = ".html"
)
