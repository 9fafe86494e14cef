package generator

// GeneratedHeader is the comment text heading every generated unit. Tools
// recognize generated files by a first line of "// " + GeneratedHeader.
const GeneratedHeader = "Code generated by decorator. DO NOT EDIT."

// GeneratedHeaderLine is the first line of every generated unit
const GeneratedHeaderLine = "// " + GeneratedHeader

// GeneratedPackagePrefix namespaces generated code away from hand-written sources
const GeneratedPackagePrefix = "decorator"

const (
	delegateFieldName = "delegate"
	delegateParamName = "delegate"
	delegateGetter    = "getDelegate"
)

const (
	logFieldClass     = "class"
	logFieldDecorated = "decorated_type"
	logFieldMethods   = "methods"
	logFieldChained   = "chained"
)
