package parser

// Failure reasons of the extraction pipeline. They are user facing and are
// returned verbatim.
const (
	ReasonNoTopLevelClass   = "Could not find any top-level class."
	ReasonNoPackage         = "no package declaration specified"
	ReasonNoTypeArguments   = "There were no type arguments for the Decorator"
	reasonNotDecoratorFmt   = "The class %s did not extend Decorator."
	reasonUnresolvedTypeFmt = "Could not determine import for the class to decorate (%s). Note that the import has to be fully qualified to be resolved."
)

// DecoratorTypeName is the simple name of the capability a decorator declaration implements
const DecoratorTypeName = "Decorator"

// Structured log field names
const (
	logFieldFile      = "file"
	logFieldClass     = "class"
	logFieldDecorated = "decorated_type"
	logFieldReason    = "reason"
)
