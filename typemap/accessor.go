package typemap

// MapAccessor describes how a primitive Java type is read from a
// ReadableMap and written to a WritableMap. ReadCast is applied to the
// getter result and WriteCast to the value handed to the putter; both are
// empty when the map already stores the type natively.
type MapAccessor struct {
	Getter    string
	Putter    string
	ReadCast  string
	WriteCast string
}

var accessors = map[string]MapAccessor{
	"String":  {Getter: "getString", Putter: "putString"},
	"boolean": {Getter: "getBoolean", Putter: "putBoolean"},
	"int":     {Getter: "getInt", Putter: "putInt"},
	"double":  {Getter: "getDouble", Putter: "putDouble"},
	"long":    {Getter: "getDouble", Putter: "putDouble", ReadCast: "long", WriteCast: "double"},
	"float":   {Getter: "getDouble", Putter: "putDouble", ReadCast: "float"},
	"byte":    {Getter: "getInt", Putter: "putInt", ReadCast: "byte"},
	"short":   {Getter: "getInt", Putter: "putInt", ReadCast: "short"},
	"char":    {Getter: "getInt", Putter: "putInt", ReadCast: "char"},
}

// Accessor returns the map accessor for a primitive Java target type.
func Accessor(target string) (MapAccessor, bool) {
	a, ok := accessors[target]
	return a, ok
}
