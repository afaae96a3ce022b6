package runtime

import (
	"strconv"
	"strings"
)

// Stringify renders a value the way print and str display it. Top-level
// strings are bare; strings nested inside tables are quoted. Tables render
// their entries in insertion order, and a table reached again while its own
// rendering is still in progress prints as {...} instead of recursing.
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	var b strings.Builder
	writeValue(&b, v, false, make(map[*TableValue]bool))
	return b.String()
}

func writeValue(b *strings.Builder, v Value, nested bool, open map[*TableValue]bool) {
	switch val := v.(type) {
	case IntegerValue:
		b.WriteString(strconv.FormatInt(val.Val, 10))
	case FloatValue:
		b.WriteString(strconv.FormatFloat(val.Val, 'f', -1, 64))
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case StringValue:
		if nested {
			b.WriteString(strconv.Quote(val.Val))
		} else {
			b.WriteString(val.Val)
		}
	case NilValue:
		b.WriteString("nil")
	case *TableValue:
		if open[val] {
			b.WriteString("{...}")
			return
		}
		open[val] = true
		b.WriteByte('{')
		for i, entry := range val.Entries() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTableKey(b, entry.Key)
			b.WriteString(": ")
			writeValue(b, entry.Value, true, open)
		}
		b.WriteByte('}')
		delete(open, val)
	case *FunctionValue:
		b.WriteString("<function>")
	case NativeFunctionValue:
		b.WriteString("<builtin: " + val.Name + ">")
	case *ObjectValue:
		b.WriteString("<object " + val.Name + ">")
	default:
		b.WriteString("<unknown>")
	}
}

func writeTableKey(b *strings.Builder, key Value) {
	switch k := key.(type) {
	case StringValue:
		b.WriteString(k.Val)
	case IntegerValue:
		b.WriteString(strconv.FormatInt(k.Val, 10))
	}
}
