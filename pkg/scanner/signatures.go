package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ExtractSignatures walks a parsed declaration file and collects the three
// signature maps for a component whose display name is display:
//
//   - props from `interface <display>Props`
//   - slots from `interface <display>Slots`
//   - emits from `interface <display>EmitsOptions` merged with the inline
//     members of `type <display>Emits = EmitFn<{...}>`; the EmitFn members
//     override EmitsOptions entries on name collision.
//
// A file without any of these declarations yields empty maps.
func ExtractSignatures(root *ts.Node, source []byte, display string) ComponentAPI {
	var api ComponentAPI
	var emitsOptions, emitFn map[string]string

	walkDeclarations(root, func(decl *ts.Node) {
		name := declarationName(decl, source)

		switch decl.Kind() {
		case "interface_declaration":
			switch name {
			case display + "Props":
				api.Props = interfaceMembers(decl, source)
			case display + "Slots":
				api.Slots = interfaceMembers(decl, source)
			case display + "EmitsOptions":
				emitsOptions = interfaceMembers(decl, source)
			}
		case "type_alias_declaration":
			if name == display+"Emits" {
				emitFn = emitFnMembers(decl, source)
			}
		}
	})

	if len(emitsOptions) > 0 || len(emitFn) > 0 {
		api.Emits = make(map[string]string, len(emitsOptions)+len(emitFn))
		for k, v := range emitsOptions {
			api.Emits[k] = v
		}
		for k, v := range emitFn {
			api.Emits[k] = v
		}
	}

	return api
}

// walkDeclarations visits every interface and type alias declaration in the
// tree, descending through export statements and module blocks.
func walkDeclarations(node *ts.Node, visit func(decl *ts.Node)) {
	if node == nil {
		return
	}
	kind := node.Kind()
	if kind == "interface_declaration" || kind == "type_alias_declaration" {
		visit(node)
		return
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		walkDeclarations(node.Child(i), visit)
	}
}

// declarationName returns the declared identifier of an interface or type
// alias declaration.
func declarationName(decl *ts.Node, source []byte) string {
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return nameNode.Utf8Text(source)
}

// interfaceMembers extracts name → type text from an interface body.
// Property signatures record their type annotation; method signatures
// (the shape PrimeVue uses for EmitsOptions) record a function type built
// from the parameter list and return annotation.
func interfaceMembers(decl *ts.Node, source []byte) map[string]string {
	body := findChildByKind(decl, "interface_body")
	if body == nil {
		body = findChildByKind(decl, "object_type")
	}
	if body == nil {
		return nil
	}
	return bodyMembers(body, source)
}

// bodyMembers extracts member signatures from an interface_body or
// object_type node.
func bodyMembers(body *ts.Node, source []byte) map[string]string {
	members := make(map[string]string)

	for i := uint(0); i < uint(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "property_signature":
			name, typeText := propertyMember(child, source)
			if name != "" {
				members[name] = typeText
			}
		case "method_signature":
			name, typeText := methodMember(child, source)
			if name != "" {
				members[name] = typeText
			}
		}
	}

	if len(members) == 0 {
		return nil
	}
	return members
}

// propertyMember extracts a property signature's name and the source-level
// text of its type annotation.
func propertyMember(sig *ts.Node, source []byte) (string, string) {
	nameNode := sig.ChildByFieldName("name")
	if nameNode == nil {
		return "", ""
	}
	name := memberName(nameNode.Utf8Text(source))

	typeText := ""
	if anno := sig.ChildByFieldName("type"); anno != nil {
		typeText = annotationText(anno, source)
	}
	return name, typeText
}

// methodMember extracts a method signature's name and a function-type string
// composed from its parameter list and return annotation.
func methodMember(sig *ts.Node, source []byte) (string, string) {
	nameNode := sig.ChildByFieldName("name")
	if nameNode == nil {
		return "", ""
	}
	name := memberName(nameNode.Utf8Text(source))

	params := "()"
	if p := sig.ChildByFieldName("parameters"); p != nil {
		params = p.Utf8Text(source)
	}
	ret := "void"
	if anno := sig.ChildByFieldName("return_type"); anno != nil {
		ret = annotationText(anno, source)
	}
	return name, params + " => " + ret
}

// emitFnMembers extracts the inline member signatures of a
// `type XEmits = EmitFn<{...}>` alias. Returns nil when the alias value is
// not an EmitFn instantiation.
func emitFnMembers(decl *ts.Node, source []byte) map[string]string {
	value := decl.ChildByFieldName("value")
	if value == nil || value.Kind() != "generic_type" {
		return nil
	}
	nameNode := value.ChildByFieldName("name")
	if nameNode == nil || nameNode.Utf8Text(source) != "EmitFn" {
		return nil
	}

	typeArgs := findChildByKind(value, "type_arguments")
	if typeArgs == nil {
		return nil
	}
	for i := uint(0); i < uint(typeArgs.ChildCount()); i++ {
		child := typeArgs.Child(i)
		if child.Kind() == "object_type" {
			return bodyMembers(child, source)
		}
	}
	return nil
}

// annotationText strips the leading ":" from a type annotation and trims
// surrounding whitespace, preserving the source-level type text.
func annotationText(anno *ts.Node, source []byte) string {
	text := anno.Utf8Text(source)
	text = strings.TrimPrefix(text, ":")
	return strings.TrimSpace(text)
}

// memberName unquotes string-literal member names like 'update:modelValue'.
func memberName(name string) string {
	if len(name) >= 2 {
		if (name[0] == '\'' && name[len(name)-1] == '\'') ||
			(name[0] == '"' && name[len(name)-1] == '"') {
			return name[1 : len(name)-1]
		}
	}
	return name
}

func findChildByKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
