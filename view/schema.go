package view

import (
	"fmt"
	"path"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

var documents = map[string]any{
	"home":        &Home{},
	"listing":     &Listing{},
	"video":       &Video{},
	"search":      &Search{},
	"categories":  &Categories{},
	"suggestions": &Suggestions{},
	"error":       &Error{},
}

// Documents lists the names accepted by Schema.
func Documents() []string {
	names := lo.Keys(documents)
	sort.Strings(names)
	return names
}

// Schema generates the JSON schema of a named document.
func Schema(name string) (*jsonschema.Schema, error) {
	doc, ok := documents[name]
	if !ok {
		return nil, fmt.Errorf("unknown document %q, expected one of %v", name, Documents())
	}

	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		// catalog.Video and view.Video share a name
		if t.Name() == "Video" {
			return path.Base(t.PkgPath()) + "." + t.Name()
		}
		return t.Name()
	}

	return reflector.Reflect(doc), nil
}
