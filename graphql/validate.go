/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package graphql

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// schemaValidationContext collects problems found in a schema.
type schemaValidationContext struct {
	schema *Schema
	errs   Errors
}

func (ctx *schemaValidationContext) report(message string, pos *ast.Position) {
	ctx.errs.Emplace(message, pos, ErrKindValidation)
}

// ValidateSchema checks the type system rules on the schema. It returns nil when the schema is
// valid or an error wrapping ErrInvalidSchema whose message lists every problem. The result is
// computed once per Schema.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-System
func ValidateSchema(schema *Schema) error {
	schema.validateOnce.Do(func() {
		schema.validationErr = validateSchema(schema)
	})
	return schema.validationErr
}

// AssertValidSchema is ValidateSchema for schemas not created with AssumeValid. It returns nil for
// a schema created with AssumeValid.
func AssertValidSchema(schema *Schema) error {
	if schema.AssumeValid() {
		return nil
	}
	return ValidateSchema(schema)
}

func validateSchema(schema *Schema) error {
	ctx := &schemaValidationContext{
		schema: schema,
	}

	ctx.validateRootTypes()
	ctx.validateDirectives()
	ctx.validateTypes()

	if !ctx.errs.HaveOccurred() {
		return nil
	}

	var pos *ast.Position
	if node := schema.ASTNode(); node != nil {
		pos = node.Position
	}
	return NewSchemaError(ErrInvalidSchema, strings.Join(ctx.errs.Messages(), "\n"), pos)
}

func (ctx *schemaValidationContext) validateRootTypes() {
	if ctx.schema.Query() == nil {
		ctx.report("Query root type must be provided.", nil)
	}
}

func (ctx *schemaValidationContext) validateName(name string, pos *ast.Position) {
	if strings.HasPrefix(name, "__") {
		ctx.report(fmt.Sprintf(`Name "%s" must not begin with "__", which is reserved by GraphQL `+
			"introspection.", name), pos)
	}
}

func (ctx *schemaValidationContext) validateDirectives() {
	for _, directive := range ctx.schema.Directives() {
		var pos *ast.Position
		if node := directive.ASTNode(); node != nil {
			pos = node.Position
		}

		ctx.validateName(directive.Name(), pos)

		for _, arg := range directive.Args() {
			ctx.validateArgument(fmt.Sprintf("@%s(%s:)", directive.Name(), arg.Name()), arg)
		}
	}
}

func (ctx *schemaValidationContext) validateArgument(path string, arg *Argument) {
	var pos *ast.Position
	if node := arg.ASTNode(); node != nil {
		pos = node.Position
	}

	ctx.validateName(arg.Name(), pos)

	if !IsInputType(arg.Type()) {
		ctx.report(fmt.Sprintf("The type of %s must be Input Type but got: %s.", path, arg.Type()), pos)
	}
}

func (ctx *schemaValidationContext) validateTypes() {
	for _, t := range ctx.schema.TypeMap().Types() {
		if IsIntrospectionType(t) {
			continue
		}

		pos := positionOf(t.ASTNode())
		ctx.validateName(t.Name(), pos)

		switch t := t.(type) {
		case *Object:
			fields, _ := t.Fields()
			ctx.validateFields(t, fields, pos)
			interfaces, _ := t.Interfaces()
			ctx.validateInterfaces(t, fields, interfaces, pos)

		case *Interface:
			fields, _ := t.Fields()
			ctx.validateFields(t, fields, pos)
			interfaces, _ := t.Interfaces()
			ctx.validateInterfaces(t, fields, interfaces, pos)

		case *Union:
			ctx.validateUnionMembers(t, pos)

		case *Enum:
			ctx.validateEnumValues(t, pos)

		case *InputObject:
			ctx.validateInputFields(t, pos)
		}
	}
}

func (ctx *schemaValidationContext) validateFields(t NamedType, fields FieldMap, pos *ast.Position) {
	if fields.Len() == 0 {
		ctx.report(fmt.Sprintf("Type %s must define one or more fields.", t.Name()), pos)
		return
	}

	for _, field := range fields.Values() {
		fieldPos := fieldPosition(field.ASTNode())
		ctx.validateName(field.Name(), fieldPos)

		if !IsOutputType(field.Type()) {
			ctx.report(fmt.Sprintf("The type of %s.%s must be Output Type but got: %s.",
				t.Name(), field.Name(), field.Type()), fieldPos)
		}

		for _, arg := range field.Args() {
			ctx.validateArgument(fmt.Sprintf("%s.%s(%s:)", t.Name(), field.Name(), arg.Name()), arg)
		}
	}
}

func (ctx *schemaValidationContext) validateInterfaces(
	t NamedType,
	fields FieldMap,
	interfaces []*Interface,
	pos *ast.Position) {

	seen := map[*Interface]bool{}
	for _, iface := range interfaces {
		if iface == t {
			ctx.report(fmt.Sprintf("Type %s cannot implement itself because it would create a "+
				"circular reference.", t.Name()), pos)
			continue
		}

		if seen[iface] {
			ctx.report(fmt.Sprintf("Type %s can only implement %s once.", t.Name(), iface.Name()), pos)
			continue
		}
		seen[iface] = true

		ctx.validateTransitiveInterfaces(t, interfaces, iface, pos)
		ctx.validateTypeImplementsInterface(t, fields, iface, pos)
	}
}

func (ctx *schemaValidationContext) validateTransitiveInterfaces(
	t NamedType,
	interfaces []*Interface,
	iface *Interface,
	pos *ast.Position) {

	transitive, _ := iface.Interfaces()
	for _, transitiveIface := range transitive {
		found := false
		for _, i := range interfaces {
			if i == transitiveIface {
				found = true
				break
			}
		}
		if !found {
			ctx.report(fmt.Sprintf("Type %s must implement %s because it is implemented by %s.",
				t.Name(), transitiveIface.Name(), iface.Name()), pos)
		}
	}
}

func (ctx *schemaValidationContext) validateTypeImplementsInterface(
	t NamedType,
	fields FieldMap,
	iface *Interface,
	pos *ast.Position) {

	ifaceFields, _ := iface.Fields()
	for _, ifaceField := range ifaceFields.Values() {
		fieldName := ifaceField.Name()
		field := fields.Get(fieldName)
		if field == nil {
			ctx.report(fmt.Sprintf("Interface field %s.%s expected but %s does not provide it.",
				iface.Name(), fieldName, t.Name()), pos)
			continue
		}

		fieldPos := fieldPosition(field.ASTNode())

		// Assert interface field type is satisfied by type field type, by being a valid subtype
		// (covariant).
		if !IsTypeSubTypeOf(ctx.schema, field.Type(), ifaceField.Type()) {
			ctx.report(fmt.Sprintf("Interface field %s.%s expects type %s but %s.%s is type %s.",
				iface.Name(), fieldName, ifaceField.Type(), t.Name(), fieldName, field.Type()), fieldPos)
		}

		// Assert each interface field arg is implemented.
		for _, ifaceArg := range ifaceField.Args() {
			arg := field.Arg(ifaceArg.Name())
			if arg == nil {
				ctx.report(fmt.Sprintf("Interface field argument %s.%s(%s:) expected but %s.%s does "+
					"not provide it.", iface.Name(), fieldName, ifaceArg.Name(), t.Name(), fieldName), fieldPos)
				continue
			}

			// Assert interface field arg type matches object field arg type (invariant).
			if !IsEqualType(ifaceArg.Type(), arg.Type()) {
				ctx.report(fmt.Sprintf("Interface field argument %s.%s(%s:) expects type %s but "+
					"%s.%s(%s:) is type %s.", iface.Name(), fieldName, ifaceArg.Name(), ifaceArg.Type(),
					t.Name(), fieldName, arg.Name(), arg.Type()), fieldPos)
			}
		}

		// Assert additional arguments must not be required.
		for _, arg := range field.Args() {
			if ifaceField.Arg(arg.Name()) == nil {
				if _, ok := arg.Type().(*NonNull); ok && !arg.HasDefaultValue() {
					ctx.report(fmt.Sprintf("Object field %s.%s includes required argument %s that is "+
						"missing from the Interface field %s.%s.", t.Name(), fieldName, arg.Name(),
						iface.Name(), fieldName), fieldPos)
				}
			}
		}
	}
}

func (ctx *schemaValidationContext) validateUnionMembers(union *Union, pos *ast.Position) {
	members, _ := union.PossibleTypes()
	if len(members) == 0 {
		ctx.report(fmt.Sprintf("Union type %s must define one or more member types.", union.Name()), pos)
		return
	}

	seen := map[*Object]bool{}
	for _, member := range members {
		if seen[member] {
			ctx.report(fmt.Sprintf("Union type %s can only include type %s once.",
				union.Name(), member.Name()), pos)
			continue
		}
		seen[member] = true
	}
}

func (ctx *schemaValidationContext) validateEnumValues(enum *Enum, pos *ast.Position) {
	values := enum.Values()
	if values.Len() == 0 {
		ctx.report(fmt.Sprintf("Enum type %s must define one or more values.", enum.Name()), pos)
		return
	}

	for _, value := range values.Values() {
		var valuePos *ast.Position
		if node := value.ASTNode(); node != nil {
			valuePos = node.Position
		}

		ctx.validateName(value.Name(), valuePos)

		switch value.Name() {
		case "true", "false", "null":
			ctx.report(fmt.Sprintf("Enum type %s cannot include value: %s.", enum.Name(), value.Name()),
				valuePos)
		}
	}
}

func (ctx *schemaValidationContext) validateInputFields(inputObject *InputObject, pos *ast.Position) {
	fields, _ := inputObject.Fields()
	if fields.Len() == 0 {
		ctx.report(fmt.Sprintf("Input Object type %s must define one or more fields.",
			inputObject.Name()), pos)
		return
	}

	for _, field := range fields.Values() {
		fieldPos := fieldPosition(field.ASTNode())
		ctx.validateName(field.Name(), fieldPos)

		if !IsInputType(field.Type()) {
			ctx.report(fmt.Sprintf("The type of %s.%s must be Input Type but got: %s.",
				inputObject.Name(), field.Name(), field.Type()), fieldPos)
		}
	}
}
