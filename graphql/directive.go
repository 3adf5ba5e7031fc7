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

	"github.com/vektah/gqlparser/v2/ast"
)

// DirectiveLocation specifies a valid location for a directive to be used.
type DirectiveLocation = ast.DirectiveLocation

// Reference: https://spec.graphql.org/June2018/#DirectiveLocations
const (
	// Executable directive location
	DirectiveLocationQuery              = ast.LocationQuery
	DirectiveLocationMutation           = ast.LocationMutation
	DirectiveLocationSubscription       = ast.LocationSubscription
	DirectiveLocationField              = ast.LocationField
	DirectiveLocationFragmentDefinition = ast.LocationFragmentDefinition
	DirectiveLocationFragmentSpread     = ast.LocationFragmentSpread
	DirectiveLocationInlineFragment     = ast.LocationInlineFragment
	DirectiveLocationVariableDefinition = ast.LocationVariableDefinition

	// Type system directive location
	DirectiveLocationSchema               = ast.LocationSchema
	DirectiveLocationScalar               = ast.LocationScalar
	DirectiveLocationObject               = ast.LocationObject
	DirectiveLocationFieldDefinition      = ast.LocationFieldDefinition
	DirectiveLocationArgumentDefinition   = ast.LocationArgumentDefinition
	DirectiveLocationInterface            = ast.LocationInterface
	DirectiveLocationUnion                = ast.LocationUnion
	DirectiveLocationEnum                 = ast.LocationEnum
	DirectiveLocationEnumValue            = ast.LocationEnumValue
	DirectiveLocationInputObject          = ast.LocationInputObject
	DirectiveLocationInputFieldDefinition = ast.LocationInputFieldDefinition
)

// DirectiveConfig provides definition for creating a Directive.
type DirectiveConfig struct {
	// Name of the defining Directive
	Name string

	// Description for the Directive type
	Description string

	// Locations in the schema where the defining directive can appear
	Locations []DirectiveLocation

	// Arguments to be provided when using the directive
	Args []*ArgumentConfig

	// IsRepeatable allows the directive to be used more than once at a location.
	IsRepeatable bool

	ASTNode *ast.DirectiveDefinition
}

// Directive is used to annotate various parts of a GraphQL document as an indicator that they
// should be evaluated differently by a validator, executor, or client tool such as a code
// generator.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-System.Directives
type Directive struct {
	name         string
	description  string
	locations    []DirectiveLocation
	args         []*Argument
	isRepeatable bool
	astNode      *ast.DirectiveDefinition
}

// NewDirective creates a Directive from a DirectiveConfig.
func NewDirective(config *DirectiveConfig) (*Directive, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Directive must be named.")
	}

	if len(config.Locations) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig,
			fmt.Sprintf("Must provide locations for directive @%s.", config.Name))
	}

	args, err := buildArguments("@"+config.Name, config.Args)
	if err != nil {
		return nil, err
	}

	locations := make([]DirectiveLocation, len(config.Locations))
	copy(locations, config.Locations)

	return &Directive{
		name:         config.Name,
		description:  config.Description,
		locations:    locations,
		args:         args,
		isRepeatable: config.IsRepeatable,
		astNode:      config.ASTNode,
	}, nil
}

// MustNewDirective is a convenience function equivalent to NewDirective but panics on failure
// instead of returning an error.
func MustNewDirective(config *DirectiveConfig) *Directive {
	directive, err := NewDirective(config)
	if err != nil {
		panic(err)
	}
	return directive
}

// Name of the directive
func (d *Directive) Name() string {
	return d.name
}

// Description of the directive
func (d *Directive) Description() string {
	return d.description
}

// String implements fmt.Stringer.
func (d *Directive) String() string {
	return "@" + d.name
}

// Locations specifies the places where the directive must only be used.
func (d *Directive) Locations() []DirectiveLocation {
	return d.locations
}

// HasLocation returns true if the directive can be used at the location.
func (d *Directive) HasLocation(location DirectiveLocation) bool {
	for _, l := range d.locations {
		if l == location {
			return true
		}
	}
	return false
}

// Args returns arguments to be provided when using the directive.
func (d *Directive) Args() []*Argument {
	return d.args
}

// Arg finds the argument with the given name or returns nil.
func (d *Directive) Arg(name string) *Argument {
	return findArgument(d.args, name)
}

// IsRepeatable returns true if the directive may be used more than once at a location.
func (d *Directive) IsRepeatable() bool {
	return d.isRepeatable
}

// ASTNode returns the definition node if the directive was built from SDL.
func (d *Directive) ASTNode() *ast.DirectiveDefinition {
	return d.astNode
}
