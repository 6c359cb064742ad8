// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownDiscriminator is returned when a kind tag falls outside its
// family's enumeration. Seen on a stored row it means the data is corrupt.
var ErrUnknownDiscriminator = errors.New("access: unknown discriminator")

// DiscriminatorError names the family and the offending tag.
type DiscriminatorError struct {
	Family string
	Kind   string
}

func (e *DiscriminatorError) Error() string {
	return fmt.Sprintf("access: unknown %s kind %q", e.Family, e.Kind)
}

// Is lets errors.Is match [ErrUnknownDiscriminator].
func (e *DiscriminatorError) Is(target error) bool {
	return target == ErrUnknownDiscriminator
}

// KindLoader reads the stored discriminator of one entity.
type KindLoader interface {
	KindOf(ctx context.Context, id int64) (string, error)
}

// KindLoaderFunc adapts a function to [KindLoader].
type KindLoaderFunc func(ctx context.Context, id int64) (string, error)

// KindOf implements [KindLoader].
func (f KindLoaderFunc) KindOf(ctx context.Context, id int64) (string, error) {
	return f(ctx, id)
}

// Family is the closed set of variants of one polymorphic entity, with the
// roles each variant requires.
type Family struct {
	name     string
	variants map[string]RoleSet
}

func newFamily(name string, variants map[string]RoleSet) Family {
	return Family{name: name, variants: variants}
}

var (
	// ReportFamily authorizes a report through the activity it describes.
	ReportFamily = newFamily("report", map[string]RoleSet{
		"camp":    Require(RoleCamp),
		"heyat":   Require(RoleHeyat),
		"lecture": Require(RoleEducation),
	})

	// UserFamily distinguishes account kinds. Kinds carry no role requirement.
	UserFamily = newFamily("user", map[string]RoleSet{
		"student": Require(),
		"officer": Require(),
	})

	// DocumentFamily covers library items; every variant is a document resource.
	DocumentFamily = newFamily("document", map[string]RoleSet{
		"book":    Require(RoleDocument),
		"voice":   Require(RoleDocument),
		"booklet": Require(RoleDocument),
	})
)

// Name returns the family name.
func (f Family) Name() string { return f.name }

// Kinds returns the enumerated tags, sorted.
func (f Family) Kinds() []string {
	out := make([]string, 0, len(f.variants))
	for kind := range f.variants {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

// Validate reports whether kind is one of the family's tags.
func (f Family) Validate(kind string) error {
	if _, ok := f.variants[kind]; !ok {
		return &DiscriminatorError{Family: f.name, Kind: kind}
	}
	return nil
}

// RequiredRoles maps a kind to the roles that authorize it.
func (f Family) RequiredRoles(kind string) (RoleSet, error) {
	required, ok := f.variants[kind]
	if !ok {
		return nil, &DiscriminatorError{Family: f.name, Kind: kind}
	}
	return NewRoleSet(required.Slice()...), nil
}

// Resolve loads the stored kind of entity id and checks it against the family.
func (f Family) Resolve(ctx context.Context, loader KindLoader, id int64) (string, error) {
	kind, err := loader.KindOf(ctx, id)
	if err != nil {
		return "", err
	}
	if err := f.Validate(kind); err != nil {
		return "", err
	}
	return kind, nil
}

// ResolveRequiredRoles is [Family.Resolve] followed by [Family.RequiredRoles].
func (f Family) ResolveRequiredRoles(ctx context.Context, loader KindLoader, id int64) (RoleSet, error) {
	kind, err := f.Resolve(ctx, loader, id)
	if err != nil {
		return nil, err
	}
	return f.RequiredRoles(kind)
}
