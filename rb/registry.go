// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"reflect"
	"sync"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// Token identifies a truth problem within a Registry
type Token struct {
	typ reflect.Type
	ptr uintptr
}

// Identify returns the identity token of p. Only problems with reference semantics (pointers,
// maps or channels) have an identity
func Identify(p Problem) (tok Token, err error) {
	if p == nil {
		return tok, chk.Err("nil problem has no identity: %w", errs.ErrNotFound)
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return Token{typ: v.Type(), ptr: v.Pointer()}, nil
	}
	return tok, chk.Err("problem %q of type %v has no identity; use a pointer: %w", p.Name(), v.Type(), errs.ErrConflict)
}

// entry holds p so that its address stays valid while registered
type entry struct {
	p Problem
	r *ReducedProblem
}

// Registry maps truth problems to their reduced problems during one session. Safe for
// concurrent use
type Registry struct {
	mutex sync.RWMutex
	red   map[Token]entry
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{red: make(map[Token]entry)}
}

// Register associates r with p. Registering the same pair again is a no-op; associating a
// different reduced problem with p is an error
func (o *Registry) Register(p Problem, r *ReducedProblem) error {
	tok, err := Identify(p)
	if err != nil {
		return err
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if prev, ok := o.red[tok]; ok && prev.r != r {
		return chk.Err("problem %q already has a reduced problem: %w", p.Name(), errs.ErrConflict)
	}
	o.red[tok] = entry{p, r}
	return nil
}

// Lookup returns the reduced problem of p
func (o *Registry) Lookup(p Problem) (*ReducedProblem, error) {
	tok, err := Identify(p)
	if err != nil {
		return nil, err
	}
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	e, ok := o.red[tok]
	if !ok {
		return nil, chk.Err("problem %q has no reduced problem: %w", p.Name(), errs.ErrNotFound)
	}
	return e.r, nil
}

// Remove removes p from the registry
func (o *Registry) Remove(p Problem) {
	tok, err := Identify(p)
	if err != nil {
		return
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()
	delete(o.red, tok)
}

// Len returns the number of registered problems
func (o *Registry) Len() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.red)
}

// acquire returns the reduced problem of p, calling build and registering its result if p has
// none yet
func (o *Registry) acquire(p Problem, build func() (*ReducedProblem, error)) (r *ReducedProblem, err error) {
	tok, err := Identify(p)
	if err != nil {
		return
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if e, ok := o.red[tok]; ok {
		return e.r, nil
	}
	if r, err = build(); err != nil {
		return nil, err
	}
	o.red[tok] = entry{p, r}
	return
}
