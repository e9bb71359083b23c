// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Info, the value that describes one side of a cross-module
// service contract: a named export a module publishes, or a named import it
// requires.
//
// An Info carries no behaviour. It is created once while declarations are
// discovered, and from then on it is only read by the registry, the sorter
// and the app. Because every field is comparable, an Info can be used directly
// as a map key or set member; two Infos are equal when all three fields are.
package ref

import "fmt"

// Info is an immutable triple of service name, required interface and the
// location (module identifier) that declared it.
type Info struct {
	ServiceName string
	Interface   Type
	Location    string
}

// New creates an Info.
func New(serviceName string, iface Type, location string) Info {
	return Info{
		ServiceName: serviceName,
		Interface:   iface,
		Location:    location,
	}
}

// String renders the info for logs, e.g. `users(store.Users)@modules/a.hcl`.
func (i Info) String() string {
	return fmt.Sprintf("%s(%s)@%s", i.ServiceName, TypeName(i.Interface), i.Location)
}
